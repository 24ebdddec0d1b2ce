package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDuration parses a session length. A bare integer is minutes,
// anything else must be a Go duration string such as "2h30m".
func ParseDuration(input string) (time.Duration, error) {
	input = strings.TrimSpace(input)
	if minutes, err := strconv.Atoi(input); err == nil {
		return time.Duration(minutes) * time.Minute, nil
	}

	duration, err := time.ParseDuration(input)
	if err != nil {
		return 0, fmt.Errorf("invalid duration format: %s\n\nValid formats:\n"+
			"• minutes: 150\n"+
			"• duration: 2h30m, 45m, 1h30m45s", input)
	}
	return duration, nil
}

// ParseInterval parses a jiggle interval. A bare number, optionally
// fractional, is seconds; anything else must be a Go duration string.
func ParseInterval(input string) (time.Duration, error) {
	input = strings.TrimSpace(input)
	if secs, err := strconv.ParseFloat(input, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}

	interval, err := time.ParseDuration(input)
	if err != nil {
		return 0, fmt.Errorf("invalid interval format: %s\n\nValid formats:\n"+
			"• seconds: 30, 2.5\n"+
			"• duration: 45s, 1m30s", input)
	}
	return interval, nil
}
