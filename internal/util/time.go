package util

import (
	"fmt"
	"strings"
	"time"
)

var clockLayouts = []string{"15:04", "3:04PM", "3:04 PM", "03:04PM", "03:04 PM"}

// ParseTimeString parses a wall-clock time ("23:30", "11:30PM") as a time
// on the same day as now.
func ParseTimeString(timeStr string, now time.Time) (time.Time, error) {
	timeStr = strings.TrimSpace(strings.ToUpper(timeStr))
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, timeStr); err == nil {
			return today.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute), nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid time format: %s\n\nValid formats:\n"+
		"• 24-hour format: HH:MM (e.g., '23:30', '09:45')\n"+
		"• 12-hour format: HH:MM[AM|PM] (e.g., '11:30PM', '9:45 AM')", timeStr)
}

// NextOccurrence returns the first instant strictly after now that matches
// the wall-clock time in timeStr, rolling over to tomorrow if needed.
func NextOccurrence(timeStr string, now time.Time) (time.Time, error) {
	t, err := ParseTimeString(timeStr, now)
	if err != nil {
		return time.Time{}, err
	}
	if !t.After(now) {
		t = t.AddDate(0, 0, 1)
	}
	return t, nil
}
