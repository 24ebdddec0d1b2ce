// Package jiggle runs the background loop that nudges the mouse pointer.
//
// A Controller starts paused. Start and Pause flip a flag the loop polls
// every poll slice; Stop is terminal. Each active cycle pulls a fresh Config,
// waits out a (possibly jittered) interval in poll-slice chunks, then moves
// the pointer a few pixels away and straight back so its resting position
// never drifts. A safety abort from the driver pauses the controller; any
// other movement error is logged and the loop carries on.
package jiggle

import (
	"math/rand"
	"time"

	"github.com/stigoleg/jiggler/internal/cursor"
)

// Jitter bounds applied to the interval when Config.Randomize is set.
const (
	JitterMin = 0.85
	JitterMax = 1.15
)

// Outcome classifies a single jiggle attempt.
type Outcome int

const (
	OutcomeMoved Outcome = iota
	OutcomeSafetyAbort
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMoved:
		return "moved"
	case OutcomeSafetyAbort:
		return "safety-abort"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result describes what one jiggle did.
type Result struct {
	Outcome Outcome
	Origin  cursor.Point
	Offset  cursor.Point
	Err     error
}

// Interval returns how long to wait before the next jiggle.
func Interval(cfg Config, rnd *rand.Rand) time.Duration {
	base := cfg.Interval
	if base <= 0 {
		base = MinInterval
	}
	if !cfg.Randomize {
		return base
	}
	factor := JitterMin + rnd.Float64()*(JitterMax-JitterMin)
	return time.Duration(float64(base) * factor)
}

// Displacement draws a per-axis offset whose magnitude is in [1, amplitude]
// and whose sign is random. It is never zero on either axis.
func Displacement(amplitude int, rnd *rand.Rand) cursor.Point {
	return cursor.Point{
		X: axisOffset(amplitude, rnd),
		Y: axisOffset(amplitude, rnd),
	}
}

func axisOffset(amplitude int, rnd *rand.Rand) int {
	magnitude := 1 + rnd.Intn(max(1, amplitude))
	if rnd.Intn(2) == 0 {
		return -magnitude
	}
	return magnitude
}

// jiggle performs one round trip: away, hold, back.
func (c *Controller) jiggle(cfg Config) Result {
	origin, err := c.drv.Position()
	if err != nil {
		return failure(Result{}, err)
	}

	res := Result{
		Origin: origin,
		Offset: Displacement(cfg.Amplitude, c.opts.rnd),
	}

	if err := c.drv.MoveTo(origin.Add(res.Offset), c.opts.moveDuration); err != nil {
		return failure(res, err)
	}
	if c.opts.hold > 0 {
		time.Sleep(c.opts.hold)
	}
	if err := c.drv.MoveTo(origin, c.opts.moveDuration); err != nil {
		return failure(res, err)
	}

	res.Outcome = OutcomeMoved
	return res
}

func failure(res Result, err error) Result {
	res.Err = err
	if cursor.IsSafetyAbort(err) {
		res.Outcome = OutcomeSafetyAbort
	} else {
		res.Outcome = OutcomeFailed
	}
	return res
}
