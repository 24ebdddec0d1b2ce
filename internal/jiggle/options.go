package jiggle

import (
	"log"
	"math/rand"
	"time"
)

// Timing defaults for the loop and a single jiggle.
const (
	DefaultPollSlice    = 200 * time.Millisecond
	DefaultMoveDuration = 50 * time.Millisecond
	DefaultHold         = 50 * time.Millisecond
)

type options struct {
	pollSlice    time.Duration
	moveDuration time.Duration
	hold         time.Duration
	rnd          *rand.Rand
	logger       *log.Logger
}

// Option customises a Controller.
type Option func(*options)

// WithPollSlice sets how long the loop sleeps between flag checks.
func WithPollSlice(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.pollSlice = d
		}
	}
}

// WithMoveDuration sets how long each half of a jiggle takes.
func WithMoveDuration(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.moveDuration = d
		}
	}
}

// WithHold sets the pause between moving away and moving back.
func WithHold(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.hold = d
		}
	}
}

// WithRand sets the random source. The controller's loop is its only user.
func WithRand(rnd *rand.Rand) Option {
	return func(o *options) {
		if rnd != nil {
			o.rnd = rnd
		}
	}
}

// WithLogger routes controller logging to l.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func defaultOptions() options {
	return options{
		pollSlice:    DefaultPollSlice,
		moveDuration: DefaultMoveDuration,
		hold:         DefaultHold,
		rnd:          rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:       log.Default(),
	}
}
