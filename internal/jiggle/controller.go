package jiggle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stigoleg/jiggler/internal/cursor"
)

var (
	// ErrStopped is returned by Run on a controller that was already stopped.
	ErrStopped = errors.New("jiggle: controller stopped")
	// ErrAlreadyRunning is returned by a second concurrent call to Run.
	ErrAlreadyRunning = errors.New("jiggle: loop already running")
)

// State is the controller lifecycle state.
type State int

const (
	StatePaused State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StatePaused:
		return "paused"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Controller owns the jiggle loop and its pause and stop flags.
type Controller struct {
	src  ConfigSource
	drv  cursor.Driver
	opts options

	paused  atomic.Bool
	stopped atomic.Bool
	looping atomic.Bool

	// wake cuts the current poll slice short after a state change.
	wake     chan struct{}
	done     chan struct{}
	doneOnce sync.Once

	stats stats
}

// NewController returns a paused controller. Call Run to start its loop.
func NewController(src ConfigSource, drv cursor.Driver, opts ...Option) *Controller {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c := &Controller{
		src:  src,
		drv:  drv,
		opts: o,
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	c.paused.Store(true)
	return c
}

// Start resumes jiggling. It has no effect once the controller is stopped.
func (c *Controller) Start() {
	if c.stopped.Load() {
		return
	}
	if c.paused.Swap(false) {
		c.opts.logger.Printf("jiggle: running")
		c.nudge()
	}
}

// Pause suspends jiggling. Calling it while paused or stopped does nothing.
func (c *Controller) Pause() {
	if c.stopped.Load() {
		return
	}
	if !c.paused.Swap(true) {
		c.opts.logger.Printf("jiggle: paused")
		c.nudge()
	}
}

// Stop ends the loop for good. It clears the pause flag so a loop parked in
// a paused wait notices promptly. Stop is idempotent.
func (c *Controller) Stop() {
	if c.stopped.Swap(true) {
		return
	}
	c.paused.Store(false)
	c.opts.logger.Printf("jiggle: stop requested")
	c.nudge()
}

// DefaultStopTimeout is used by StopWithTimeout for non-positive timeouts.
const DefaultStopTimeout = 5 * time.Second

// StopWithTimeout stops the controller and waits up to timeout for the loop
// to exit. A controller whose loop never ran returns immediately.
func (c *Controller) StopWithTimeout(timeout time.Duration) error {
	c.Stop()
	if !c.looping.Load() {
		return nil
	}
	if timeout <= 0 {
		timeout = DefaultStopTimeout
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-c.done:
		return nil
	case <-timer.C:
		return fmt.Errorf("jiggle: loop did not exit within %s", timeout)
	}
}

// State reports the current lifecycle state.
func (c *Controller) State() State {
	switch {
	case c.stopped.Load():
		return StateStopped
	case c.paused.Load():
		return StatePaused
	default:
		return StateRunning
	}
}

// IsRunning reports whether the controller is actively jiggling.
func (c *Controller) IsRunning() bool {
	return c.State() == StateRunning
}

// Done is closed when Run returns.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// Stats returns a snapshot of the loop's counters.
func (c *Controller) Stats() Stats {
	return c.stats.snapshot()
}

// Run executes the loop on the calling goroutine until Stop is called or ctx
// is done. Cancelling ctx is equivalent to calling Stop.
func (c *Controller) Run(ctx context.Context) error {
	if c.stopped.Load() {
		return ErrStopped
	}
	if !c.looping.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer c.doneOnce.Do(func() { close(c.done) })

	if c.stopped.Load() {
		return ErrStopped
	}

	release := context.AfterFunc(ctx, c.Stop)
	defer release()

	c.opts.logger.Printf("jiggle: loop started (poll slice %s)", c.opts.pollSlice)
	for !c.stopped.Load() {
		if c.paused.Load() {
			c.nap(c.opts.pollSlice)
			continue
		}

		cfg := c.src.Config()
		if !c.sleep(Interval(cfg, c.opts.rnd)) {
			continue
		}

		res := c.jiggle(cfg)
		c.stats.record(res)
		switch res.Outcome {
		case OutcomeMoved:
		case OutcomeSafetyAbort:
			c.opts.logger.Printf("jiggle: safety abort, pausing: %v", res.Err)
			c.Pause()
		case OutcomeFailed:
			c.opts.logger.Printf("jiggle: move failed, will retry next cycle: %v", res.Err)
		}
	}
	c.opts.logger.Printf("jiggle: loop stopped")
	return nil
}

// sleep waits for d in poll-slice chunks and reports whether it ran to
// completion without a pause or stop arriving.
func (c *Controller) sleep(d time.Duration) bool {
	deadline := time.Now().Add(d)
	for {
		if c.stopped.Load() || c.paused.Load() {
			return false
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return true
		}
		c.nap(min(remaining, c.opts.pollSlice))
	}
}

// nap blocks for at most d, returning early on a state change.
func (c *Controller) nap(d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-c.wake:
	}
}

func (c *Controller) nudge() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}
