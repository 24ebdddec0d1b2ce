package jiggle

import (
	"io"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/stigoleg/jiggler/internal/cursor"
)

// fakeDriver records every MoveTo and can be told to fail.
type fakeDriver struct {
	mu     sync.Mutex
	pos    cursor.Point
	moves  []cursor.Point
	errs   []error
	posErr error
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{pos: cursor.Point{X: 500, Y: 400}}
}

func (d *fakeDriver) Position() (cursor.Point, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pos, d.posErr
}

func (d *fakeDriver) MoveTo(p cursor.Point, _ time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.errs) > 0 {
		err := d.errs[0]
		d.errs = d.errs[1:]
		if err != nil {
			return err
		}
	}
	d.pos = p
	d.moves = append(d.moves, p)
	return nil
}

func (d *fakeDriver) failWith(errs ...error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errs = append(d.errs, errs...)
}

func (d *fakeDriver) Moves() []cursor.Point {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]cursor.Point, len(d.moves))
	copy(out, d.moves)
	return out
}

func (d *fakeDriver) MoveCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.moves)
}

func fixedConfig(interval time.Duration, amplitude int, randomize bool) ConfigSource {
	return ConfigFunc(func() Config {
		return Config{Interval: interval, Amplitude: amplitude, Randomize: randomize}
	})
}

// testOptions keep timing tight so tests finish quickly.
func testOptions(seed int64) []Option {
	return []Option{
		WithPollSlice(5 * time.Millisecond),
		WithMoveDuration(0),
		WithHold(time.Millisecond),
		WithRand(rand.New(rand.NewSource(seed))),
		WithLogger(log.New(io.Discard, "", 0)),
	}
}
