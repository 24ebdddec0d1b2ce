package cursor

import (
	"errors"
	"sync"
	"time"

	"github.com/go-vgo/robotgo"
)

// Robot drives the real pointer through robotgo.
type Robot struct {
	mu         sync.Mutex
	cornerSize int

	location   func() (int, int)
	move       func(x, y int)
	screenSize func() (int, int)
	sleep      func(time.Duration)
}

// NewRobot returns a driver for the primary display. cornerSize is the side
// of each fail-safe corner in pixels; values below 1 use DefaultCornerSize.
func NewRobot(cornerSize int) *Robot {
	if cornerSize < 1 {
		cornerSize = DefaultCornerSize
	}
	return &Robot{
		cornerSize: cornerSize,
		location:   robotgo.Location,
		move: func(x, y int) {
			robotgo.Move(x, y)
		},
		screenSize: robotgo.GetScreenSize,
		sleep:      time.Sleep,
	}
}

// Position implements Driver.
func (r *Robot) Position() (Point, error) {
	x, y := r.location()
	return Point{X: x, Y: y}, nil
}

// MoveTo implements Driver. The screen size is re-read on every call so a
// resolution change between jiggles moves the corners with it.
func (r *Robot) MoveTo(p Point, d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, h := r.screenSize()
	if w <= 0 || h <= 0 {
		return errors.New("cursor: screen size unavailable")
	}
	corners := Corners{Width: w, Height: h, Size: r.cornerSize}

	x, y := r.location()
	return animate(corners, Point{X: x, Y: y}, p, d, func(pt Point) error {
		r.move(pt.X, pt.Y)
		return nil
	}, r.sleep)
}
