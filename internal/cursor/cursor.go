// Package cursor moves the mouse pointer on behalf of the jiggle controller.
//
// Every backend enforces the same fail-safe: if the pointer sits in, or a
// movement would pass through, one of the four screen corners the move is
// refused with ErrSafetyAbort. Flinging the mouse into a corner is how the
// user tells the program to stop touching the cursor.
package cursor

import (
	"errors"
	"fmt"
	"time"
)

// ErrSafetyAbort is returned when a movement is refused because the pointer
// is in a reserved screen corner.
var ErrSafetyAbort = errors.New("cursor: pointer in fail-safe corner")

// DefaultCornerSize is the side of the reserved square in each corner, in pixels.
const DefaultCornerSize = 1

// stepInterval is the delay between interpolated positions of an animated move.
const stepInterval = 10 * time.Millisecond

// Point is a screen position in pixels.
type Point struct {
	X int
	Y int
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Driver is the capability set the controller needs from the OS.
type Driver interface {
	// Position reports the current pointer position.
	Position() (Point, error)
	// MoveTo animates the pointer to p over d. A zero duration jumps.
	MoveTo(p Point, d time.Duration) error
}

// IsSafetyAbort reports whether err was caused by the fail-safe corner check.
func IsSafetyAbort(err error) bool {
	return errors.Is(err, ErrSafetyAbort)
}

// Corners describes the reserved regions of a screen.
type Corners struct {
	Width  int
	Height int
	Size   int
}

// Contains reports whether p lies inside one of the reserved corners.
// A zero-sized screen has no corners.
func (c Corners) Contains(p Point) bool {
	if c.Width <= 0 || c.Height <= 0 {
		return false
	}
	size := c.Size
	if size < 1 {
		size = 1
	}
	nearLeft := p.X < size
	nearRight := p.X >= c.Width-size
	nearTop := p.Y < size
	nearBottom := p.Y >= c.Height-size
	return (nearLeft || nearRight) && (nearTop || nearBottom)
}

// check returns a wrapped ErrSafetyAbort if p is in a corner.
func (c Corners) check(p Point) error {
	if c.Contains(p) {
		return fmt.Errorf("%w at %s", ErrSafetyAbort, p)
	}
	return nil
}

// path returns the intermediate positions of an animated move from a to b,
// ending with b. A non-positive duration yields just the target.
func path(a, b Point, d time.Duration) []Point {
	steps := int(d / stepInterval)
	if steps < 1 {
		return []Point{b}
	}
	points := make([]Point, 0, steps)
	for i := 1; i <= steps; i++ {
		points = append(points, Point{
			X: a.X + (b.X-a.X)*i/steps,
			Y: a.Y + (b.Y-a.Y)*i/steps,
		})
	}
	return points
}

// animate walks the pointer from `from` to `to` over d, refusing the move as
// soon as any position along the way falls inside a corner.
func animate(c Corners, from, to Point, d time.Duration, move func(Point) error, sleep func(time.Duration)) error {
	if err := c.check(from); err != nil {
		return err
	}
	points := path(from, to, d)
	var delay time.Duration
	if d > 0 {
		delay = d / time.Duration(len(points))
	}
	for _, pt := range points {
		if err := c.check(pt); err != nil {
			return err
		}
		if err := move(pt); err != nil {
			return fmt.Errorf("cursor: move to %s: %w", pt, err)
		}
		if delay > 0 {
			sleep(delay)
		}
	}
	return nil
}
