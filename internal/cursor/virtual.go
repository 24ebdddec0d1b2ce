package cursor

import (
	"log"
	"sync"
	"time"
)

// Virtual is an in-memory pointer used for dry runs. It applies the same
// corner check as Robot against a fixed screen size and logs every move.
type Virtual struct {
	mu      sync.Mutex
	pos     Point
	corners Corners
	moves   int
	sleep   func(time.Duration)
}

// NewVirtual returns a virtual pointer at the centre of a w x h screen.
func NewVirtual(w, h, cornerSize int) *Virtual {
	if cornerSize < 1 {
		cornerSize = DefaultCornerSize
	}
	return &Virtual{
		pos:     Point{X: w / 2, Y: h / 2},
		corners: Corners{Width: w, Height: h, Size: cornerSize},
		sleep:   time.Sleep,
	}
}

// Position implements Driver.
func (v *Virtual) Position() (Point, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pos, nil
}

// MoveTo implements Driver.
func (v *Virtual) MoveTo(p Point, d time.Duration) error {
	v.mu.Lock()
	from := v.pos
	v.mu.Unlock()

	err := animate(v.corners, from, p, d, func(pt Point) error {
		v.mu.Lock()
		v.pos = pt
		v.mu.Unlock()
		return nil
	}, v.sleep)
	if err != nil {
		log.Printf("cursor: dry-run move %s -> %s refused: %v", from, p, err)
		return err
	}

	v.mu.Lock()
	v.moves++
	v.mu.Unlock()
	log.Printf("cursor: dry-run move %s -> %s over %s", from, p, d)
	return nil
}

// Warp places the pointer at p without any checks, as a user would.
func (v *Virtual) Warp(p Point) {
	v.mu.Lock()
	v.pos = p
	v.mu.Unlock()
}

// Moves returns the number of completed MoveTo calls.
func (v *Virtual) Moves() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.moves
}
