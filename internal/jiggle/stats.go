package jiggle

import (
	"sync"
	"sync/atomic"
	"time"
)

// Health summarises whether recent jiggles have worked.
type Health int

const (
	HealthUnknown Health = iota
	HealthOK
	HealthFailed
)

func (h Health) String() string {
	switch h {
	case HealthOK:
		return "ok"
	case HealthFailed:
		return "failing"
	default:
		return "unknown"
	}
}

// Stats is a point-in-time copy of the controller's counters.
type Stats struct {
	Jiggles      int64
	Failures     int64
	SafetyAborts int64
	// ConsecutiveFailures resets on the next successful jiggle.
	ConsecutiveFailures int64
	LastJiggle          time.Time
	LastError           error
}

// Health derives the simulation health from the counters.
func (s Stats) Health() Health {
	switch {
	case s.ConsecutiveFailures > 0:
		return HealthFailed
	case s.Jiggles > 0:
		return HealthOK
	default:
		return HealthUnknown
	}
}

type stats struct {
	jiggles      atomic.Int64
	failures     atomic.Int64
	safetyAborts atomic.Int64
	consecutive  atomic.Int64

	mu         sync.Mutex
	lastJiggle time.Time
	lastErr    error
}

func (s *stats) record(res Result) {
	switch res.Outcome {
	case OutcomeMoved:
		s.jiggles.Add(1)
		s.consecutive.Store(0)
		s.mu.Lock()
		s.lastJiggle = time.Now()
		s.mu.Unlock()
	case OutcomeSafetyAbort:
		s.safetyAborts.Add(1)
	case OutcomeFailed:
		s.failures.Add(1)
		s.consecutive.Add(1)
		s.mu.Lock()
		s.lastErr = res.Err
		s.mu.Unlock()
	}
}

func (s *stats) snapshot() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Jiggles:             s.jiggles.Load(),
		Failures:            s.failures.Load(),
		SafetyAborts:        s.safetyAborts.Load(),
		ConsecutiveFailures: s.consecutive.Load(),
		LastJiggle:          s.lastJiggle,
		LastError:           s.lastErr,
	}
}
