// Package cleanup runs shutdown steps in order under a shared deadline.
package cleanup

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// DefaultTimeout bounds a whole Execute call when none is given.
const DefaultTimeout = 5 * time.Second

// ErrTimeout is reported when the steps did not finish in time.
var ErrTimeout = errors.New("cleanup timeout exceeded")

// Step is something that must be released on shutdown.
type Step interface {
	Cleanup() error
	Name() string
}

type funcStep struct {
	name string
	fn   func() error
}

func (f funcStep) Cleanup() error { return f.fn() }
func (f funcStep) Name() string   { return f.name }

// Manager runs registered steps once, in registration order.
type Manager struct {
	mu      sync.Mutex
	steps   []Step
	timeout time.Duration
	once    sync.Once
	errs    []error
	logger  *log.Logger
}

// NewManager creates a manager whose Execute gives up after timeout.
func NewManager(timeout time.Duration) *Manager {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Manager{timeout: timeout, logger: log.Default()}
}

// SetLogger replaces the logger used for per-step reports.
func (m *Manager) SetLogger(l *log.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logger = l
}

// Register adds a step.
func (m *Manager) Register(s Step) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.steps = append(m.steps, s)
}

// RegisterFunc registers fn under name.
func (m *Manager) RegisterFunc(name string, fn func() error) {
	m.Register(funcStep{name: name, fn: fn})
}

// Execute runs every step once. Later calls return the first call's errors.
func (m *Manager) Execute() []error {
	m.once.Do(func() {
		m.errs = m.run()
	})
	return m.errs
}

func (m *Manager) run() []error {
	m.mu.Lock()
	steps := make([]Step, len(m.steps))
	copy(steps, m.steps)
	logger := m.logger
	m.mu.Unlock()

	if len(steps) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	var (
		mu   sync.Mutex
		errs []error
	)
	record := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, s := range steps {
			func() {
				defer func() {
					if r := recover(); r != nil {
						record(fmt.Errorf("%s: panic: %v", s.Name(), r))
						logger.Printf("cleanup: panic cleaning up %s: %v", s.Name(), r)
					}
				}()

				if err := s.Cleanup(); err != nil {
					record(fmt.Errorf("%s: %w", s.Name(), err))
					logger.Printf("cleanup: error cleaning up %s: %v", s.Name(), err)
					return
				}
				logger.Printf("cleanup: cleaned up %s", s.Name())
			}()
		}
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.Printf("cleanup: timeout after %v, some steps may not have finished", m.timeout)
		record(ErrTimeout)
	}

	mu.Lock()
	defer mu.Unlock()
	return append([]error(nil), errs...)
}
