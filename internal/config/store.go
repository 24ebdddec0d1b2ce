package config

import (
	"sync"

	"github.com/stigoleg/jiggler/internal/jiggle"
)

// Store holds the live jiggle settings. The UI and the config file watcher
// write it; the controller reads it once per cycle through Config.
type Store struct {
	mu  sync.RWMutex
	cfg jiggle.Config
}

// NewStore returns a store seeded with cfg.
func NewStore(cfg jiggle.Config) *Store {
	return &Store{cfg: cfg}
}

// Config implements jiggle.ConfigSource. The returned value is always
// normalized, whatever was written.
func (s *Store) Config() jiggle.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Normalize()
}

// Set replaces all settings.
func (s *Store) Set(cfg jiggle.Config) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
}

// Update applies fn to the stored settings under the write lock and returns
// the normalized result.
func (s *Store) Update(fn func(*jiggle.Config)) jiggle.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.cfg)
	s.cfg = s.cfg.Normalize()
	return s.cfg
}
