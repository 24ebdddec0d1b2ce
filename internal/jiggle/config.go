package jiggle

import "time"

// Bounds and defaults for a Config.
const (
	MinInterval      = time.Second
	DefaultInterval  = 30 * time.Second
	MinAmplitude     = 1
	DefaultAmplitude = 3
)

// Config is one cycle's worth of jiggle parameters.
type Config struct {
	// Interval is the base delay between jiggles.
	Interval time.Duration
	// Amplitude is the largest per-axis displacement in pixels.
	Amplitude int
	// Randomize jitters the interval by up to 15% either way.
	Randomize bool
}

// DefaultConfig returns the settings a fresh install starts with.
func DefaultConfig() Config {
	return Config{
		Interval:  DefaultInterval,
		Amplitude: DefaultAmplitude,
		Randomize: true,
	}
}

// Normalize returns c with every field raised to its floor.
func (c Config) Normalize() Config {
	if c.Interval < MinInterval {
		c.Interval = MinInterval
	}
	if c.Amplitude < MinAmplitude {
		c.Amplitude = MinAmplitude
	}
	return c
}

// ConfigSource hands the controller a fresh Config once per active cycle.
// Implementations must not block.
type ConfigSource interface {
	Config() Config
}

// ConfigFunc adapts a plain function to ConfigSource.
type ConfigFunc func() Config

// Config implements ConfigSource.
func (f ConfigFunc) Config() Config {
	return f()
}
