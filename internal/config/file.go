package config

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/stigoleg/jiggler/internal/jiggle"
	"github.com/stigoleg/jiggler/internal/util"
)

// Keys understood in the config file.
const (
	keyInterval  = "interval"
	keyAmplitude = "amplitude"
	keyRandomize = "randomize"
)

// FileConfig is the on-disk shape of the config file.
type FileConfig struct {
	Interval  string `mapstructure:"interval" yaml:"interval"`
	Amplitude int    `mapstructure:"amplitude" yaml:"amplitude"`
	Randomize bool   `mapstructure:"randomize" yaml:"randomize"`
}

// File is a YAML config file whose values are layered over a base config.
// Keys listed as pinned are left alone because the command line set them.
type File struct {
	path   string
	v      *viper.Viper
	pinned map[string]bool

	// mu serializes reloads triggered by the watcher and by Reload.
	mu sync.Mutex
}

// OpenFile reads the config file at path.
func OpenFile(path string, pinned ...string) (*File, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	f := &File{path: path, v: v, pinned: map[string]bool{}}
	for _, k := range pinned {
		f.pinned[k] = true
	}
	return f, nil
}

// Path returns the file's location.
func (f *File) Path() string {
	return f.path
}

// Merge returns base with every key present in the file, and not pinned,
// replaced by the file's value. The result is validated.
func (f *File) Merge(base jiggle.Config) (jiggle.Config, error) {
	var fc FileConfig
	if err := f.v.Unmarshal(&fc); err != nil {
		return base, fmt.Errorf("config: decode %s: %w", f.path, err)
	}

	out := base
	if f.v.IsSet(keyInterval) && !f.pinned[keyInterval] {
		d, err := util.ParseInterval(fc.Interval)
		if err != nil {
			return base, fmt.Errorf("config: %s: %w", f.path, err)
		}
		out.Interval = d
	}
	if f.v.IsSet(keyAmplitude) && !f.pinned[keyAmplitude] {
		out.Amplitude = fc.Amplitude
	}
	if f.v.IsSet(keyRandomize) && !f.pinned[keyRandomize] {
		out.Randomize = fc.Randomize
	}

	if err := Validate(out); err != nil {
		return base, fmt.Errorf("config: %s: %w", f.path, err)
	}
	return out, nil
}

// Reload re-reads the file from disk and applies it to store. On error the
// store keeps its current settings.
func (f *File) Reload(store *Store) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: read %s: %w", f.path, err)
	}
	return f.applyLocked(store)
}

func (f *File) applyLocked(store *Store) error {
	cfg, err := f.Merge(store.Config())
	if err != nil {
		return err
	}
	store.Set(cfg)
	log.Printf("config: applied %s (interval=%s amplitude=%d randomize=%v)",
		f.path, cfg.Interval, cfg.Amplitude, cfg.Randomize)
	return nil
}

// Watch applies the file to store whenever it changes on disk. Invalid
// edits are logged and ignored. viper offers no way to stop a watch, so it
// lives as long as the process.
func (f *File) Watch(store *Store) {
	f.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		if err := f.applyLocked(store); err != nil {
			log.Printf("config: ignoring change to %s: %v", e.Name, err)
		}
	})
	f.v.WatchConfig()
	log.Printf("config: watching %s", f.path)
}

// WriteFile writes cfg to path as YAML.
func WriteFile(path string, cfg jiggle.Config) error {
	out, err := yaml.Marshal(FileConfig{
		Interval:  cfg.Interval.String(),
		Amplitude: cfg.Amplitude,
		Randomize: cfg.Randomize,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}
