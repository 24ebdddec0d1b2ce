// Package config turns command-line flags and an optional YAML file into
// the live settings the jiggle controller reads.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/stigoleg/jiggler/internal/cursor"
	"github.com/stigoleg/jiggler/internal/jiggle"
	"github.com/stigoleg/jiggler/internal/util"
)

// AppName is the binary name used in usage text and generated docs.
const AppName = "jiggler"

// ErrConflictingDeadline is returned when both --duration and --clock are set.
var ErrConflictingDeadline = errors.New("cannot use --duration and --clock together")

// Config is the parsed command line.
type Config struct {
	Jiggle      jiggle.Config
	Deadline    time.Time
	ConfigFile  string
	Start       bool
	Headless    bool
	DryRun      bool
	CornerSize  int
	LogFile     string
	ShowVersion bool

	// pinned holds the file keys given explicitly on the command line.
	pinned map[string]bool
}

// Pinned returns the config file keys that the command line overrides.
func (c *Config) Pinned() []string {
	keys := make([]string, 0, len(c.pinned))
	for k := range c.pinned {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type rawFlags struct {
	interval string
	duration string
	clock    string
}

// flagKeys maps flag names to the config file key they override.
var flagKeys = map[string]string{
	"interval":  keyInterval,
	"i":         keyInterval,
	"amplitude": keyAmplitude,
	"a":         keyAmplitude,
	"randomize": keyRandomize,
}

func newFlagSet(cfg *Config, raw *rawFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(AppName, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	def := jiggle.DefaultConfig()
	const (
		intervalUsage  = "Base interval between jiggles (e.g., \"30\", \"45s\", \"1m\")"
		amplitudeUsage = "Maximum cursor displacement per axis in pixels"
		durationUsage  = "Stop after this long (e.g., \"2h30m\" or \"150\" minutes)"
		clockUsage     = "Stop at this time (e.g., \"22:00\" or \"10:00PM\")"
		fileUsage      = "YAML config file, reloaded when it changes"
		startUsage     = "Start jiggling immediately"
		logUsage       = "Log file path"
		versionUsage   = "Show version information"
	)

	fs.StringVar(&raw.interval, "interval", "", intervalUsage)
	fs.StringVar(&raw.interval, "i", "", intervalUsage)
	fs.IntVar(&cfg.Jiggle.Amplitude, "amplitude", def.Amplitude, amplitudeUsage)
	fs.IntVar(&cfg.Jiggle.Amplitude, "a", def.Amplitude, amplitudeUsage)
	fs.BoolVar(&cfg.Jiggle.Randomize, "randomize", def.Randomize, "Randomize interval and displacement")
	fs.StringVar(&raw.duration, "duration", "", durationUsage)
	fs.StringVar(&raw.duration, "d", "", durationUsage)
	fs.StringVar(&raw.clock, "clock", "", clockUsage)
	fs.StringVar(&raw.clock, "c", "", clockUsage)
	fs.StringVar(&cfg.ConfigFile, "config", "", fileUsage)
	fs.StringVar(&cfg.ConfigFile, "f", "", fileUsage)
	fs.BoolVar(&cfg.Start, "start", false, startUsage)
	fs.BoolVar(&cfg.Start, "s", false, startUsage)
	fs.BoolVar(&cfg.Headless, "headless", false, "Run without the TUI until interrupted or the deadline passes")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Move a virtual cursor and log instead of touching the real one")
	fs.IntVar(&cfg.CornerSize, "corner", cursor.DefaultCornerSize, "Size in pixels of the fail-safe screen corners")
	fs.StringVar(&cfg.LogFile, "log", "jiggler.log", logUsage)
	fs.StringVar(&cfg.LogFile, "l", "jiggler.log", logUsage)
	fs.BoolVar(&cfg.ShowVersion, "version", false, versionUsage)
	fs.BoolVar(&cfg.ShowVersion, "v", false, versionUsage)
	return fs
}

// ParseArgs parses args (without the program name). now anchors --clock.
func ParseArgs(args []string, now time.Time) (*Config, error) {
	cfg := &Config{Jiggle: jiggle.DefaultConfig(), pinned: map[string]bool{}}
	var raw rawFlags
	fs := newFlagSet(cfg, &raw)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	fs.Visit(func(f *flag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			cfg.pinned[key] = true
		}
	})

	if raw.interval != "" {
		d, err := util.ParseInterval(raw.interval)
		if err != nil {
			return nil, err
		}
		cfg.Jiggle.Interval = d
	}

	if raw.duration != "" && raw.clock != "" {
		return nil, ErrConflictingDeadline
	}
	if raw.duration != "" {
		d, err := util.ParseDuration(raw.duration)
		if err != nil {
			return nil, err
		}
		if d <= 0 {
			return nil, fmt.Errorf("duration must be positive, got %s", d)
		}
		cfg.Deadline = now.Add(d)
	}
	if raw.clock != "" {
		t, err := util.NextOccurrence(raw.clock, now)
		if err != nil {
			return nil, err
		}
		cfg.Deadline = t
	}

	if cfg.Headless {
		cfg.Start = true
	}
	if err := Validate(cfg.Jiggle); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings below the controller's floors instead of
// silently clamping user input.
func Validate(c jiggle.Config) error {
	if c.Interval < jiggle.MinInterval {
		return fmt.Errorf("interval must be at least %s, got %s", jiggle.MinInterval, c.Interval)
	}
	if c.Amplitude < jiggle.MinAmplitude {
		return fmt.Errorf("amplitude must be at least %d, got %d", jiggle.MinAmplitude, c.Amplitude)
	}
	return nil
}

// ParseFlags parses os.Args, printing help, version or a styled error and
// exiting where a CLI user expects it.
func ParseFlags(version string) *Config {
	cfg, err := ParseArgs(os.Args[1:], time.Now())
	switch {
	case errors.Is(err, flag.ErrHelp):
		fmt.Print(Usage())
		os.Exit(0)
	case err != nil:
		fmt.Println(formatError(err))
		os.Exit(1)
	}

	if cfg.ShowVersion {
		fmt.Printf("Jiggler Version: %s\n", version)
		os.Exit(0)
	}
	return cfg
}

// FlagDef describes one command-line option with its aliases folded together.
type FlagDef struct {
	Short string
	Long  string
	Arg   string
	Desc  string
}

// Flags lists every option the binary accepts, in a stable order.
func Flags() []FlagDef {
	var raw rawFlags
	fs := newFlagSet(&Config{}, &raw)

	byUsage := map[string]*FlagDef{}
	var order []string
	fs.VisitAll(func(f *flag.Flag) {
		def, ok := byUsage[f.Usage]
		if !ok {
			def = &FlagDef{Desc: f.Usage}
			if b, isBool := f.Value.(interface{ IsBoolFlag() bool }); !isBool || !b.IsBoolFlag() {
				def.Arg = "<value>"
			}
			byUsage[f.Usage] = def
			order = append(order, f.Usage)
		}
		if len(f.Name) == 1 {
			def.Short = "-" + f.Name
		} else {
			def.Long = "--" + f.Name
		}
	})

	defs := make([]FlagDef, 0, len(order))
	for _, u := range order {
		defs = append(defs, *byUsage[u])
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Long < defs[j].Long })
	return defs
}

// Usage renders the help text.
func Usage() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Usage:\n  %s [flags]\n\nFlags:\n", AppName)
	for _, f := range Flags() {
		names := f.Long
		if f.Short != "" {
			names = f.Short + ", " + f.Long
		}
		if f.Arg != "" {
			names += " " + f.Arg
		}
		fmt.Fprintf(&b, "  %-28s %s\n", names, f.Desc)
	}
	return helpStyle.Render(b.String()) + "\n"
}

var (
	errorColor = lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF4040"}
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"})
)

func formatError(err error) string {
	msg := err.Error()
	parts := strings.SplitN(msg, "\n\n", 2)
	if len(parts) == 2 {
		header := lipgloss.NewStyle().Bold(true).Foreground(errorColor).Render(parts[0])
		details := helpStyle.Render(parts[1])
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(errorColor).
			Padding(0, 1).
			Render(fmt.Sprintf("%s\n\n%s", header, details))
	}
	return lipgloss.NewStyle().Foreground(errorColor).Render(msg)
}
