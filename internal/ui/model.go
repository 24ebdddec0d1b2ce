package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stigoleg/jiggler/internal/config"
	"github.com/stigoleg/jiggler/internal/jiggle"
)

// Slider ranges for the interactive controls.
const (
	MinInterval  = 2 * time.Second
	MaxInterval  = 120 * time.Second
	IntervalStep = time.Second
	MinAmplitude = 1
	MaxAmplitude = 10
)

// Jiggler is the part of the controller the panel drives.
type Jiggler interface {
	Start()
	Pause()
	Stop()
	State() jiggle.State
	Stats() jiggle.Stats
}

// Model holds the panel state. Settings live in Store, which the
// controller reads on every cycle, so edits apply without a restart.
type Model struct {
	Jiggler      Jiggler
	Store        *config.Store
	Deadline     time.Time
	ShowHelp     bool
	ErrorMessage string
	Version      string

	keys KeyMap
	help help.Model
	now  func() time.Time
}

// NewModel returns a panel driving j with settings from store. A zero
// deadline means no time limit.
func NewModel(j Jiggler, store *config.Store, deadline time.Time) Model {
	return Model{
		Jiggler:  j,
		Store:    store,
		Deadline: deadline,
		keys:     DefaultKeys(),
		help:     NewHelpModel(),
		now:      time.Now,
	}
}

// SetVersion sets the version shown in the title bar.
func (m *Model) SetVersion(v string) {
	m.Version = v
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return Update(msg, m)
}

// View implements tea.Model
func (m Model) View() string {
	return View(m)
}

// TimeRemaining returns how long until the deadline, or 0 without one.
func (m Model) TimeRemaining() time.Duration {
	if m.Deadline.IsZero() {
		return 0
	}
	remaining := m.Deadline.Sub(m.clock())
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (m Model) clock() time.Time {
	if m.now == nil {
		return time.Now()
	}
	return m.now()
}
