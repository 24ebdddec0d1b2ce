package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stigoleg/jiggler/internal/jiggle"
)

// tickMsg refreshes status and countdown once a second.
type tickMsg time.Time

// Update handles messages and updates the model accordingly.
func Update(msg tea.Msg, m Model) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return handleKey(msg, m)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if !m.Deadline.IsZero() && !m.clock().Before(m.Deadline) {
			m.Jiggler.Stop()
			return m, tea.Quit
		}
		if stats := m.Jiggler.Stats(); stats.Health() == jiggle.HealthFailed && stats.LastError != nil {
			m.ErrorMessage = "Last move failed: " + stats.LastError.Error()
		} else {
			m.ErrorMessage = ""
		}
		return m, tick()
	}

	return m, nil
}

func handleKey(msg tea.KeyMsg, m Model) (Model, tea.Cmd) {
	if m.ShowHelp {
		switch {
		case key.Matches(msg, m.keys.ToggleHelp), msg.String() == "esc":
			m.ShowHelp = false
			return m, nil
		case msg.String() == "ctrl+c", msg.String() == "q":
			m.Jiggler.Stop()
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Jiggler.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.ToggleHelp):
		m.ShowHelp = true

	case key.Matches(msg, m.keys.Toggle):
		if m.Jiggler.State() == jiggle.StateRunning {
			m.Jiggler.Pause()
		} else {
			m.Jiggler.Start()
		}

	case key.Matches(msg, m.keys.Pause):
		m.Jiggler.Pause()

	case key.Matches(msg, m.keys.Faster):
		m.adjustInterval(-IntervalStep)

	case key.Matches(msg, m.keys.Slower):
		m.adjustInterval(IntervalStep)

	case key.Matches(msg, m.keys.Wider):
		m.adjustAmplitude(1)

	case key.Matches(msg, m.keys.Narrower):
		m.adjustAmplitude(-1)

	case key.Matches(msg, m.keys.RandomToggle):
		m.Store.Update(func(c *jiggle.Config) { c.Randomize = !c.Randomize })
	}

	return m, nil
}

func (m Model) adjustInterval(delta time.Duration) {
	m.Store.Update(func(c *jiggle.Config) {
		c.Interval = clampDuration(c.Interval.Truncate(time.Second)+delta, MinInterval, MaxInterval)
	})
}

func (m Model) adjustAmplitude(delta int) {
	m.Store.Update(func(c *jiggle.Config) {
		c.Amplitude = min(max(c.Amplitude+delta, MinAmplitude), MaxAmplitude)
	})
}

func clampDuration(d, lo, hi time.Duration) time.Duration {
	if d < lo {
		return lo
	}
	if d > hi {
		return hi
	}
	return d
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
