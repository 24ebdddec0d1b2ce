package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stigoleg/jiggler/internal/config"
	"github.com/stigoleg/jiggler/internal/jiggle"
)

type fakeJiggler struct {
	state  jiggle.State
	stats  jiggle.Stats
	starts int
	pauses int
	stops  int
}

func (f *fakeJiggler) Start() {
	f.starts++
	if f.state != jiggle.StateStopped {
		f.state = jiggle.StateRunning
	}
}

func (f *fakeJiggler) Pause() {
	f.pauses++
	if f.state != jiggle.StateStopped {
		f.state = jiggle.StatePaused
	}
}

func (f *fakeJiggler) Stop() {
	f.stops++
	f.state = jiggle.StateStopped
}

func (f *fakeJiggler) State() jiggle.State { return f.state }
func (f *fakeJiggler) Stats() jiggle.Stats { return f.stats }

func newTestModel() (Model, *fakeJiggler) {
	j := &fakeJiggler{}
	return NewModel(j, config.NewStore(jiggle.DefaultConfig()), time.Time{}), j
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInitialView(t *testing.T) {
	m, _ := newTestModel()
	m.SetVersion("1.0.0")
	view := View(m)

	for _, want := range []string{"Jiggler 1.0.0", "Status: paused", "30s", "3 px", "on", "screen corner"} {
		assert.Contains(t, view, want)
	}
	assert.NotContains(t, view, "remaining")
}

func TestToggleStartsAndPauses(t *testing.T) {
	m, j := newTestModel()

	m, _ = Update(keyMsg(" "), m)
	assert.Equal(t, jiggle.StateRunning, j.state)
	assert.Contains(t, View(m), "Status: running")

	m, _ = Update(keyMsg("enter"), m)
	assert.Equal(t, jiggle.StatePaused, j.state)

	m, _ = Update(keyMsg(" "), m)
	_, _ = Update(keyMsg("p"), m)
	assert.Equal(t, jiggle.StatePaused, j.state)
	assert.Equal(t, 2, j.starts)
	assert.Equal(t, 2, j.pauses)
}

func TestSettingsKeys(t *testing.T) {
	tests := []struct {
		name  string
		keys  []string
		check func(t *testing.T, cfg jiggle.Config)
	}{
		{
			name: "longer interval",
			keys: []string{"+", "+"},
			check: func(t *testing.T, cfg jiggle.Config) {
				assert.Equal(t, 32*time.Second, cfg.Interval)
			},
		},
		{
			name: "shorter interval stops at minimum",
			keys: []string{"-", "-", "-", "-", "-", "-", "-", "-", "-", "-", "-", "-", "-", "-", "-", "-", "-", "-", "-", "-", "-", "-", "-", "-", "-", "-", "-", "-", "-", "-"},
			check: func(t *testing.T, cfg jiggle.Config) {
				assert.Equal(t, MinInterval, cfg.Interval)
			},
		},
		{
			name: "amplitude up and capped",
			keys: []string{"up", "up", "up", "up", "up", "up", "up", "up", "up"},
			check: func(t *testing.T, cfg jiggle.Config) {
				assert.Equal(t, MaxAmplitude, cfg.Amplitude)
			},
		},
		{
			name: "amplitude down and floored",
			keys: []string{"down", "down", "down", "down"},
			check: func(t *testing.T, cfg jiggle.Config) {
				assert.Equal(t, MinAmplitude, cfg.Amplitude)
			},
		},
		{
			name: "randomize toggle",
			keys: []string{"r"},
			check: func(t *testing.T, cfg jiggle.Config) {
				assert.False(t, cfg.Randomize)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel()
			for _, k := range tt.keys {
				m, _ = Update(keyMsg(k), m)
			}
			tt.check(t, m.Store.Config())
		})
	}
}

func TestQuitStopsController(t *testing.T) {
	m, j := newTestModel()
	_, cmd := Update(keyMsg("q"), m)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Equal(t, 1, j.stops)
}

func TestHelpToggle(t *testing.T) {
	m, j := newTestModel()
	m, _ = Update(keyMsg("?"), m)
	require.True(t, m.ShowHelp)
	assert.Contains(t, View(m), "--interval")

	m, _ = Update(keyMsg(" "), m)
	assert.Equal(t, jiggle.StatePaused, j.state, "keys other than close are ignored in help")

	m, _ = Update(keyMsg("esc"), m)
	assert.False(t, m.ShowHelp)
	assert.Zero(t, j.stops, "esc closes help without quitting")
}

func TestTickStopsAtDeadline(t *testing.T) {
	m, j := newTestModel()
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	m.Deadline = now.Add(90 * time.Second)

	assert.Equal(t, 90*time.Second, m.TimeRemaining())
	assert.Contains(t, View(m), "1:30 remaining")

	m, cmd := Update(tickMsg(now), m)
	require.NotNil(t, cmd)
	assert.Zero(t, j.stops)

	now = now.Add(2 * time.Minute)
	assert.Zero(t, m.TimeRemaining())
	_, cmd = Update(tickMsg(now), m)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Equal(t, 1, j.stops)
}

func TestTickShowsFailures(t *testing.T) {
	m, j := newTestModel()
	j.stats = jiggle.Stats{Failures: 1, ConsecutiveFailures: 1, LastError: errors.New("display unavailable")}

	m, _ = Update(tickMsg(time.Now()), m)
	assert.Contains(t, View(m), "display unavailable")

	j.stats = jiggle.Stats{Jiggles: 1, Failures: 1, LastError: errors.New("display unavailable")}
	m, _ = Update(tickMsg(time.Now()), m)
	assert.NotContains(t, View(m), "display unavailable")
}

func TestSafetyAbortHint(t *testing.T) {
	m, j := newTestModel()
	j.state = jiggle.StatePaused
	j.stats = jiggle.Stats{SafetyAborts: 1}
	assert.Contains(t, View(m), "fail-safe corner")

	j.state = jiggle.StateRunning
	assert.NotContains(t, View(m), "fail-safe corner")
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00"},
		{59 * time.Second, "0:59"},
		{90 * time.Second, "1:30"},
		{2*time.Hour + 5*time.Minute + 3*time.Second, "2:05:03"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatRemaining(tt.in))
	}
	assert.True(t, strings.HasSuffix(formatInterval(1500*time.Millisecond), "s"))
}
