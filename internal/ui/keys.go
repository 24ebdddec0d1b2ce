package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"

	"github.com/stigoleg/jiggler/internal/jiggle"
)

// KeyMap defines key bindings for the control panel.
type KeyMap struct {
	// Common
	Quit       key.Binding
	ToggleHelp key.Binding

	// Lifecycle
	Toggle key.Binding
	Pause  key.Binding

	// Settings
	Faster       key.Binding
	Slower       key.Binding
	Wider        key.Binding
	Narrower     key.Binding
	RandomToggle key.Binding
}

// DefaultKeys returns the default key bindings for the application.
func DefaultKeys() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ToggleHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("space", "start/pause"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Faster: key.NewBinding(
			key.WithKeys("-", "left", "h"),
			key.WithHelp("←/-", "shorter interval"),
		),
		Slower: key.NewBinding(
			key.WithKeys("+", "=", "right", "l"),
			key.WithHelp("→/+", "longer interval"),
		),
		Wider: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "more pixels"),
		),
		Narrower: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "fewer pixels"),
		),
		RandomToggle: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "random pattern"),
		),
	}
}

// NewHelpModel returns a configured help model.
func NewHelpModel() help.Model {
	h := help.New()
	h.ShortSeparator = " • "
	return h
}

// stateKeyMap adapts bindings to the controller state for contextual help.
type stateKeyMap struct {
	keys  KeyMap
	state jiggle.State
}

// ForState returns a contextual key map implementing help.KeyMap.
func (k KeyMap) ForState(s jiggle.State) help.KeyMap {
	return stateKeyMap{keys: k, state: s}
}

// ShortHelp implements help.KeyMap.
func (s stateKeyMap) ShortHelp() []key.Binding {
	switch s.state {
	case jiggle.StateRunning:
		return []key.Binding{s.keys.Toggle, s.keys.Faster, s.keys.Slower, s.keys.ToggleHelp, s.keys.Quit}
	case jiggle.StatePaused:
		return []key.Binding{s.keys.Toggle, s.keys.RandomToggle, s.keys.ToggleHelp, s.keys.Quit}
	default:
		return []key.Binding{s.keys.Quit}
	}
}

// FullHelp implements help.KeyMap.
func (s stateKeyMap) FullHelp() [][]key.Binding {
	if s.state == jiggle.StateStopped {
		return [][]key.Binding{{s.keys.Quit}}
	}
	return [][]key.Binding{
		{s.keys.Toggle, s.keys.Pause},
		{s.keys.Faster, s.keys.Slower, s.keys.Wider, s.keys.Narrower, s.keys.RandomToggle},
		{s.keys.ToggleHelp, s.keys.Quit},
	}
}
