// Package ui provides the terminal control panel for the jiggler.
package ui

import "github.com/charmbracelet/lipgloss"

// Colors defines the color scheme used throughout the application
type Colors struct {
	Subtle    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Special   lipgloss.AdaptiveColor
	Warning   lipgloss.AdaptiveColor
	Error     lipgloss.AdaptiveColor
}

var defaultColors = Colors{
	Subtle:    lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"},
	Highlight: lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"},
	Special:   lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"},
	Warning:   lipgloss.AdaptiveColor{Light: "#C18401", Dark: "#F5C542"},
	Error:     lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF4040"},
}

// Style represents a collection of styles used in the application
type Style struct {
	Title          lipgloss.Style
	ActiveStatus   lipgloss.Style
	InactiveStatus lipgloss.Style
	Label          lipgloss.Style
	Value          lipgloss.Style
	Meter          lipgloss.Style
	Help           lipgloss.Style
	Warning        lipgloss.Style
	Error          lipgloss.Style
	Countdown      lipgloss.Style
}

// DefaultStyle returns the default style configuration
func DefaultStyle() Style {
	base := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1)

	return Style{
		Title: base.
			Bold(true).
			Foreground(defaultColors.Highlight),

		ActiveStatus: base.
			Bold(true).
			Foreground(defaultColors.Special),

		InactiveStatus: base.
			Foreground(defaultColors.Subtle),

		Label: base.
			Width(14).
			Foreground(defaultColors.Subtle),

		Value: lipgloss.NewStyle().
			Bold(true),

		Meter: lipgloss.NewStyle().
			Foreground(defaultColors.Highlight),

		Help: base.
			Foreground(defaultColors.Subtle),

		Warning: base.
			Foreground(defaultColors.Warning),

		Error: base.
			Foreground(defaultColors.Error),

		Countdown: base.
			Foreground(defaultColors.Highlight).
			Bold(true),
	}
}

// Current holds the current style configuration
var Current = DefaultStyle()
