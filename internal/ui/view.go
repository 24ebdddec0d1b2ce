package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/stigoleg/jiggler/internal/config"
	"github.com/stigoleg/jiggler/internal/jiggle"
)

const meterWidth = 20

// View renders the current state of the model to a string.
func View(m Model) string {
	if m.ShowHelp {
		return helpView(m)
	}

	var b strings.Builder

	title := "Jiggler"
	if m.Version != "" {
		title += " " + m.Version
	}
	b.WriteString(Current.Title.Render(title))
	b.WriteString("\n\n")

	state := m.Jiggler.State()
	b.WriteString(statusLine(state))
	b.WriteString("\n\n")

	cfg := m.Store.Config()
	b.WriteString(row("Interval", fmt.Sprintf("%s %s", formatInterval(cfg.Interval),
		meter(float64(cfg.Interval-MinInterval)/float64(MaxInterval-MinInterval)))))
	b.WriteString(row("Amplitude", fmt.Sprintf("%d px %s", cfg.Amplitude,
		meter(float64(cfg.Amplitude-MinAmplitude)/float64(MaxAmplitude-MinAmplitude)))))
	b.WriteString(row("Random", onOff(cfg.Randomize)))

	stats := m.Jiggler.Stats()
	b.WriteString(row("Jiggles", fmt.Sprintf("%d (%s)", stats.Jiggles, stats.Health())))
	if !stats.LastJiggle.IsZero() {
		b.WriteString(row("Last", stats.LastJiggle.Format("15:04:05")))
	}

	if !m.Deadline.IsZero() {
		remaining := m.TimeRemaining()
		b.WriteString("\n")
		b.WriteString(Current.Countdown.Render(fmt.Sprintf("%s remaining", formatRemaining(remaining))))
		b.WriteString("\n")
	}

	if stats.SafetyAborts > 0 && state == jiggle.StatePaused {
		b.WriteString("\n" + Current.Warning.Render("Paused by fail-safe corner. Press space to resume."))
	}
	if m.ErrorMessage != "" {
		b.WriteString("\n" + Current.Error.Render(m.ErrorMessage))
	}

	b.WriteString("\n\n" + Current.Help.Render("Tip: fling the mouse into a screen corner to pause."))
	b.WriteString("\n" + Current.Help.Render(m.help.View(m.keys.ForState(state))))
	return b.String()
}

func statusLine(s jiggle.State) string {
	switch s {
	case jiggle.StateRunning:
		return Current.ActiveStatus.Render("● Status: running")
	case jiggle.StateStopped:
		return Current.InactiveStatus.Render("■ Status: stopped")
	default:
		return Current.InactiveStatus.Render("○ Status: paused")
	}
}

func row(label, value string) string {
	return Current.Label.Render(label) + Current.Value.Render(value) + "\n"
}

func meter(fraction float64) string {
	fraction = min(max(fraction, 0), 1)
	filled := int(fraction * meterWidth)
	return Current.Meter.Render(strings.Repeat("━", filled)) + strings.Repeat("─", meterWidth-filled)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func formatInterval(d time.Duration) string {
	if d%time.Second == 0 {
		return fmt.Sprintf("%ds", int(d/time.Second))
	}
	return d.String()
}

func formatRemaining(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	mins := int(d/time.Minute) % 60
	secs := int(d/time.Second) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, mins, secs)
	}
	return fmt.Sprintf("%d:%02d", mins, secs)
}

func helpView(m Model) string {
	var b strings.Builder
	b.WriteString(Current.Title.Render("Jiggler Help"))
	b.WriteString("\n\n")
	b.WriteString(Current.Help.Render(strings.TrimRight(config.Usage(), "\n")))
	b.WriteString("\n\n")

	fullHelp := m.help
	fullHelp.ShowAll = true
	b.WriteString(Current.Help.Render(fullHelp.View(m.keys.ForState(m.Jiggler.State()))))
	b.WriteString("\n\n" + Current.Help.Render("Press ? or esc to close help"))
	return b.String()
}
