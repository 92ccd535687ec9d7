package main

import "github.com/charmbracelet/lipgloss"

var (
	colorOK    = lipgloss.Color("#8BC34A")
	colorFail  = lipgloss.Color("#e53935")
	colorMuted = lipgloss.Color("#9e9e9e")
)

// styles renders the summary lines printed after each command.
type styles struct {
	Title lipgloss.Style
	OK    lipgloss.Style
	Fail  lipgloss.Style
	Muted lipgloss.Style
}

func newStyles() styles {
	return styles{
		Title: lipgloss.NewStyle().Bold(true),
		OK:    lipgloss.NewStyle().Foreground(colorOK).Bold(true),
		Fail:  lipgloss.NewStyle().Foreground(colorFail).Bold(true),
		Muted: lipgloss.NewStyle().Foreground(colorMuted),
	}
}

// status picks OK or Fail.
func (s styles) status(ok bool) lipgloss.Style {
	if ok {
		return s.OK
	}

	return s.Fail
}
