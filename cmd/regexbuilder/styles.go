package main

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// styles renders command output. Colors are dropped automatically when w
// is not a terminal.
type styles struct {
	label   lipgloss.Style
	pattern lipgloss.Style
	pass    lipgloss.Style
	fail    lipgloss.Style
	muted   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		label:   r.NewStyle().Bold(true).Width(9),
		pattern: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#005F87", Dark: "#5FD7FF"}),
		pass:    r.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#007A00", Dark: "#5FD75F"}),
		fail:    r.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}),
		muted:   r.NewStyle().Faint(true),
	}
}

func verdict(st styles, passing bool) string {
	if passing {
		return st.pass.Render("PASS")
	}
	return st.fail.Render("FAIL")
}
