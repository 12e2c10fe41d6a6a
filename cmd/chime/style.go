package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/chime/internal/notifier"
)

const statusIcon = "🔊"

var (
	okStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("10"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

// statusLine renders a notification result as a single styled line.
func statusLine(res notifier.Result) string {
	var style lipgloss.Style
	switch {
	case res.Played:
		style = okStyle
	case res.Kind == notifier.KindNoPlayerAvailable, res.Kind == notifier.KindPlaybackFailed:
		style = warnStyle
	default:
		style = errStyle
	}

	line := style.Render(statusIcon + " " + capitalize(res.Message))
	if res.Played && res.Player != "" {
		line += infoStyle.Render(" (via " + res.Player + ")")
	}
	return line
}

// printResult writes the status line for res.
func printResult(w io.Writer, res notifier.Result) {
	_, _ = fmt.Fprintln(w, statusLine(res))
}

// printInfo writes a dimmed informational line.
func printInfo(w io.Writer, msg string) {
	_, _ = fmt.Fprintln(w, infoStyle.Render(msg))
}

// capitalize upper-cases the first ASCII letter of s.
func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
