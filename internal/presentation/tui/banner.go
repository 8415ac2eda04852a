package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the decision tree banner with the version.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"        o        ", "#34d399"},
		{"       / \\       ", "#10b981"},
		{"      o   o      ", "#059669"},
		{"     / \\ / \\     ", "#047857"},
		{"    o  o o  o    ", "#065f46"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	title := termenv.String("  Decision Tree").Bold().Foreground(p.Color("#34d399"))
	fmt.Fprintf(w, "%s %s\n\n", title, termenv.String("v"+version).Faint())
}
