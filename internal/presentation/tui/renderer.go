package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/decisiontree/pkg/outcome"
	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// Renderer turns markdown into terminal output.
type Renderer func(markdown string) (string, error)

// NewRenderer returns a glamour renderer sized to the terminal.
// With plain set, or when stdout is not a terminal, markdown is returned as is.
func NewRenderer(plain bool) Renderer {
	if plain || !IsTerminal(os.Stdout) {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width := Width(os.Stdout); width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}
	return r.Render
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Width returns the terminal width of f, or 0 if unknown.
func Width(f *os.File) int {
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return w
}

// OutcomesMarkdown lists every answer combination and its occupation as a markdown table.
func OutcomesMarkdown(table *outcome.Table) string {
	var sb strings.Builder
	sb.WriteString("# Occupations\n\n")
	sb.WriteString("| Salary | Personality | Blood | Species | Occupation |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, e := range table.Entries() {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
			e.Values["salaryImportance"],
			e.Values["personality"],
			e.Values["bloodTolerance"],
			e.Values["preferredSpecies"],
			e.Outcome.Name,
		))
	}
	return sb.String()
}
