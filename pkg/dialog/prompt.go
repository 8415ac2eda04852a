package dialog

import (
	"fmt"
	"strings"

	"github.com/aretw0/decisiontree/pkg/domain"
)

// PromptStyle selects how disambiguation prompts are joined.
type PromptStyle string

const (
	// PromptLegacy reproduces the token sequence deployed voice models were built against:
	// every candidate is preceded by spaces and the last one by "or".
	PromptLegacy PromptStyle = "legacy"
	// PromptNatural renders a clean "A, B, or C?" list.
	PromptNatural PromptStyle = "natural"
)

// ParsePromptStyle converts a configuration value into a PromptStyle.
func ParsePromptStyle(s string) (PromptStyle, error) {
	switch PromptStyle(strings.ToLower(strings.TrimSpace(s))) {
	case "", PromptLegacy:
		return PromptLegacy, nil
	case PromptNatural:
		return PromptNatural, nil
	default:
		return "", fmt.Errorf("unknown prompt style %q", s)
	}
}

// DisambiguationPrompt builds the question asking the user to pick one candidate.
func DisambiguationPrompt(style PromptStyle, candidates []string) string {
	var b strings.Builder
	b.WriteString("Which would you like")

	if style == PromptNatural {
		b.WriteString(", ")
		n := len(candidates)
		for i, c := range candidates {
			switch {
			case i == 0:
			case n == 2:
				b.WriteString(" or ")
			case i == n-1:
				b.WriteString(", or ")
			default:
				b.WriteString(", ")
			}
			b.WriteString(c)
		}
		b.WriteString("?")
		return b.String()
	}

	last := len(candidates) - 1
	for i, c := range candidates {
		if i == last {
			b.WriteString("  or  ")
		} else {
			b.WriteString("   ")
		}
		b.WriteString(c)
	}
	b.WriteString("?")
	return b.String()
}

// OpenPrompt builds the question re-asking a slot that failed resolution.
func OpenPrompt(slot domain.Category) string {
	return fmt.Sprintf("What %s are you looking for", slot)
}
