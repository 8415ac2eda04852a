package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/decisiontree/pkg/outcome"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcomesMarkdown(t *testing.T) {
	md := OutcomesMarkdown(outcome.Default())
	lines := strings.Split(strings.TrimSpace(md), "\n")

	// Title, blank, header, separator, 24 rows.
	require.Len(t, lines, 28)
	assert.Equal(t, "| unimportant | introvert | low | animals | Zoologist |", lines[4])
	assert.Contains(t, md, "| very | extrovert | low | people | Actor |")
}

func TestNewRenderer_Plain(t *testing.T) {
	out, err := NewRenderer(true)("# Title")
	require.NoError(t, err)
	assert.Equal(t, "# Title", out)
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "1.2.3")
	assert.Contains(t, buf.String(), "Decision Tree")
	assert.Contains(t, buf.String(), "v1.2.3")
}
