package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/decisiontree/internal/presentation/graph"
	"github.com/aretw0/decisiontree/pkg/domain"
	"github.com/aretw0/decisiontree/pkg/outcome"
	"github.com/stretchr/testify/assert"
)

func TestGenerateMermaid(t *testing.T) {
	out := graph.GenerateMermaid(outcome.Default(), nil)

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	for _, want := range []string{
		`q_root(("salaryImportance?"))`,
		`q_very[/"personality?"/]`,
		`q_very_extrovert[/"bloodTolerance?"/]`,
		`q_very_extrovert_low[/"preferredSpecies?"/]`,
		`o_0["Actor"]`,
		`q_root -- "very" --> q_very`,
		`q_very_extrovert_low -- "people" --> o_0`,
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "classDef")
}

func TestGenerateMermaid_EdgeCount(t *testing.T) {
	out := graph.GenerateMermaid(outcome.Default(), nil)
	// 3 + 6 + 12 + 24 edges for a full tree of 3x2x2x2 answers.
	assert.Equal(t, 45, strings.Count(out, "-->"))
	// Each occupation appears once, however many keys lead to it.
	assert.Equal(t, 1, strings.Count(out, `"Actor"]`))
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	out := graph.GenerateMermaid(outcome.Default(), &graph.GraphOverlay{
		Answers: map[domain.Category]string{
			domain.CategorySalaryImportance: "very",
			domain.CategoryPersonality:      "extrovert",
			domain.CategoryBloodTolerance:   "low",
			domain.CategoryPreferredSpecies: "people",
		},
	})

	assert.Contains(t, out, "classDef visited")
	assert.Contains(t, out, "class q_root visited;")
	assert.Contains(t, out, "class q_very_extrovert_low visited;")
	assert.Contains(t, out, "class o_0 current;")
}

func TestGenerateMermaid_PartialOverlay(t *testing.T) {
	out := graph.GenerateMermaid(outcome.Default(), &graph.GraphOverlay{
		Answers: map[domain.Category]string{domain.CategorySalaryImportance: "somewhat"},
	})

	assert.Contains(t, out, "class q_somewhat visited;")
	assert.NotContains(t, out, "current;")
}
