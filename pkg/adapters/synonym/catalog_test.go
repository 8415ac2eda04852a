package synonym_test

import (
	"strings"
	"testing"

	"github.com/aretw0/decisiontree/pkg/adapters/synonym"
	"github.com/aretw0/decisiontree/pkg/dialog"
	"github.com/aretw0/decisiontree/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	c := synonym.Default()

	tests := []struct {
		name     string
		category domain.Category
		input    string
		status   domain.ResolutionStatus
		value    string
		cands    []string
	}{
		{"canonical", domain.CategoryPreferredSpecies, "people", domain.StatusMatched, "people", nil},
		{"synonym with case and spaces", domain.CategoryBloodTolerance, "  Not  At All ", domain.StatusMatched, "low", nil},
		{"ambiguous", domain.CategoryPreferredSpecies, "creatures", domain.StatusAmbiguous, "", []string{"animals", "people"}},
		{"ambiguous keeps domain order", domain.CategorySalaryImportance, "money", domain.StatusAmbiguous, "", []string{"somewhat", "very"}},
		{"no match", domain.CategoryPersonality, "grumpy", domain.StatusNoMatch, "grumpy", nil},
		{"empty", domain.CategoryPersonality, "   ", domain.StatusUnresolved, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := c.Resolve(tt.category, tt.input)
			assert.Equal(t, tt.category.String(), slot.Name)

			res, err := dialog.Normalize(tt.category, slot)
			require.NoError(t, err)
			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, tt.value, res.ResolvedValue)
			assert.Equal(t, tt.cands, res.Candidates)
		})
	}
}

func TestResolve_AuthorityName(t *testing.T) {
	slot := synonym.Default().Resolve(domain.CategoryPersonality, "shy")
	require.Len(t, slot.Resolutions, 1)
	assert.Equal(t, "decisiontree.catalog.personality", slot.Resolutions[0].Name)
	assert.Equal(t, domain.CodeSuccessMatch, slot.Resolutions[0].Code)
}

func TestNew_Rejects(t *testing.T) {
	_, err := synonym.New(synonym.Entries{"color": {"red": nil}})
	assert.ErrorContains(t, err, "unknown category")

	_, err = synonym.New(synonym.Entries{domain.CategoryBloodTolerance: {"medium": nil}})
	assert.ErrorContains(t, err, "not a canonical value")
}

func TestNew_MissingCategoryAcceptsCanonical(t *testing.T) {
	c, err := synonym.New(synonym.Entries{})
	require.NoError(t, err)
	assert.Equal(t, []string{"extrovert", "introvert"}, c.Phrases(domain.CategoryPersonality))
}

func TestLoad(t *testing.T) {
	c, err := synonym.Load(strings.NewReader(`
preferredSpecies:
  animals: [critters]
`))
	require.NoError(t, err)

	res, err := dialog.Normalize(domain.CategoryPreferredSpecies, c.Resolve(domain.CategoryPreferredSpecies, "critters"))
	require.NoError(t, err)
	assert.Equal(t, "animals", res.ResolvedValue)

	_, err = synonym.Load(strings.NewReader("preferredSpecies: [nope"))
	assert.Error(t, err)
}
