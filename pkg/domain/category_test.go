package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryOrders(t *testing.T) {
	assert.Equal(t, []Category{
		CategoryPreferredSpecies,
		CategoryBloodTolerance,
		CategoryPersonality,
		CategorySalaryImportance,
	}, RequiredSlots())

	assert.Equal(t, []Category{
		CategorySalaryImportance,
		CategoryPersonality,
		CategoryBloodTolerance,
		CategoryPreferredSpecies,
	}, KeyOrder())

	// Callers must not be able to reorder the package-level slices.
	slots := RequiredSlots()
	slots[0] = CategorySalaryImportance
	assert.Equal(t, CategoryPreferredSpecies, RequiredSlots()[0])
}

func TestCategoryDomain(t *testing.T) {
	assert.Equal(t, []string{"unimportant", "somewhat", "very"}, CategorySalaryImportance.Domain())
	assert.True(t, CategoryBloodTolerance.Contains("high"))
	assert.False(t, CategoryBloodTolerance.Contains("High"))
	assert.False(t, Category("favoriteColor").Valid())
	assert.Nil(t, Category("favoriteColor").Domain())
}

func TestSlotResolutionValue(t *testing.T) {
	tests := []struct {
		name string
		res  SlotResolution
		want string
		ok   bool
	}{
		{"matched", SlotResolution{Status: StatusMatched, ResolvedValue: "low"}, "low", true},
		{"no match passthrough", SlotResolution{Status: StatusNoMatch, RawValue: "meh", ResolvedValue: "meh"}, "meh", true},
		{"unresolved", SlotResolution{Status: StatusUnresolved, RawValue: "dogs"}, "", false},
		{"ambiguous never read", SlotResolution{Status: StatusAmbiguous, ResolvedValue: "stale", Candidates: []string{"a", "b"}}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.res.Value()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestResolutionStatusText(t *testing.T) {
	for _, s := range []ResolutionStatus{StatusUnresolved, StatusMatched, StatusAmbiguous, StatusNoMatch} {
		text, err := s.MarshalText()
		assert.NoError(t, err)

		var back ResolutionStatus
		assert.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, s, back)
	}

	var s ResolutionStatus
	assert.Error(t, s.UnmarshalText([]byte("MAYBE")))
}

func TestTurnStateAnomalies(t *testing.T) {
	turn := TurnState{
		Slots: map[Category]SlotResolution{
			CategorySalaryImportance: {Status: StatusNoMatch, ResolvedValue: "lots"},
			CategoryPreferredSpecies: {Status: StatusAmbiguous, Candidates: []string{"animals", "people"}},
			CategoryBloodTolerance:   {Status: StatusMatched, ResolvedValue: "low"},
		},
	}

	assert.Equal(t, []Category{CategoryPreferredSpecies, CategorySalaryImportance}, turn.Anomalies())
	assert.Equal(t, map[Category]string{
		CategorySalaryImportance: "lots",
		CategoryBloodTolerance:   "low",
	}, turn.Values())
}
