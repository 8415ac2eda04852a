package outcome

import (
	"sync"

	"github.com/aretw0/decisiontree/pkg/domain"
)

var defaultOutcomes = []domain.Outcome{
	{Name: "Actor"},
	{Name: "Animal Control Worker"},
	{Name: "Animal Shelter Manager"},
	{Name: "Artist"},
	{Name: "Court Reporter"},
	{Name: "Doctor"},
	{Name: "Geoscientist"},
	{Name: "Investment Banker"},
	{Name: "Lighthouse Keeper"},
	{Name: "Marine Ecologist"},
	{Name: "Park Naturalist"},
	{Name: "Pet Groomer"},
	{Name: "Physical Therapist"},
	{Name: "Security Guard"},
	{Name: "Social Media Engineer"},
	{Name: "Software Engineer"},
	{Name: "Teacher"},
	{Name: "Veterinary"},
	{Name: "Veterinary Dentist"},
	{Name: "Zookeeper"},
	{Name: "Zoologist"},
}

var defaultMapping = map[string]int{
	"unimportant-introvert-low-animals":  20,
	"unimportant-introvert-low-people":   8,
	"unimportant-introvert-high-animals": 1,
	"unimportant-introvert-high-people":  4,
	"unimportant-extrovert-low-animals":  10,
	"unimportant-extrovert-low-people":   3,
	"unimportant-extrovert-high-animals": 11,
	"unimportant-extrovert-high-people":  13,
	"somewhat-introvert-low-animals":     20,
	"somewhat-introvert-low-people":      6,
	"somewhat-introvert-high-animals":    19,
	"somewhat-introvert-high-people":     14,
	"somewhat-extrovert-low-animals":     2,
	"somewhat-extrovert-low-people":      12,
	"somewhat-extrovert-high-animals":    17,
	"somewhat-extrovert-high-people":     16,
	"very-introvert-low-animals":         9,
	"very-introvert-low-people":          15,
	"very-introvert-high-animals":        17,
	"very-introvert-high-people":         7,
	"very-extrovert-low-animals":         17,
	"very-extrovert-low-people":          0,
	"very-extrovert-high-animals":        1,
	"very-extrovert-high-people":         5,
}

var (
	defaultTable *Table
	defaultOnce  sync.Once
)

// Default returns the built-in job table. It is validated on first use and
// panics if the built-in data is ever edited into an invalid shape.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := NewTable(defaultMapping, defaultOutcomes)
		if err != nil {
			panic("outcome: built-in table is invalid: " + err.Error())
		}
		defaultTable = t
	})
	return defaultTable
}
