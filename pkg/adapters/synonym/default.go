package synonym

import "github.com/aretw0/decisiontree/pkg/domain"

// DefaultEntries is the built-in slot-type catalog.
// "creatures", "both" and "money" deliberately map to more than one value.
var DefaultEntries = Entries{
	domain.CategoryPreferredSpecies: {
		"animals": {"animal", "pets", "dogs", "cats", "wildlife", "creatures"},
		"people":  {"person", "humans", "human", "folks", "customers", "creatures"},
	},
	domain.CategoryBloodTolerance: {
		"low":  {"no", "none", "not at all", "squeamish", "little"},
		"high": {"yes", "a lot", "lots", "fine", "no problem"},
	},
	domain.CategoryPersonality: {
		"introvert": {"introverted", "shy", "quiet", "reserved", "both"},
		"extrovert": {"extroverted", "outgoing", "social", "talkative", "both"},
	},
	domain.CategorySalaryImportance: {
		"unimportant": {"not important", "don't care", "irrelevant"},
		"somewhat":    {"a bit", "kind of", "moderately", "money"},
		"very":        {"very important", "extremely", "a lot", "money"},
	},
}

// Default returns a catalog built from DefaultEntries.
func Default() *Catalog {
	c, err := New(DefaultEntries)
	if err != nil {
		panic(err)
	}
	return c
}
