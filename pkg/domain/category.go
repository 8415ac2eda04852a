package domain

// Category is one of the four fixed answer dimensions collected by the dialog.
// Its string value doubles as the slot name on the voice platform.
type Category string

const (
	CategoryPreferredSpecies Category = "preferredSpecies"
	CategoryBloodTolerance   Category = "bloodTolerance"
	CategoryPersonality      Category = "personality"
	CategorySalaryImportance Category = "salaryImportance"
)

var (
	// requiredSlots is the order in which the dialog controller scans slots.
	requiredSlots = []Category{
		CategoryPreferredSpecies,
		CategoryBloodTolerance,
		CategoryPersonality,
		CategorySalaryImportance,
	}

	// keyOrder is the order in which values are joined into an outcome key.
	keyOrder = []Category{
		CategorySalaryImportance,
		CategoryPersonality,
		CategoryBloodTolerance,
		CategoryPreferredSpecies,
	}

	domains = map[Category][]string{
		CategoryPreferredSpecies: {"animals", "people"},
		CategoryBloodTolerance:   {"low", "high"},
		CategoryPersonality:      {"introvert", "extrovert"},
		CategorySalaryImportance: {"unimportant", "somewhat", "very"},
	}
)

// RequiredSlots returns the categories in dialog scan order:
// preferredSpecies, bloodTolerance, personality, salaryImportance.
func RequiredSlots() []Category {
	return append([]Category(nil), requiredSlots...)
}

// KeyOrder returns the categories in outcome key order:
// salaryImportance, personality, bloodTolerance, preferredSpecies.
func KeyOrder() []Category {
	return append([]Category(nil), keyOrder...)
}

// Domain returns the canonical values accepted for the category.
// Unknown categories return nil.
func (c Category) Domain() []string {
	values, ok := domains[c]
	if !ok {
		return nil
	}
	return append([]string(nil), values...)
}

// Valid reports whether c is one of the four known categories.
func (c Category) Valid() bool {
	_, ok := domains[c]
	return ok
}

// Contains reports whether value is a canonical value of the category.
func (c Category) Contains(value string) bool {
	for _, v := range domains[c] {
		if v == value {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}
