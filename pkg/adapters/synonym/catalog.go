// Package synonym resolves free-text answers against a slot-type catalog and
// reports the result the way a platform resolution authority would.
//
// It stands in for the voice platform's entity resolution in local tools
// (the ask simulator and the MCP adapter); the skill itself never calls it.
package synonym

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/aretw0/decisiontree/pkg/domain"
	"gopkg.in/yaml.v3"
)

// AuthorityPrefix prefixes the authority name reported for each slot.
const AuthorityPrefix = "decisiontree.catalog."

// Catalog maps spoken phrases to canonical values, per category.
// A phrase may map to several canonical values, which yields an ambiguous match.
type Catalog struct {
	phrases map[domain.Category]map[string][]string
}

// Entries is the serialized form: category -> canonical value -> synonyms.
type Entries map[domain.Category]map[string][]string

// New builds a catalog. Every canonical value is also a phrase for itself.
func New(entries Entries) (*Catalog, error) {
	c := &Catalog{phrases: make(map[domain.Category]map[string][]string)}

	for category, values := range entries {
		if !category.Valid() {
			return nil, fmt.Errorf("unknown category %q", category)
		}
		index := make(map[string][]string)
		for canonical, synonyms := range values {
			if !category.Contains(canonical) {
				return nil, fmt.Errorf("%s: %q is not a canonical value", category, canonical)
			}
			for _, phrase := range append([]string{canonical}, synonyms...) {
				key := normalize(phrase)
				if key == "" {
					continue
				}
				if !containsString(index[key], canonical) {
					index[key] = append(index[key], canonical)
				}
			}
		}
		for key := range index {
			sortByDomain(category, index[key])
		}
		c.phrases[category] = index
	}

	// Categories without entries still accept their canonical values.
	for _, category := range domain.RequiredSlots() {
		if _, ok := c.phrases[category]; ok {
			continue
		}
		index := make(map[string][]string)
		for _, v := range category.Domain() {
			index[v] = []string{v}
		}
		c.phrases[category] = index
	}
	return c, nil
}

// Resolve turns an utterance into a platform slot payload.
// An empty utterance leaves the slot unfilled (no resolutions).
func (c *Catalog) Resolve(category domain.Category, utterance string) domain.Slot {
	slot := domain.Slot{Name: category.String(), Value: strings.TrimSpace(utterance)}
	if slot.Value == "" {
		return slot
	}

	authority := domain.Authority{Name: AuthorityPrefix + category.String()}
	if values, ok := c.phrases[category][normalize(utterance)]; ok {
		authority.Code = domain.CodeSuccessMatch
		authority.Values = append([]string(nil), values...)
	} else {
		authority.Code = domain.CodeSuccessNoMatch
	}
	slot.Resolutions = []domain.Authority{authority}
	return slot
}

// Phrases lists the phrases known for a category, sorted.
func (c *Catalog) Phrases(category domain.Category) []string {
	out := make([]string, 0, len(c.phrases[category]))
	for p := range c.phrases[category] {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// LoadFile reads a YAML catalog from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open synonym catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load reads a YAML catalog.
func Load(r io.Reader) (*Catalog, error) {
	var entries Entries
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to parse synonym catalog: %w", err)
	}
	return New(entries)
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// sortByDomain orders canonical values as the category domain lists them.
func sortByDomain(category domain.Category, values []string) {
	rank := make(map[string]int)
	for i, v := range category.Domain() {
		rank[v] = i
	}
	sort.SliceStable(values, func(i, j int) bool { return rank[values[i]] < rank[values[j]] })
}
