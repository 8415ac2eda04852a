package outcome

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/decisiontree/pkg/domain"
)

// Table is an immutable, validated mapping from answer keys to outcomes.
type Table struct {
	mapping  map[string]int
	outcomes []domain.Outcome
}

// Entry is one row of a table, used for listing and rendering.
type Entry struct {
	Key     string            `json:"key"`
	Values  map[string]string `json:"values"`
	Outcome domain.Outcome    `json:"outcome"`
}

// NewTable validates mapping and outcomes and builds a Table.
// Outcome indexes are assigned from their position in the slice.
func NewTable(mapping map[string]int, outcomes []domain.Outcome) (*Table, error) {
	var errs []error

	if len(outcomes) == 0 {
		errs = append(errs, &ValidationError{Reason: "no outcomes defined"})
	}

	for _, key := range AllKeys() {
		if _, ok := mapping[key]; !ok {
			errs = append(errs, &ValidationError{Key: key, Reason: "missing from table"})
		}
	}

	known := make(map[string]bool, 24)
	for _, key := range AllKeys() {
		known[key] = true
	}

	keys := make([]string, 0, len(mapping))
	for key := range mapping {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if !known[key] {
			errs = append(errs, &ValidationError{Key: key, Reason: "outside the declared domains"})
			continue
		}
		if idx := mapping[key]; idx < 0 || idx >= len(outcomes) {
			errs = append(errs, &ValidationError{Key: key, Reason: fmt.Sprintf("index %d out of range [0,%d)", idx, len(outcomes))})
		}
	}

	for i, o := range outcomes {
		if strings.TrimSpace(o.Name) == "" {
			errs = append(errs, &ValidationError{Reason: fmt.Sprintf("outcome %d has no name", i)})
		}
	}

	if len(errs) > 0 {
		return nil, &AggregateError{Errors: errs}
	}

	t := &Table{
		mapping:  make(map[string]int, len(mapping)),
		outcomes: make([]domain.Outcome, len(outcomes)),
	}
	for k, v := range mapping {
		t.mapping[k] = v
	}
	for i, o := range outcomes {
		o.Index = i
		t.outcomes[i] = o
	}
	return t, nil
}

// Normalize returns a copy of values trimmed and lower-cased, the form used for
// lookups and spoken statements.
func Normalize(values map[domain.Category]string) map[domain.Category]string {
	out := make(map[domain.Category]string, len(values))
	for c, v := range values {
		out[c] = strings.ToLower(strings.TrimSpace(v))
	}
	return out
}

// Key joins the four values into the canonical outcome key. Values are normalized;
// missing categories produce an empty segment.
func Key(values map[domain.Category]string) string {
	values = Normalize(values)
	parts := make([]string, 0, 4)
	for _, c := range domain.KeyOrder() {
		parts = append(parts, values[c])
	}
	return strings.Join(parts, "-")
}

// AllKeys enumerates the 24 keys of the declared category domains in key order.
func AllKeys() []string {
	keys := []string{""}
	for _, c := range domain.KeyOrder() {
		var next []string
		for _, prefix := range keys {
			for _, v := range c.Domain() {
				if prefix == "" {
					next = append(next, v)
				} else {
					next = append(next, prefix+"-"+v)
				}
			}
		}
		keys = next
	}
	return keys
}

// Resolve returns the outcome for the answer tuple.
// Any absent value or unknown key fails with domain.ErrLookupMiss.
func (t *Table) Resolve(values map[domain.Category]string) (domain.Outcome, error) {
	for _, c := range domain.KeyOrder() {
		if strings.TrimSpace(values[c]) == "" {
			return domain.Outcome{}, fmt.Errorf("%w: no value for %s", domain.ErrLookupMiss, c)
		}
	}
	return t.Lookup(Key(values))
}

// Lookup returns the outcome stored under a canonical key.
func (t *Table) Lookup(key string) (domain.Outcome, error) {
	idx, ok := t.mapping[key]
	if !ok {
		return domain.Outcome{}, fmt.Errorf("%w: %q", domain.ErrLookupMiss, key)
	}
	return t.outcomes[idx], nil
}

// Outcomes returns a copy of the outcome list in index order.
func (t *Table) Outcomes() []domain.Outcome {
	return append([]domain.Outcome(nil), t.outcomes...)
}

// Entries lists every key with its outcome, in AllKeys order.
func (t *Table) Entries() []Entry {
	order := domain.KeyOrder()
	entries := make([]Entry, 0, len(t.mapping))
	for _, key := range AllKeys() {
		parts := strings.Split(key, "-")
		values := make(map[string]string, len(parts))
		for i, c := range order {
			values[c.String()] = parts[i]
		}
		entries = append(entries, Entry{
			Key:     key,
			Values:  values,
			Outcome: t.outcomes[t.mapping[key]],
		})
	}
	return entries
}

// Mapping returns a copy of the key to index mapping.
func (t *Table) Mapping() map[string]int {
	m := make(map[string]int, len(t.mapping))
	for k, v := range t.mapping {
		m[k] = v
	}
	return m
}
