package outcome

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/decisiontree/pkg/domain"
	"gopkg.in/yaml.v3"
)

// File is the on-disk representation of a table.
//
//	outcomes:
//	  - name: Actor
//	    description: Performs on stage and screen.
//	mapping:
//	  very-extrovert-low-people: 0
type File struct {
	Outcomes []domain.Outcome `yaml:"outcomes"`
	Mapping  map[string]int   `yaml:"mapping"`
}

// LoadFile reads and validates a table from a YAML (or JSON) file.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open outcome table: %w", err)
	}
	defer f.Close()

	t, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("outcome table %s: %w", path, err)
	}
	return t, nil
}

// Load reads and validates a table from r.
func Load(r io.Reader) (*Table, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode outcome table: %w", err)
	}
	return NewTable(file.Mapping, file.Outcomes)
}

// Export converts a table back into its file representation.
func (t *Table) Export() File {
	return File{
		Outcomes: t.Outcomes(),
		Mapping:  t.Mapping(),
	}
}

// WriteYAML encodes the table as YAML.
func (t *Table) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t.Export()); err != nil {
		return fmt.Errorf("failed to encode outcome table: %w", err)
	}
	return enc.Close()
}
