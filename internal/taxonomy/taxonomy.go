// Package taxonomy groups analyzed documents by their primary tag.
package taxonomy

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tobi-alade/docsorter/internal/index"
)

// Taxonomy maps a primary tag to the source paths filed under it. It is an
// unordered mapping; the JSON artifact is written with sorted keys so two
// builds from the same index produce identical bytes.
type Taxonomy map[string][]string

// Build derives the taxonomy from the index. Only records that are
// analyzed and carry at least one tag participate; each path lands in
// exactly one bucket, keyed by its first tag. Pure function of its input.
func Build(records []index.Record) Taxonomy {
	t := Taxonomy{}
	for _, rec := range records {
		if !rec.Organizable() {
			continue
		}
		tag := rec.PrimaryTag()
		t[tag] = append(t[tag], rec.SourcePath)
	}
	return t
}

// Save persists the taxonomy artifact as indented JSON.
func (t Taxonomy) Save(path string) error {
	b, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal taxonomy: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write taxonomy: %w", err)
	}
	return nil
}

// Load reads a taxonomy artifact previously written by Save.
func Load(path string) (Taxonomy, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy: %w", err)
	}
	var t Taxonomy
	if err := json.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("parse taxonomy: %w", err)
	}
	return t, nil
}
