package convert

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/dom/hero-builds/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed moods.yaml
var defaultTaxonomy []byte

var (
	ErrConflictingMood = errors.New("source mood mapped to more than one category")
	ErrUnknownCategory = errors.New("unknown mood category")
)

// Taxonomy maps descriptive source tags onto the five mood categories.
type Taxonomy struct {
	targets map[string]domain.Mood
}

// DefaultTaxonomy returns the built-in mapping.
func DefaultTaxonomy() (*Taxonomy, error) {
	return ParseTaxonomy(defaultTaxonomy)
}

// LoadTaxonomy reads a YAML taxonomy file (category -> list of source tags).
func LoadTaxonomy(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy: %w", err)
	}
	return ParseTaxonomy(data)
}

// ParseTaxonomy decodes a taxonomy document. A tag listed under two
// categories is rejected instead of letting one definition win silently.
func ParseTaxonomy(data []byte) (*Taxonomy, error) {
	var doc map[string][]string
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse taxonomy: %w", err)
	}

	categories := make([]string, 0, len(doc))
	for category := range doc {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	t := &Taxonomy{targets: make(map[string]domain.Mood)}
	for _, category := range categories {
		mood := domain.Mood(category)
		if !mood.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
		}
		for _, source := range doc[category] {
			if prev, ok := t.targets[source]; ok && prev != mood {
				return nil, fmt.Errorf("%w: %q is listed under %s and %s", ErrConflictingMood, source, prev, mood)
			}
			t.targets[source] = mood
		}
	}
	return t, nil
}

// Lookup returns the category for a source tag.
func (t *Taxonomy) Lookup(source string) (domain.Mood, bool) {
	m, ok := t.targets[source]
	return m, ok
}

func (t *Taxonomy) Len() int {
	return len(t.targets)
}
