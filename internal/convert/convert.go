// Package convert holds the one-pass transforms applied to curation files
// before they are imported.
package convert

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dom/hero-builds/internal/jsonfile"
)

const (
	FieldHeroID = "heroId"
	FieldMood   = "mood"
)

var (
	ErrMissingKey   = errors.New("record has no key field")
	ErrDuplicateKey = errors.New("duplicate record key")
)

// DictToList turns {"abaddon": {...}, "alchemist": {...}} into its values,
// in document order.
func DictToList(doc *jsonfile.Object) ([]*jsonfile.Object, error) {
	out := make([]*jsonfile.Object, 0, doc.Len())
	for _, key := range doc.Keys() {
		raw, _ := doc.Get(key)
		obj := jsonfile.NewObject()
		if err := obj.UnmarshalJSON(raw); err != nil {
			return nil, fmt.Errorf("entry %q: %w", key, err)
		}
		out = append(out, obj)
	}
	return out, nil
}

// ListToDict keys each record by the string value of keyField.
func ListToDict(list []*jsonfile.Object, keyField string) (*jsonfile.Object, error) {
	doc := jsonfile.NewObject()
	for i, obj := range list {
		key, ok := obj.GetString(keyField)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: record %d has no %s", ErrMissingKey, i, keyField)
		}
		if _, exists := doc.Get(key); exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, key)
		}
		raw, err := obj.MarshalJSON()
		if err != nil {
			return nil, err
		}
		doc.SetRaw(key, raw)
	}
	return doc, nil
}

// IDChange records one rewritten hero id.
type IDChange struct {
	From string
	To   string
}

// KebabHeroIDs rewrites snake_case hero ids ("death_prophet") as kebab-case
// ("death-prophet"). Records without an underscore are left alone.
func KebabHeroIDs(list []*jsonfile.Object) ([]IDChange, error) {
	var changes []IDChange
	for _, obj := range list {
		id, ok := obj.GetString(FieldHeroID)
		if !ok || !strings.Contains(id, "_") {
			continue
		}
		kebab := strings.ReplaceAll(id, "_", "-")
		if err := obj.Set(FieldHeroID, kebab); err != nil {
			return nil, err
		}
		changes = append(changes, IDChange{From: id, To: kebab})
	}
	return changes, nil
}

// RemapResult summarises a mood remap.
type RemapResult struct {
	Updated  int
	Unmapped []string
}

// RemapMoods replaces each record's mood with its taxonomy category.
// Unrecognised moods are left untouched and reported once each, sorted.
func RemapMoods(list []*jsonfile.Object, taxonomy *Taxonomy) (RemapResult, error) {
	var result RemapResult
	unmapped := make(map[string]struct{})

	for _, obj := range list {
		mood, ok := obj.GetString(FieldMood)
		if !ok {
			continue
		}
		target, known := taxonomy.Lookup(mood)
		if !known {
			if mood != "" {
				unmapped[mood] = struct{}{}
			}
			continue
		}
		if err := obj.Set(FieldMood, target.String()); err != nil {
			return result, err
		}
		result.Updated++
	}

	for mood := range unmapped {
		result.Unmapped = append(result.Unmapped, mood)
	}
	sort.Strings(result.Unmapped)
	return result, nil
}
