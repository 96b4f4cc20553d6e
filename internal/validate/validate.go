// Package validate checks hero and build records against the catalog schema
// before they are allowed into the store.
//
// Every check reports a human-readable message; an empty result means the
// record is valid. A field that is absent only ever produces its
// "Missing required field" message.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dom/hero-builds/internal/domain"
	"github.com/dom/hero-builds/internal/record"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Kind is the record type a file holds.
type Kind string

const (
	KindHero  Kind = "hero"
	KindBuild Kind = "build"
)

var ErrUnknownKind = errors.New("cannot determine data type")

// Minimum list sizes
const (
	MinMoods            = 1
	MinStrengths        = 3
	MinWeaknesses       = 3
	MinItems            = 4
	MinPlaystyleEntries = 3
)

var (
	heroFields  = []string{"id", "name", "role", "difficulty", "moods", "description", "strengths", "weaknesses"}
	buildFields = []string{"heroId", "mood", "items", "playstyle", "gameplan"}
	itemFields  = []string{"id", "name", "cost", "phase", "priority", "description"}

	playstyleFields = []string{"dos", "donts", "tips"}
	gameplanFields  = []string{"early", "mid", "late"}
)

// DetectKind guesses the record type from its distinguishing fields.
func DetectKind(rec record.Record) (Kind, error) {
	switch {
	case rec.Has("heroId") && rec.Has("mood"):
		return KindBuild, nil
	case rec.Has("role") && rec.Has("difficulty"):
		return KindHero, nil
	}
	return "", ErrUnknownKind
}

// Record validates rec as the given kind.
func Record(rec record.Record, kind Kind) []string {
	switch kind {
	case KindHero:
		return Hero(rec)
	case KindBuild:
		return Build(rec)
	}
	return []string{fmt.Sprintf("Unknown data type: %s", kind)}
}

// Hero validates a hero record.
func Hero(rec record.Record) []string {
	errs := missingFields(rec, heroFields, "Missing required field: ")

	errs = appendEnum(errs, "", "role", rec.Field("role"), domain.AllRoles)
	errs = appendEnum(errs, "", "difficulty", rec.Field("difficulty"), domain.AllDifficulties)

	if moods := rec.Field("moods"); !moods.IsMissing() {
		list, ok := listWithMin(moods, MinMoods)
		if !ok {
			errs = append(errs, "Moods must be a non-empty list")
		}
		for _, mood := range list {
			errs = appendEnum(errs, "", "mood", mood, domain.AllMoods)
		}
	}

	if strengths := rec.Field("strengths"); !strengths.IsMissing() {
		if _, ok := listWithMin(strengths, MinStrengths); !ok {
			errs = append(errs, fmt.Sprintf("Strengths must be a list with at least %d items", MinStrengths))
		}
	}

	if weaknesses := rec.Field("weaknesses"); !weaknesses.IsMissing() {
		if _, ok := listWithMin(weaknesses, MinWeaknesses); !ok {
			errs = append(errs, fmt.Sprintf("Weaknesses must be a list with at least %d items", MinWeaknesses))
		}
	}

	return errs
}

// Build validates a build record, including its items, playstyle and gameplan.
func Build(rec record.Record) []string {
	errs := missingFields(rec, buildFields, "Missing required field: ")

	errs = appendEnum(errs, "", "mood", rec.Field("mood"), domain.AllMoods)

	if items := rec.Field("items"); !items.IsMissing() {
		list, ok := listWithMin(items, MinItems)
		if !ok {
			errs = append(errs, fmt.Sprintf("Items must be a list with at least %d items", MinItems))
		} else {
			for i, item := range list {
				errs = append(errs, itemField(item, i)...)
			}
		}
	}

	if playstyle := rec.Field("playstyle"); !playstyle.IsMissing() {
		obj, ok := playstyle.Object()
		if !ok {
			errs = append(errs, "Playstyle must be an object")
		} else {
			errs = append(errs, missingFields(obj, playstyleFields, "Missing playstyle field: ")...)
			for _, key := range playstyleFields {
				entries := obj.Field(key)
				if entries.IsMissing() {
					continue
				}
				if _, ok := listWithMin(entries, MinPlaystyleEntries); !ok {
					errs = append(errs, fmt.Sprintf("Playstyle %s must be a list with at least %d items", key, MinPlaystyleEntries))
				}
			}
		}
	}

	if gameplan := rec.Field("gameplan"); !gameplan.IsMissing() {
		obj, ok := gameplan.Object()
		if !ok {
			errs = append(errs, "Gameplan must be an object")
		} else {
			errs = append(errs, missingFields(obj, gameplanFields, "Missing gameplan field: ")...)
			for _, key := range gameplanFields {
				phase := obj.Field(key)
				if phase.IsMissing() {
					continue
				}
				if !nonBlank(phase) {
					errs = append(errs, fmt.Sprintf("Gameplan %s must be a non-empty string", key))
				}
			}
		}
	}

	return errs
}

// Item validates one entry of a build's item list; index is its position.
func Item(rec record.Record, index int) []string {
	prefix := fmt.Sprintf("Item %d: ", index)
	errs := missingFields(rec, itemFields, prefix+"Missing required field: ")

	if cost := rec.Field("cost"); !cost.IsMissing() {
		n, ok := cost.Int()
		if !ok || validation.Validate(n, validation.Min(int64(0))) != nil {
			errs = append(errs, prefix+"Cost must be a non-negative integer")
		}
	}

	errs = appendEnum(errs, prefix, "phase", rec.Field("phase"), domain.AllPhases)
	errs = appendEnum(errs, prefix, "priority", rec.Field("priority"), domain.AllPriorities)

	return errs
}

func itemField(item record.Field, index int) []string {
	obj, ok := item.Object()
	if !ok {
		return []string{fmt.Sprintf("Item %d: Item must be an object", index)}
	}
	return Item(obj, index)
}

func missingFields(rec record.Record, fields []string, prefix string) []string {
	var errs []string
	for _, name := range fields {
		if !rec.Has(name) {
			errs = append(errs, prefix+name)
		}
	}
	return errs
}

// appendEnum checks that a present field holds one of allowed.
func appendEnum[T ~string](errs []string, prefix, name string, f record.Field, allowed []T) []string {
	if f.IsMissing() {
		return errs
	}

	choices := make([]interface{}, len(allowed))
	names := make([]string, len(allowed))
	for i, a := range allowed {
		choices[i] = string(a)
		names[i] = string(a)
	}

	s, ok := f.Text()
	if ok && validation.Validate(s, validation.Required, validation.In(choices...)) == nil {
		return errs
	}
	return append(errs, fmt.Sprintf("%sInvalid %s: %s. Must be one of: %s", prefix, name, f.Display(), strings.Join(names, ", ")))
}

// listWithMin returns the list elements and whether f is a list of at least min entries.
func listWithMin(f record.Field, min int) ([]record.Field, bool) {
	list, ok := f.List()
	if !ok {
		return nil, false
	}
	if err := validation.Validate(list, validation.Required, validation.Length(min, 0)); err != nil {
		return list, false
	}
	return list, true
}

func nonBlank(f record.Field) bool {
	s, ok := f.Text()
	if !ok {
		return false
	}
	return validation.Validate(strings.TrimSpace(s), validation.Required) == nil
}
