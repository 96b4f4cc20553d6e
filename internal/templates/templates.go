// Package templates writes example hero and build files that pass validation,
// as starting points for hand-written curation files.
package templates

import (
	_ "embed"
	"fmt"
	"path/filepath"

	"github.com/dom/hero-builds/internal/jsonfile"
)

//go:embed hero_template.json
var heroTemplate []byte

//go:embed build_template.json
var buildTemplate []byte

const (
	HeroFile       = "hero_template.json"
	BuildFile      = "build_template.json"
	HeroesBulkFile = "heroes_bulk_template.json"
	BuildsBulkFile = "builds_bulk_template.json"
)

// Write creates the single-record templates and their bulk-import variants
// in dir, returning the paths written.
func Write(dir string) ([]string, error) {
	hero := jsonfile.NewObject()
	if err := hero.UnmarshalJSON(heroTemplate); err != nil {
		return nil, fmt.Errorf("hero template: %w", err)
	}
	build := jsonfile.NewObject()
	if err := build.UnmarshalJSON(buildTemplate); err != nil {
		return nil, fmt.Errorf("build template: %w", err)
	}

	files := []struct {
		name  string
		value any
	}{
		{HeroFile, hero},
		{BuildFile, build},
		{HeroesBulkFile, []*jsonfile.Object{hero}},
		{BuildsBulkFile, []*jsonfile.Object{build}},
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := jsonfile.Save(path, f.value); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
