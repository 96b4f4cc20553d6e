package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dom/hero-builds/internal/config"
	"github.com/dom/hero-builds/internal/jsonfile"
	"github.com/dom/hero-builds/internal/repository"
	"github.com/dom/hero-builds/internal/repository/memory"
	"github.com/dom/hero-builds/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	store  *memory.Store
	out    *bytes.Buffer
	in     *strings.Reader
	opened int
	dir    string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("DATABASE_URL", "memory")
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("MAX_DESCRIPTION_WIDTH", "20")

	return &harness{store: memory.New(), out: &bytes.Buffer{}, in: strings.NewReader(""), dir: dir}
}

func (h *harness) run(args ...string) error {
	h.out.Reset()
	e := &env{
		in:  h.in,
		out: h.out,
		openStore: func(*config.Config) (repository.TableStore, error) {
			h.opened++
			return h.store, nil
		},
	}
	return newApp(e).Run(append([]string{"buildctl"}, args...))
}

func (h *harness) file(t *testing.T, name string, v any) string {
	t.Helper()
	path := filepath.Join(h.dir, name)
	require.NoError(t, jsonfile.Save(path, v))
	return path
}

func (h *harness) raw(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(h.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestStoreCommandsNeedDatabaseURL(t *testing.T) {
	h := newHarness(t)
	t.Setenv("DATABASE_URL", "")

	for _, cmd := range []string{"list-heroes", "add-hero", "add-build", "bulk-import"} {
		t.Run(cmd, func(t *testing.T) {
			err := h.run(cmd)
			assert.ErrorIs(t, err, config.ErrMissingDatabaseURL)
		})
	}
	assert.Zero(t, h.opened, "store must not be opened without configuration")
}

func TestFileCommandsRunWithoutConfig(t *testing.T) {
	h := newHarness(t)
	t.Setenv("DATABASE_URL", "")

	path := h.file(t, "hero.json", testutil.NewHeroBuilder().Record())
	require.NoError(t, h.run("validate", "--json", path))
	assert.Contains(t, h.out.String(), "Auto-detected as hero data")
	assert.Contains(t, h.out.String(), "Data validation passed!")
}

func TestAddHeroAndList(t *testing.T) {
	h := newHarness(t)

	hero := testutil.NewHeroBuilder().
		WithID("anti-mage").
		WithName("Anti-Mage").
		Set("description", "A fast carry who punishes spell casters late").
		Record()
	path := h.file(t, "hero.json", hero)

	require.NoError(t, h.run("add-hero", "--json", path))
	assert.Contains(t, h.out.String(), "Successfully added hero: Anti-Mage")

	require.NoError(t, h.run("list-heroes"))
	out := h.out.String()
	assert.Contains(t, out, "Found 1 heroes in database:")
	assert.Contains(t, out, "Anti-Mage (anti-mage)")
	assert.Contains(t, out, "Description: A fast carry who pun...")
}

func TestListHeroesEmpty(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("list-heroes"))
	assert.Contains(t, h.out.String(), "No heroes found in database")
}

func TestAddHeroErrors(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name    string
		args    func() []string
		wantErr string
		wantOut string
	}{
		{
			name:    "no source",
			args:    func() []string { return []string{"add-hero"} },
			wantErr: "one of --json or --interactive is required",
		},
		{
			name:    "invalid json",
			args:    func() []string { return []string{"add-hero", "--json", h.raw(t, "bad.json", "{not json")} },
			wantErr: jsonfile.ErrMalformed.Error(),
		},
		{
			name:    "missing file",
			args:    func() []string { return []string{"add-hero", "--json", filepath.Join(h.dir, "nope.json")} },
			wantErr: jsonfile.ErrNotFound.Error(),
		},
		{
			name: "validation errors",
			args: func() []string {
				return []string{"add-hero", "--json", h.file(t, "invalid.json", testutil.NewHeroBuilder().Set("role", "Jungler").Record())}
			},
			wantErr: errInvalid.Error(),
			wantOut: "Invalid role: Jungler",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.run(tt.args()...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			if tt.wantOut != "" {
				assert.Contains(t, h.out.String(), tt.wantOut)
			}
		})
	}
	assert.Empty(t, h.store.Rows(repository.TableHeroes))
}

func TestAddBuildNeedsHero(t *testing.T) {
	h := newHarness(t)
	path := h.file(t, "build.json", testutil.NewBuildBuilder().Record())

	err := h.run("add-build", "--json", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hero 'anti-mage' does not exist in database")

	require.NoError(t, h.run("add-hero", "--json", h.file(t, "hero.json", testutil.NewHeroBuilder().WithID("anti-mage").Record())))
	require.NoError(t, h.run("add-build", "--json", path))
	assert.Contains(t, h.out.String(), "Successfully added build: anti-mage (aggressive)")
	assert.Len(t, h.store.Rows(repository.TableItems), 4)
}

func TestAddHeroInteractive(t *testing.T) {
	h := newHarness(t)
	h.in = strings.NewReader(strings.Join([]string{
		"axe", "Axe", "Initiator", "Easy", "aggressive, chaos",
		"Berserker with a big call",
		"Counter Helix", "Blink initiation", "Culling Blade resets", "",
		"Mana hungry", "Kited easily", "Weak to silences", "",
	}, "\n") + "\n")

	require.NoError(t, h.run("add-hero", "--interactive"))
	assert.Contains(t, h.out.String(), "Successfully added hero: Axe")
	assert.Len(t, h.store.Rows(repository.TableHeroMoods), 2)
}

func TestBulkImport(t *testing.T) {
	h := newHarness(t)

	heroes := h.file(t, "heroes.json", []any{
		testutil.NewHeroBuilder().WithID("anti-mage").WithName("Anti-Mage").Record(),
		testutil.NewHeroBuilder().WithName("Broken").Without("role").Record(),
	})
	builds := h.file(t, "builds.json", []any{
		testutil.NewBuildBuilder().Record(),
		testutil.NewBuildBuilder().WithHeroID("nobody").Record(),
	})

	require.NoError(t, h.run("bulk-import", "--heroes", heroes, "--builds", builds))
	out := h.out.String()
	assert.Contains(t, out, "Processing 2 heroes...")
	assert.Contains(t, out, "Validation errors for hero Broken:")
	assert.Contains(t, out, "Hero for build nobody (aggressive) does not exist in database")
	assert.Contains(t, out, "Successfully processed: 2 items")
	assert.Contains(t, out, "Failed: 2 items")
}

func TestBulkImportRejectsObjectFile(t *testing.T) {
	h := newHarness(t)
	path := h.file(t, "hero.json", testutil.NewHeroBuilder().Record())

	err := h.run("bulk-import", "--heroes", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must contain an array")
}

func TestValidate(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name    string
		rec     any
		args    []string
		wantErr bool
		wantOut []string
	}{
		{
			name:    "detects build",
			rec:     testutil.NewBuildBuilder().Record(),
			wantOut: []string{"Auto-detected as build data", "Data validation passed!"},
		},
		{
			name:    "explicit type",
			rec:     testutil.NewBuildBuilder().Record(),
			args:    []string{"--type", "hero"},
			wantErr: true,
			wantOut: []string{"Missing required field: id"},
		},
		{
			name:    "unknown type",
			rec:     testutil.NewHeroBuilder().Record(),
			args:    []string{"--type", "item"},
			wantErr: true,
			wantOut: []string{"Unknown data type: item"},
		},
		{
			name:    "undetectable",
			rec:     map[string]any{"name": "Nothing"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := h.file(t, filepath.Base(t.Name())+".json", tt.rec)
			err := h.run(append([]string{"validate", "--json", path}, tt.args...)...)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			for _, want := range tt.wantOut {
				assert.Contains(t, h.out.String(), want)
			}
		})
	}
}

func TestCreateTemplatesValidate(t *testing.T) {
	h := newHarness(t)
	dir := filepath.Join(h.dir, "templates")

	require.NoError(t, h.run("create-templates", "--dir", dir))
	assert.Contains(t, h.out.String(), "  - hero_template.json")

	for _, name := range []string{"hero_template.json", "build_template.json"} {
		require.NoError(t, h.run("validate", "--json", filepath.Join(dir, name)), name)
	}
}

func TestConvertCommands(t *testing.T) {
	h := newHarness(t)

	dict := h.raw(t, "dict.json", `{"death_prophet": {"heroId": "death_prophet", "mood": "chaotic"}, "axe": {"heroId": "axe", "mood": "sleepy"}}`)
	list := filepath.Join(h.dir, "list.json")

	require.NoError(t, h.run("convert", "to-list", "--in", dict, "--out", list))
	assert.Contains(t, h.out.String(), "Converted 2 records")

	require.NoError(t, h.run("convert", "kebab-ids", "--in", list))
	assert.Contains(t, h.out.String(), "death_prophet -> death-prophet")

	require.NoError(t, h.run("convert", "remap-moods", "--in", list))
	assert.Contains(t, h.out.String(), "Updated 1 builds")
	assert.Contains(t, h.out.String(), "  - sleepy")

	objs, err := jsonfile.LoadList(list)
	require.NoError(t, err)
	require.Len(t, objs, 2)
	id, _ := objs[0].GetString("heroId")
	mood, _ := objs[0].GetString("mood")
	assert.Equal(t, "death-prophet", id)
	assert.Equal(t, "chaos", mood)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abc...", truncate("abcdef", 3))
	assert.Equal(t, "héro...", truncate("héroes", 4))
	assert.Equal(t, "anything", truncate("anything", 0))
}

func TestConvertRejectsNullEntries(t *testing.T) {
	h := newHarness(t)
	path := h.raw(t, "list.json", `[{"heroId": "death_prophet", "mood": "chaotic"}, null]`)

	for _, sub := range []string{"kebab-ids", "remap-moods"} {
		t.Run(sub, func(t *testing.T) {
			err := h.run("convert", sub, "--in", path)
			require.ErrorIs(t, err, jsonfile.ErrMalformed)
		})
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "death_prophet", "input is left untouched")
}

// chdir changes the working directory for the duration of the test,
// equivalent to testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
