package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dom/hero-builds/internal/repository"
	"github.com/dom/hero-builds/internal/repository/memory"
	"github.com/dom/hero-builds/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedDuplicates fills the store with one hero carrying duplicate rows in
// every table, the state left behind by repeated imports.
func seedDuplicates(store *memory.Store) {
	store.Seed(repository.TableHeroes,
		repository.Row{"id": "axe", "name": "Axe"},
		repository.Row{"id": "axe", "name": "Axe (copy)"},
	)
	store.Seed(repository.TableHeroMoods,
		repository.Row{"hero_id": "axe", "mood": "aggressive"},
		repository.Row{"hero_id": "axe", "mood": "aggressive"},
		repository.Row{"hero_id": "axe", "mood": "chaos"},
	)
	store.Seed(repository.TableHeroStrengths,
		repository.Row{"hero_id": "axe", "strength": "Blink", "order_index": 0},
		repository.Row{"hero_id": "axe", "strength": "Blink", "order_index": 0},
	)
	store.Seed(repository.TableBuilds,
		repository.Row{"id": 1, "hero_id": "axe", "mood": "chaos"},
		repository.Row{"id": 2, "hero_id": "axe", "mood": "chaos"},
		repository.Row{"id": 3, "hero_id": "axe", "mood": "aggressive"},
	)
	store.Seed(repository.TableItems,
		repository.Row{"build_id": 1, "name": "Blink Dagger"},
		repository.Row{"build_id": 1, "name": "Blink Dagger"},
		repository.Row{"build_id": 2, "name": "Blade Mail"},
		repository.Row{"build_id": 3, "name": "Blade Mail"},
	)
	store.Seed(repository.TablePlaystyleTips,
		repository.Row{"build_id": 2, "tip": "Call from fog"},
	)
}

func tableReport(t *testing.T, report *service.DedupReport, name string) service.TableReport {
	t.Helper()
	for _, tr := range report.Tables {
		if tr.Table.Name == name {
			return tr
		}
	}
	t.Fatalf("no report for %s", name)
	return service.TableReport{}
}

func TestDedupService_FindDuplicates(t *testing.T) {
	store := memory.New()
	seedDuplicates(store)
	svc := service.NewDedupService(store)

	table, _ := repository.LookupTable(repository.TableBuilds)
	groups, err := svc.FindDuplicates(context.Background(), table)
	require.NoError(t, err)

	require.Len(t, groups, 1)
	assert.Equal(t, 2, groups[0].Count())
	assert.Equal(t, "hero_id=axe, mood=chaos", groups[0].Describe(table.Key))

	first, _ := groups[0].Rows[0].Int64("id")
	assert.Equal(t, int64(1), first, "rows keep retrieval order")
}

func TestDedupService_KeyDoesNotSplitOnUnderscore(t *testing.T) {
	store := memory.New()
	store.Seed(repository.TableHeroMoods,
		repository.Row{"hero_id": "anti_mage", "mood": "x"},
		repository.Row{"hero_id": "anti", "mood": "mage_x"},
	)
	svc := service.NewDedupService(store)

	report := svc.Scan(context.Background())
	assert.True(t, report.Clean())
}

func TestDedupService_Scan(t *testing.T) {
	store := memory.New()
	seedDuplicates(store)
	svc := service.NewDedupService(store)

	report := svc.Scan(context.Background())

	assert.Equal(t, 5, report.GroupCount())
	assert.Equal(t, 5, report.Extra())
	assert.Len(t, tableReport(t, report, repository.TableItems).Groups, 1)
	assert.Len(t, tableReport(t, report, repository.TableHeroes).Groups, 1)
	assert.Empty(t, tableReport(t, report, repository.TablePlaystyleDos).Groups)

	// Scanning changes nothing
	assert.Empty(t, store.Deletes())
}

func TestDedupService_RemoveIsIdempotent(t *testing.T) {
	store := memory.New()
	seedDuplicates(store)
	svc := service.NewDedupService(store)
	ctx := context.Background()

	result := svc.Remove(ctx, svc.Scan(ctx))
	assert.Equal(t, 4, result.Removed)
	assert.Equal(t, 1, result.Skipped)
	assert.Zero(t, result.Failed)

	second := svc.Scan(ctx)
	assert.Equal(t, 1, second.GroupCount(), "only the hero duplicate is left")
	assert.Len(t, tableReport(t, second, repository.TableHeroes).Groups, 1)
	assert.Zero(t, svc.Remove(ctx, second).Removed)

	// Exactly one row per natural key survives, and it is the first one
	assert.Len(t, store.Rows(repository.TableHeroes), 2)

	builds := store.Rows(repository.TableBuilds)
	require.Len(t, builds, 2)
	assert.Equal(t, "1", builds[0].String("id"))

	assert.Len(t, store.Rows(repository.TableHeroMoods), 2)
	assert.Len(t, store.Rows(repository.TableHeroStrengths), 1)
}

func TestDedupService_RemoveCascadesChildrenFirst(t *testing.T) {
	store := memory.New()
	seedDuplicates(store)
	svc := service.NewDedupService(store)
	ctx := context.Background()

	svc.Remove(ctx, svc.Scan(ctx))

	// Build 2 was the duplicate; its item and tip go with it, before it does
	for _, item := range store.Rows(repository.TableItems) {
		assert.NotEqual(t, "2", item.String("build_id"))
	}
	assert.Empty(t, store.Rows(repository.TablePlaystyleTips))

	var buildDelete, lastChildDelete, heroDelete = -1, -1, -1
	for i, call := range store.Deletes() {
		switch {
		case call.Table == repository.TableBuilds:
			buildDelete = i
		case call.Table == repository.TableHeroes:
			heroDelete = i
		case call.Match.String("build_id") == "2":
			lastChildDelete = i
		}
	}
	require.NotEqual(t, -1, buildDelete)
	require.NotEqual(t, -1, lastChildDelete)
	assert.Less(t, lastChildDelete, buildDelete)
	assert.Equal(t, -1, heroDelete, "hero rows are never deleted")
}

func TestDedupService_RemoveContinuesPastFailures(t *testing.T) {
	store := memory.New()
	seedDuplicates(store)
	store.DeleteFunc = func(table string, match repository.Row) error {
		if table == repository.TableItems {
			return errors.New("permission denied")
		}
		return nil
	}
	svc := service.NewDedupService(store)
	ctx := context.Background()

	result := svc.Remove(ctx, svc.Scan(ctx))

	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 3, result.Removed)
	assert.Len(t, store.Rows(repository.TableBuilds), 2, "later tables are still cleaned")

	report := svc.Scan(ctx)
	assert.Len(t, tableReport(t, report, repository.TableItems).Groups, 1, "the failed group remains")
	assert.Equal(t, 2, report.GroupCount())
}

func TestDedupService_CollapseRestoresFirstRow(t *testing.T) {
	store := memory.New()
	store.Seed(repository.TableHeroMoods,
		repository.Row{"hero_id": "axe", "mood": "chaos"},
		repository.Row{"hero_id": "lina", "mood": "aggressive"},
		repository.Row{"hero_id": "axe", "mood": "chaos"},
	)
	svc := service.NewDedupService(store)
	ctx := context.Background()

	result := svc.Remove(ctx, svc.Scan(ctx))
	assert.Equal(t, 1, result.Removed)

	rows := store.Rows(repository.TableHeroMoods)
	require.Len(t, rows, 2)
	assert.Equal(t, "lina", rows[0].String("hero_id"))
	assert.Equal(t, "axe", rows[1].String("hero_id"))
}

func TestDedupService_HeroDuplicatesAreOnlyReported(t *testing.T) {
	store := memory.New()
	store.Seed(repository.TableHeroes,
		repository.Row{"id": "axe", "name": "Axe"},
		repository.Row{"id": "axe", "name": "Axe (copy)"},
	)
	store.Seed(repository.TableBuilds,
		repository.Row{"id": 1, "hero_id": "axe", "mood": "chaos"},
	)
	svc := service.NewDedupService(store)
	ctx := context.Background()

	report := svc.Scan(ctx)
	require.Equal(t, 1, report.GroupCount())

	result := svc.Remove(ctx, report)
	assert.Equal(t, service.RemoveResult{Skipped: 1}, result)
	assert.Empty(t, store.Deletes())
	assert.Len(t, store.Rows(repository.TableBuilds), 1, "builds of the hero are untouched")
}

func TestDedupService_NullKeysAreNotDuplicates(t *testing.T) {
	store := memory.New()
	store.Seed(repository.TableHeroMoods,
		repository.Row{"hero_id": "axe", "mood": nil},
		repository.Row{"hero_id": "axe", "mood": nil},
		repository.Row{"hero_id": "axe"},
	)
	svc := service.NewDedupService(store)
	ctx := context.Background()

	report := svc.Scan(ctx)
	assert.True(t, report.Clean())

	svc.Remove(ctx, report)
	assert.Len(t, store.Rows(repository.TableHeroMoods), 3, "repeated removal never adds rows")
	assert.Empty(t, store.Deletes())
}
