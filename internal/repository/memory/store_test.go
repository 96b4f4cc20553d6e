package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dom/hero-builds/internal/repository"
	"github.com/dom/hero-builds/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_UpsertByConflictKey(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	first, err := store.Upsert(ctx, repository.TableBuilds, repository.Row{
		"hero_id": "axe", "mood": "aggressive", "early_game": "Blink",
	}, []string{"hero_id", "mood"})
	require.NoError(t, err)

	id, ok := first.Int64("id")
	require.True(t, ok, "builds get a surrogate id")

	second, err := store.Upsert(ctx, repository.TableBuilds, repository.Row{
		"hero_id": "axe", "mood": "aggressive", "early_game": "Call",
	}, []string{"hero_id", "mood"})
	require.NoError(t, err)

	secondID, _ := second.Int64("id")
	assert.Equal(t, id, secondID)
	assert.Equal(t, "Call", second.String("early_game"))
	assert.Len(t, store.Rows(repository.TableBuilds), 1)
}

func TestStore_PlainInsertAllowsDuplicates(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := store.Upsert(ctx, repository.TableItems, repository.Row{"build_id": 1, "name": "Blink Dagger"}, nil)
		require.NoError(t, err)
	}

	rows := store.Rows(repository.TableItems)
	require.Len(t, rows, 2)
	assert.NotEqual(t, rows[0]["id"], rows[1]["id"])
}

func TestStore_SelectAndDelete(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	store.Seed(repository.TableHeroMoods,
		repository.Row{"hero_id": "axe", "mood": "aggressive"},
		repository.Row{"hero_id": "axe", "mood": "chaos"},
		repository.Row{"hero_id": "lina", "mood": "aggressive"},
	)

	rows, err := store.Select(ctx, repository.TableHeroMoods, repository.Row{"hero_id": "axe"})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	require.NoError(t, store.Delete(ctx, repository.TableHeroMoods, repository.Row{"hero_id": "axe", "mood": "chaos"}))

	all, err := store.SelectAll(ctx, repository.TableHeroMoods)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	assert.Error(t, store.Delete(ctx, repository.TableHeroMoods, repository.Row{}))
	assert.Len(t, store.Deletes(), 2)
}

func TestStore_MatchesAcrossNumericTypes(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	store.Seed(repository.TableItems, repository.Row{"build_id": int64(7), "name": "Aghanim's Scepter"})

	rows, err := store.Select(ctx, repository.TableItems, repository.Row{"build_id": 7})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestStore_DeleteFunc(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	store.Seed(repository.TableItems, repository.Row{"build_id": 1, "name": "Tango"})

	boom := errors.New("boom")
	store.DeleteFunc = func(table string, match repository.Row) error { return boom }

	err := store.Delete(ctx, repository.TableItems, repository.Row{"id": 1})
	assert.ErrorIs(t, err, boom)
	assert.Len(t, store.Rows(repository.TableItems), 1)
	assert.Len(t, store.Deletes(), 1, "failed deletes are still recorded")
}
