package config_test

import (
	"os"
	"testing"

	"github.com/dom/hero-builds/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate moves into an empty directory, so a developer's .env is not picked
// up, and clears the given variables for the duration of the test.
func isolate(t *testing.T, keys ...string) {
	t.Helper()
	chdir(t, t.TempDir())
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t, "PORT", "ENVIRONMENT", "LOG_LEVEL", "MAX_DESCRIPTION_WIDTH")
	t.Setenv("DATABASE_URL", "postgres://localhost/catalog")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/catalog", cfg.DatabaseURL)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 60, cfg.MaxDescriptionWidth)
	assert.False(t, cfg.Debug())
}

func TestLoad_Overrides(t *testing.T) {
	isolate(t)
	t.Setenv("DATABASE_URL", "postgres://db/catalog")
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MAX_DESCRIPTION_WIDTH", "not-a-number")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.Debug())
	assert.Equal(t, 60, cfg.MaxDescriptionWidth, "unparseable ints fall back")
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	isolate(t, "DATABASE_URL")

	_, err := config.Load()
	assert.ErrorIs(t, err, config.ErrMissingDatabaseURL)
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	isolate(t, "DATABASE_URL")
	require.NoError(t, os.WriteFile(".env", []byte("DATABASE_URL=postgres://dotenv/catalog\n"), 0o644))

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://dotenv/catalog", cfg.DatabaseURL)
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
