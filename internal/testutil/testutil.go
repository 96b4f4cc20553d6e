package testutil

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dom/hero-builds/internal/api"
	"github.com/dom/hero-builds/internal/config"
	"github.com/dom/hero-builds/internal/domain"
	"github.com/dom/hero-builds/internal/repository"
	"github.com/dom/hero-builds/internal/repository/memory"
	"github.com/dom/hero-builds/internal/service"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB manages a testcontainers PostgreSQL instance
type TestDB struct {
	Container testcontainers.Container
	DB        *gorm.DB
	DSN       string
}

// NewTestDB creates a new PostgreSQL testcontainer with the catalog schema
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase("test_hero_builds"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := gorm.Open(gormPostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	// The hosted schema is managed elsewhere; tests build an equivalent one
	if err := db.AutoMigrate(domain.AllRowModels()...); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	testDB := &TestDB{
		Container: container,
		DB:        db,
		DSN:       dsn,
	}

	t.Cleanup(func() {
		testDB.Cleanup()
	})

	return testDB
}

// Cleanup terminates the container
func (tdb *TestDB) Cleanup() {
	if tdb.Container != nil {
		ctx := context.Background()
		tdb.Container.Terminate(ctx)
	}
}

// Truncate clears all tables for test isolation
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	for _, table := range repository.Tables {
		if err := tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table.Name)).Error; err != nil {
			t.Logf("warning: failed to truncate %s: %v", table.Name, err)
		}
	}
}

// TestConfig returns a configuration suitable for testing
func TestConfig() *config.Config {
	return &config.Config{
		Port:                "0", // Random port
		Environment:         "test",
		DatabaseURL:         "memory",
		LogLevel:            "error",
		MaxDescriptionWidth: 60,
	}
}

// TestServer holds all components for API testing
type TestServer struct {
	Server   *httptest.Server
	Store    *memory.Store
	Services *service.Services
	Config   *config.Config
}

// NewTestServer creates an API server backed by an in-memory store
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	cfg := TestConfig()
	store := memory.New()
	services := service.NewServices(store)
	router := api.NewRouter(services, cfg)

	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:   server,
		Store:    store,
		Services: services,
		Config:   cfg,
	}

	t.Cleanup(func() {
		server.Close()
	})

	return ts
}

// BaseURL returns the test server's base URL
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL
}

// APIURL returns the full API URL for a given path
func (ts *TestServer) APIURL(path string) string {
	return fmt.Sprintf("%s/api/v1%s", ts.Server.URL, path)
}

// SeedHero stores a hero through the catalog service
func (ts *TestServer) SeedHero(t *testing.T, hero *domain.Hero) {
	t.Helper()
	if err := ts.Services.Catalog.AddHero(context.Background(), hero); err != nil {
		t.Fatalf("failed to seed hero %s: %v", hero.ID, err)
	}
}

// SeedBuild stores a build through the catalog service
func (ts *TestServer) SeedBuild(t *testing.T, build *domain.Build) {
	t.Helper()
	if err := ts.Services.Catalog.AddBuild(context.Background(), build); err != nil {
		t.Fatalf("failed to seed build %s (%s): %v", build.HeroID, build.Mood, err)
	}
}
