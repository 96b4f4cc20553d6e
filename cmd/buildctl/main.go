package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dom/hero-builds/internal/config"
	"github.com/dom/hero-builds/internal/logger"
	"github.com/dom/hero-builds/internal/repository"
	"github.com/dom/hero-builds/internal/repository/postgres"
	"github.com/dom/hero-builds/internal/service"
	"github.com/urfave/cli/v2"
)

// errInvalid is returned after validation messages have been printed.
var errInvalid = errors.New("validation failed")

// env is what the commands share: terminal streams, and the catalog once a
// store-backed command has connected.
type env struct {
	in        io.Reader
	out       io.Writer
	openStore func(cfg *config.Config) (repository.TableStore, error)

	cfg     *config.Config
	catalog *service.CatalogService
}

func main() {
	e := &env{in: os.Stdin, out: os.Stdout, openStore: openPostgres}

	if err := newApp(e).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(e *env) *cli.App {
	return &cli.App{
		Name:      "buildctl",
		Usage:     "manage the hero and build catalog",
		Writer:    e.out,
		ErrWriter: e.out,
		Commands: []*cli.Command{
			e.addHeroCommand(),
			e.addBuildCommand(),
			e.bulkImportCommand(),
			e.listHeroesCommand(),
			e.validateCommand(),
			e.createTemplatesCommand(),
			e.convertCommand(),
		},
	}
}

// connect loads configuration and opens the store. It runs before every
// command that reads or writes the catalog, so a missing DATABASE_URL stops
// the command before it does anything.
func (e *env) connect(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(cfg.Environment, cfg.LogLevel)

	store, err := e.openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	e.cfg = cfg
	e.catalog = service.NewCatalogService(store)
	return nil
}

func openPostgres(cfg *config.Config) (repository.TableStore, error) {
	db, err := postgres.NewConnection(cfg.DatabaseURL, cfg.Debug())
	if err != nil {
		return nil, err
	}
	return postgres.NewTableStore(db), nil
}

func (e *env) printProblems(header string, problems []string) {
	fmt.Fprintln(e.out, header)
	for _, p := range problems {
		fmt.Fprintf(e.out, "  - %s\n", p)
	}
}
