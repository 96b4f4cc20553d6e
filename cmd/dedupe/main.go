package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dom/hero-builds/internal/config"
	"github.com/dom/hero-builds/internal/logger"
	"github.com/dom/hero-builds/internal/prompt"
	"github.com/dom/hero-builds/internal/repository"
	"github.com/dom/hero-builds/internal/repository/postgres"
	"github.com/dom/hero-builds/internal/service"
	"github.com/urfave/cli/v2"
)

const confirmation = "yes"

type runner struct {
	in        io.Reader
	out       io.Writer
	openStore func(cfg *config.Config) (repository.TableStore, error)

	dedup *service.DedupService
}

func main() {
	r := &runner{in: os.Stdin, out: os.Stdout, openStore: openPostgres}

	if err := newApp(r).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openPostgres(cfg *config.Config) (repository.TableStore, error) {
	db, err := postgres.NewConnection(cfg.DatabaseURL, cfg.Debug())
	if err != nil {
		return nil, err
	}
	return postgres.NewTableStore(db), nil
}

func newApp(r *runner) *cli.App {
	return &cli.App{
		Name:      "dedupe",
		Usage:     "find and remove duplicate catalog rows",
		Writer:    r.out,
		ErrWriter: r.out,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "check", Usage: "report duplicate counts (default)"},
			&cli.BoolFlag{Name: "dry-run", Usage: "show every row that would be removed"},
			&cli.BoolFlag{Name: "remove", Usage: "delete duplicates after confirmation"},
		},
		Before: r.connect,
		Action: r.run,
	}
}

func (r *runner) connect(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(cfg.Environment, cfg.LogLevel)

	store, err := r.openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	r.dedup = service.NewDedupService(store)
	return nil
}

func (r *runner) run(c *cli.Context) error {
	modes := 0
	for _, name := range []string{"check", "dry-run", "remove"} {
		if c.Bool(name) {
			modes++
		}
	}
	if modes > 1 {
		return errors.New("choose one of --check, --dry-run or --remove")
	}

	fmt.Fprintln(r.out, "Searching for duplicates...")
	report := r.dedup.Scan(c.Context)
	r.printReport(report, c.Bool("dry-run"))

	scanErr := scanErrors(report)
	if report.Clean() {
		fmt.Fprintln(r.out, "\nNo duplicates found! Database is clean.")
		return scanErr
	}

	switch {
	case c.Bool("dry-run"):
		fmt.Fprintf(r.out, "\nDRY RUN: would remove %d rows from %d duplicate groups\n", report.Removable(), report.GroupCount())
		fmt.Fprintln(r.out, "Run with --remove to actually remove duplicates")
	case c.Bool("remove"):
		return errors.Join(scanErr, r.remove(c, report))
	default:
		fmt.Fprintf(r.out, "\nFound %d duplicate groups (%d extra rows)\n", report.GroupCount(), report.Extra())
	}
	return scanErr
}

func (r *runner) remove(c *cli.Context, report *service.DedupReport) error {
	fmt.Fprintf(r.out, "\nWARNING: about to remove %d rows from %d duplicate groups\n", report.Removable(), report.GroupCount())
	ok, err := prompt.New(r.in, r.out).Confirm("Are you sure? Type 'yes' to continue: ", confirmation)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(r.out, "Operation cancelled")
		return nil
	}

	result := r.dedup.Remove(c.Context, report)
	fmt.Fprintf(r.out, "\nRemoved %d duplicate rows\n", result.Removed)
	if result.Skipped > 0 {
		fmt.Fprintf(r.out, "Left %d rows in place, resolve them by hand\n", result.Skipped)
	}
	if result.Failed > 0 {
		return fmt.Errorf("%d deletions failed, see log for details", result.Failed)
	}
	return nil
}

func (r *runner) printReport(report *service.DedupReport, detail bool) {
	for _, t := range report.Tables {
		if t.Err != nil {
			fmt.Fprintf(r.out, "%s: scan failed: %v\n", t.Table.Name, t.Err)
			continue
		}
		if len(t.Groups) == 0 {
			fmt.Fprintf(r.out, "No duplicates found in %s\n", t.Table.Name)
			continue
		}

		fmt.Fprintf(r.out, "\n%s DUPLICATES:\n", strings.ToUpper(t.Table.Name))
		fmt.Fprintln(r.out, strings.Repeat("-", 50))
		for _, g := range t.Groups {
			fmt.Fprintf(r.out, "%s - %d copies\n", g.Describe(t.Table.Key), g.Count())
			if !detail {
				continue
			}
			if t.Table.ReportOnly {
				fmt.Fprintln(r.out, "  left in place, resolve by hand")
				continue
			}
			for _, row := range g.Rows[1:] {
				fmt.Fprintf(r.out, "  would remove %s\n", rowLabel(t.Table, row))
			}
		}
	}
}

func rowLabel(table repository.Table, row repository.Row) string {
	if table.IDColumn != "" {
		return fmt.Sprintf("%s=%s", table.IDColumn, row.String(table.IDColumn))
	}
	return "one copy"
}

func scanErrors(report *service.DedupReport) error {
	var errs []error
	for _, t := range report.Tables {
		if t.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", t.Table.Name, t.Err))
		}
	}
	return errors.Join(errs...)
}
