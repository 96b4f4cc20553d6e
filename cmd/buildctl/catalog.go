package main

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dom/hero-builds/internal/domain"
	"github.com/dom/hero-builds/internal/prompt"
	"github.com/dom/hero-builds/internal/record"
	"github.com/dom/hero-builds/internal/service"
	"github.com/dom/hero-builds/internal/validate"
	"github.com/urfave/cli/v2"
)

func sourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "json", Usage: "JSON `FILE` holding the record"},
		&cli.BoolFlag{Name: "interactive", Usage: "enter the record at the prompt"},
	}
}

// readSource returns the record named by --json or entered interactively.
func (e *env) readSource(c *cli.Context, interactive func(*prompt.Prompter) (record.Record, error)) (record.Record, error) {
	path := c.String("json")
	switch {
	case path != "" && c.Bool("interactive"):
		return nil, errors.New("use either --json or --interactive, not both")
	case path != "":
		return record.Load(path)
	case c.Bool("interactive"):
		return interactive(prompt.New(e.in, e.out))
	default:
		return nil, errors.New("one of --json or --interactive is required")
	}
}

func (e *env) addHeroCommand() *cli.Command {
	return &cli.Command{
		Name:   "add-hero",
		Usage:  "add or update one hero",
		Flags:  sourceFlags(),
		Before: e.connect,
		Action: func(c *cli.Context) error {
			rec, err := e.readSource(c, (*prompt.Prompter).Hero)
			if err != nil {
				return err
			}
			if problems := validate.Hero(rec); len(problems) > 0 {
				e.printProblems("Validation errors:", problems)
				return errInvalid
			}

			var hero domain.Hero
			if err := record.Decode(rec, &hero); err != nil {
				return err
			}

			fmt.Fprintf(e.out, "Adding hero: %s...\n", hero.Name)
			if err := e.catalog.AddHero(c.Context, &hero); err != nil {
				return fmt.Errorf("failed to add hero %s: %w", hero.Name, err)
			}
			fmt.Fprintf(e.out, "Successfully added hero: %s\n", hero.Name)
			return nil
		},
	}
}

func (e *env) addBuildCommand() *cli.Command {
	return &cli.Command{
		Name:   "add-build",
		Usage:  "add or update one build",
		Flags:  sourceFlags(),
		Before: e.connect,
		Action: func(c *cli.Context) error {
			rec, err := e.readSource(c, (*prompt.Prompter).Build)
			if err != nil {
				return err
			}
			if problems := validate.Build(rec); len(problems) > 0 {
				e.printProblems("Validation errors:", problems)
				return errInvalid
			}

			var build domain.Build
			if err := record.Decode(rec, &build); err != nil {
				return err
			}

			label := fmt.Sprintf("%s (%s)", build.HeroID, build.Mood)
			fmt.Fprintf(e.out, "Adding build: %s...\n", label)
			if err := e.catalog.AddBuild(c.Context, &build); err != nil {
				if errors.Is(err, domain.ErrHeroNotFound) {
					return fmt.Errorf("hero '%s' does not exist in database", build.HeroID)
				}
				return fmt.Errorf("failed to add build %s: %w", label, err)
			}
			fmt.Fprintf(e.out, "Successfully added build: %s\n", label)
			return nil
		},
	}
}

func (e *env) bulkImportCommand() *cli.Command {
	return &cli.Command{
		Name:  "bulk-import",
		Usage: "import arrays of heroes and builds",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "heroes", Usage: "JSON `FILE` holding an array of heroes"},
			&cli.StringFlag{Name: "builds", Usage: "JSON `FILE` holding an array of builds"},
		},
		Before: e.connect,
		Action: func(c *cli.Context) error {
			heroesPath, buildsPath := c.String("heroes"), c.String("builds")
			if heroesPath == "" && buildsPath == "" {
				return errors.New("nothing to import: pass --heroes and/or --builds")
			}

			var total service.ImportResult
			if heroesPath != "" {
				recs, err := record.LoadList(heroesPath)
				if err != nil {
					return fmt.Errorf("heroes file must contain an array of hero objects: %w", err)
				}
				fmt.Fprintf(e.out, "Processing %d heroes...\n", len(recs))
				e.printImport("hero", e.catalog.ImportHeroes(c.Context, recs), &total)
			}

			// Heroes go first so builds in the same run can reference them.
			if buildsPath != "" {
				recs, err := record.LoadList(buildsPath)
				if err != nil {
					return fmt.Errorf("builds file must contain an array of build objects: %w", err)
				}
				fmt.Fprintf(e.out, "Processing %d builds...\n", len(recs))
				e.printImport("build", e.catalog.ImportBuilds(c.Context, recs), &total)
			}

			fmt.Fprintln(e.out, "\nSummary:")
			fmt.Fprintf(e.out, "Successfully processed: %d items\n", total.Succeeded)
			fmt.Fprintf(e.out, "Failed: %d items\n", total.Failed)
			return nil
		},
	}
}

func (e *env) printImport(kind string, result service.ImportResult, total *service.ImportResult) {
	for _, o := range result.Outcomes {
		switch {
		case len(o.Problems) > 0:
			e.printProblems(fmt.Sprintf("Validation errors for %s %s:", kind, o.Label), o.Problems)
		case errors.Is(o.Err, domain.ErrHeroNotFound):
			fmt.Fprintf(e.out, "Hero for build %s does not exist in database\n", o.Label)
		case o.Err != nil:
			fmt.Fprintf(e.out, "Failed to add %s %s: %v\n", kind, o.Label, o.Err)
		default:
			fmt.Fprintf(e.out, "Added %s: %s\n", kind, o.Label)
		}
	}
	total.Outcomes = append(total.Outcomes, result.Outcomes...)
	total.Succeeded += result.Succeeded
	total.Failed += result.Failed
}

func (e *env) listHeroesCommand() *cli.Command {
	return &cli.Command{
		Name:   "list-heroes",
		Usage:  "list every stored hero",
		Before: e.connect,
		Action: func(c *cli.Context) error {
			heroes, err := e.catalog.ListHeroes(c.Context)
			if err != nil {
				return fmt.Errorf("failed to list heroes: %w", err)
			}
			if len(heroes) == 0 {
				fmt.Fprintln(e.out, "No heroes found in database")
				return nil
			}

			fmt.Fprintf(e.out, "Found %d heroes in database:\n", len(heroes))
			fmt.Fprintln(e.out, strings.Repeat("-", 60))
			for _, h := range heroes {
				fmt.Fprintf(e.out, "%s (%s)\n", h.Name, h.ID)
				fmt.Fprintf(e.out, "   Role: %s | Difficulty: %s\n", h.Role, h.Difficulty)
				fmt.Fprintf(e.out, "   Description: %s\n\n", truncate(h.Description, e.cfg.MaxDescriptionWidth))
			}
			return nil
		},
	}
}

// truncate cuts s to width runes, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	return string([]rune(s)[:width]) + "..."
}
