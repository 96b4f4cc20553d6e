package main

import (
	"fmt"
	"path/filepath"

	"github.com/dom/hero-builds/internal/convert"
	"github.com/dom/hero-builds/internal/jsonfile"
	"github.com/dom/hero-builds/internal/record"
	"github.com/dom/hero-builds/internal/templates"
	"github.com/dom/hero-builds/internal/validate"
	"github.com/urfave/cli/v2"
)

func (e *env) validateCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "check a hero or build file without storing it",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "json", Usage: "JSON `FILE` to validate", Required: true},
			&cli.StringFlag{Name: "type", Usage: "record type, hero or build (detected when omitted)"},
		},
		Action: func(c *cli.Context) error {
			rec, err := record.Load(c.String("json"))
			if err != nil {
				return err
			}

			kind := validate.Kind(c.String("type"))
			if kind == "" {
				if kind, err = validate.DetectKind(rec); err != nil {
					return fmt.Errorf("%w, use --type", err)
				}
				fmt.Fprintf(e.out, "Auto-detected as %s data\n", kind)
			}

			if problems := validate.Record(rec, kind); len(problems) > 0 {
				e.printProblems("Validation errors:", problems)
				return errInvalid
			}
			fmt.Fprintln(e.out, "Data validation passed!")
			return nil
		},
	}
}

func (e *env) createTemplatesCommand() *cli.Command {
	return &cli.Command{
		Name:  "create-templates",
		Usage: "write example hero and build files",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Value: ".", Usage: "`DIR` to write the templates to"},
		},
		Action: func(c *cli.Context) error {
			paths, err := templates.Write(c.String("dir"))
			if err != nil {
				return err
			}
			fmt.Fprintln(e.out, "Template files created:")
			for _, p := range paths {
				fmt.Fprintf(e.out, "  - %s\n", filepath.Base(p))
			}
			return nil
		},
	}
}

func convertFlags(extra ...cli.Flag) []cli.Flag {
	return append([]cli.Flag{
		&cli.StringFlag{Name: "in", Usage: "input `FILE`", Required: true},
		&cli.StringFlag{Name: "out", Usage: "output `FILE` (defaults to --in)"},
	}, extra...)
}

func outPath(c *cli.Context) string {
	if out := c.String("out"); out != "" {
		return out
	}
	return c.String("in")
}

func (e *env) convertCommand() *cli.Command {
	return &cli.Command{
		Name:  "convert",
		Usage: "one-pass transforms for curation files",
		Subcommands: []*cli.Command{
			{
				Name:  "to-list",
				Usage: "turn an object keyed by hero into an array of its values",
				Flags: convertFlags(),
				Action: func(c *cli.Context) error {
					doc, err := jsonfile.LoadObject(c.String("in"))
					if err != nil {
						return err
					}
					list, err := convert.DictToList(doc)
					if err != nil {
						return err
					}
					if err := jsonfile.Save(outPath(c), list); err != nil {
						return err
					}
					fmt.Fprintf(e.out, "Converted %d records to %s\n", len(list), outPath(c))
					return nil
				},
			},
			{
				Name:  "kebab-ids",
				Usage: "rewrite snake_case heroId values as kebab-case",
				Flags: convertFlags(),
				Action: func(c *cli.Context) error {
					list, err := jsonfile.LoadList(c.String("in"))
					if err != nil {
						return err
					}
					changes, err := convert.KebabHeroIDs(list)
					if err != nil {
						return err
					}
					for _, ch := range changes {
						fmt.Fprintf(e.out, "  %s -> %s\n", ch.From, ch.To)
					}
					if err := jsonfile.Save(outPath(c), list); err != nil {
						return err
					}
					fmt.Fprintf(e.out, "Updated %d hero ids\n", len(changes))
					return nil
				},
			},
			{
				Name:  "remap-moods",
				Usage: "map free-form mood tags onto the five catalog moods",
				Flags: convertFlags(&cli.StringFlag{Name: "taxonomy", Usage: "YAML `FILE` replacing the built-in taxonomy"}),
				Action: func(c *cli.Context) error {
					taxonomy, err := loadTaxonomy(c.String("taxonomy"))
					if err != nil {
						return err
					}
					list, err := jsonfile.LoadList(c.String("in"))
					if err != nil {
						return err
					}
					result, err := convert.RemapMoods(list, taxonomy)
					if err != nil {
						return err
					}
					if err := jsonfile.Save(outPath(c), list); err != nil {
						return err
					}

					fmt.Fprintf(e.out, "Updated %d builds\n", result.Updated)
					if len(result.Unmapped) > 0 {
						fmt.Fprintln(e.out, "Unmapped moods:")
						for _, m := range result.Unmapped {
							fmt.Fprintf(e.out, "  - %s\n", m)
						}
					}
					return nil
				},
			},
		},
	}
}

func loadTaxonomy(path string) (*convert.Taxonomy, error) {
	if path == "" {
		return convert.DefaultTaxonomy()
	}
	t, err := convert.LoadTaxonomy(path)
	if err != nil {
		return nil, fmt.Errorf("taxonomy %s: %w", path, err)
	}
	return t, nil
}
