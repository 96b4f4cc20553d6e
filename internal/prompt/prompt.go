// Package prompt collects hero and build records line by line from a terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dom/hero-builds/internal/domain"
	"github.com/dom/hero-builds/internal/record"
)

var ErrInputClosed = errors.New("input closed before the record was complete")

type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask prints label and returns the trimmed answer. io.EOF is returned only
// when the input ends with nothing left to read.
func (p *Prompter) Ask(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *Prompter) ask(label string) (string, error) {
	s, err := p.Ask(label)
	if errors.Is(err, io.EOF) {
		return "", ErrInputClosed
	}
	return s, err
}

// List asks for entries until a blank line or the end of input.
func (p *Prompter) List(label string) ([]any, error) {
	entries := []any{}
	for {
		s, err := p.Ask(fmt.Sprintf("%s %d: ", label, len(entries)+1))
		if errors.Is(err, io.EOF) || (err == nil && s == "") {
			return entries, nil
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, s)
	}
}

// Confirm asks question and reports whether the answer is exactly expected.
func (p *Prompter) Confirm(question, expected string) (bool, error) {
	answer, err := p.Ask(question)
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return answer == expected, nil
}

// Hero walks through every hero field. The result is unvalidated.
func (p *Prompter) Hero() (record.Record, error) {
	fmt.Fprintln(p.out, "Creating a new hero...")
	fmt.Fprintln(p.out, strings.Repeat("=", 50))

	rec := record.Record{}
	var err error

	if rec["id"], err = p.ask("Hero ID (lowercase, use dashes): "); err != nil {
		return nil, err
	}
	if rec["name"], err = p.ask("Hero Name: "); err != nil {
		return nil, err
	}

	fmt.Fprintf(p.out, "Available roles: %s\n", joinValues(domain.AllRoles))
	if rec["role"], err = p.ask("Role: "); err != nil {
		return nil, err
	}

	fmt.Fprintf(p.out, "Available difficulties: %s\n", joinValues(domain.AllDifficulties))
	if rec["difficulty"], err = p.ask("Difficulty: "); err != nil {
		return nil, err
	}

	fmt.Fprintf(p.out, "Available moods: %s\n", joinValues(domain.AllMoods))
	moods, err := p.ask("Moods (comma-separated): ")
	if err != nil {
		return nil, err
	}
	rec["moods"] = splitCommas(moods)

	if rec["description"], err = p.ask("Description: "); err != nil {
		return nil, err
	}

	fmt.Fprintln(p.out, "Enter strengths (blank line to finish):")
	if rec["strengths"], err = p.List("Strength"); err != nil {
		return nil, err
	}
	fmt.Fprintln(p.out, "Enter weaknesses (blank line to finish):")
	if rec["weaknesses"], err = p.List("Weakness"); err != nil {
		return nil, err
	}

	return rec, nil
}

// Build walks through a build, its items, playstyle and gameplan.
func (p *Prompter) Build() (record.Record, error) {
	fmt.Fprintln(p.out, "Creating a new build...")
	fmt.Fprintln(p.out, strings.Repeat("=", 50))

	rec := record.Record{}
	var err error

	if rec["heroId"], err = p.ask("Hero ID: "); err != nil {
		return nil, err
	}
	fmt.Fprintf(p.out, "Available moods: %s\n", joinValues(domain.AllMoods))
	if rec["mood"], err = p.ask("Mood: "); err != nil {
		return nil, err
	}

	fmt.Fprintln(p.out, "Enter items (blank item ID to finish):")
	items := []any{}
	for {
		fmt.Fprintf(p.out, "\nItem %d:\n", len(items)+1)
		item, err := p.item()
		if err != nil {
			return nil, err
		}
		if item == nil {
			break
		}
		items = append(items, item)
	}
	rec["items"] = items

	playstyle := map[string]any{}
	fmt.Fprintln(p.out, "Enter playstyle dos (blank line to finish):")
	if playstyle["dos"], err = p.List("Do"); err != nil {
		return nil, err
	}
	fmt.Fprintln(p.out, "Enter playstyle donts (blank line to finish):")
	if playstyle["donts"], err = p.List("Don't"); err != nil {
		return nil, err
	}
	fmt.Fprintln(p.out, "Enter playstyle tips (blank line to finish):")
	if playstyle["tips"], err = p.List("Tip"); err != nil {
		return nil, err
	}
	rec["playstyle"] = playstyle

	gameplan := map[string]any{}
	if gameplan["early"], err = p.ask("Early game strategy: "); err != nil {
		return nil, err
	}
	if gameplan["mid"], err = p.ask("Mid game strategy: "); err != nil {
		return nil, err
	}
	if gameplan["late"], err = p.ask("Late game strategy: "); err != nil {
		return nil, err
	}
	rec["gameplan"] = gameplan

	return rec, nil
}

// item returns nil when the item list is finished.
func (p *Prompter) item() (map[string]any, error) {
	id, err := p.Ask("  Item ID: ")
	if errors.Is(err, io.EOF) || (err == nil && id == "") {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	item := map[string]any{"id": id}
	if item["name"], err = p.ask("  Item Name: "); err != nil {
		return nil, err
	}

	cost, err := p.ask("  Item Cost: ")
	if err != nil {
		return nil, err
	}
	// Non-numeric input is kept as text so validation reports it.
	if n, convErr := strconv.Atoi(cost); convErr == nil {
		item["cost"] = n
	} else {
		item["cost"] = cost
	}

	fmt.Fprintf(p.out, "  Available phases: %s\n", joinValues(domain.AllPhases))
	if item["phase"], err = p.ask("  Phase: "); err != nil {
		return nil, err
	}
	fmt.Fprintf(p.out, "  Available priorities: %s\n", joinValues(domain.AllPriorities))
	if item["priority"], err = p.ask("  Priority: "); err != nil {
		return nil, err
	}
	if item["description"], err = p.ask("  Description: "); err != nil {
		return nil, err
	}
	return item, nil
}

func splitCommas(s string) []any {
	out := []any{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
