// Package memory is an in-process TableStore used by tests and local runs.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dom/hero-builds/internal/repository"
)

var ErrUnfilteredDelete = errors.New("delete without a filter")

// DeleteCall is one Delete invocation, recorded whether or not it succeeded.
type DeleteCall struct {
	Table string
	Match repository.Row
}

// Store keeps rows per table in insertion order. Unlike the hosted store it
// enforces no unique constraints, so duplicates can be seeded directly.
type Store struct {
	mu      sync.Mutex
	tables  map[string][]repository.Row
	nextID  map[string]int64
	deletes []DeleteCall

	// DeleteFunc, when set, is consulted before each delete; a non-nil
	// error fails that call.
	DeleteFunc func(table string, match repository.Row) error
	// UpsertFunc works the same way for upserts.
	UpsertFunc func(table string, row repository.Row) error
}

func New() *Store {
	return &Store{
		tables: make(map[string][]repository.Row),
		nextID: make(map[string]int64),
	}
}

// Seed appends rows as-is, assigning surrogate ids where the table has one
// and the row lacks it.
func (s *Store) Seed(table string, rows ...repository.Row) []repository.Row {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]repository.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, s.insert(table, row.Clone()).Clone())
	}
	return out
}

// Rows returns a copy of the table contents.
func (s *Store) Rows(table string) []repository.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRows(s.tables[table])
}

// Deletes returns every delete call in the order it was made.
func (s *Store) Deletes() []DeleteCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]DeleteCall(nil), s.deletes...)
}

func (s *Store) SelectAll(ctx context.Context, table string) ([]repository.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRows(s.tables[table]), nil
}

func (s *Store) Select(ctx context.Context, table string, match repository.Row) ([]repository.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []repository.Row
	for _, row := range s.tables[table] {
		if row.Matches(match) {
			out = append(out, row.Clone())
		}
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, table string, match repository.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deletes = append(s.deletes, DeleteCall{Table: table, Match: match.Clone()})

	if len(match) == 0 {
		return fmt.Errorf("%s: %w", table, ErrUnfilteredDelete)
	}
	if s.DeleteFunc != nil {
		if err := s.DeleteFunc(table, match); err != nil {
			return err
		}
	}

	kept := s.tables[table][:0]
	for _, row := range s.tables[table] {
		if !row.Matches(match) {
			kept = append(kept, row)
		}
	}
	s.tables[table] = kept
	return nil
}

func (s *Store) Upsert(ctx context.Context, table string, row repository.Row, conflict []string) (repository.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.UpsertFunc != nil {
		if err := s.UpsertFunc(table, row); err != nil {
			return nil, err
		}
	}

	if len(conflict) > 0 {
		match := row.Pick(conflict...)
		for _, existing := range s.tables[table] {
			if existing.Matches(match) {
				for col, v := range row {
					existing[col] = v
				}
				return existing.Clone(), nil
			}
		}
	}

	return s.insert(table, row.Clone()).Clone(), nil
}

func (s *Store) insert(table string, row repository.Row) repository.Row {
	if idCol := repository.IDColumnFor(table); idCol != "" {
		if id, ok := row.Int64(idCol); ok {
			if id > s.nextID[table] {
				s.nextID[table] = id
			}
		} else {
			s.nextID[table]++
			row[idCol] = s.nextID[table]
		}
	}
	s.tables[table] = append(s.tables[table], row)
	return row
}

func cloneRows(rows []repository.Row) []repository.Row {
	out := make([]repository.Row, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out
}
