package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dom/hero-builds/internal/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrUnfilteredDelete = errors.New("delete without a filter")

type tableStore struct {
	db *gorm.DB
}

func NewTableStore(db *gorm.DB) *tableStore {
	return &tableStore{db: db}
}

func (s *tableStore) SelectAll(ctx context.Context, table string) ([]repository.Row, error) {
	var rows []map[string]interface{}
	if err := s.db.WithContext(ctx).Table(table).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toRows(rows), nil
}

func (s *tableStore) Select(ctx context.Context, table string, match repository.Row) ([]repository.Row, error) {
	var rows []map[string]interface{}
	err := s.db.WithContext(ctx).Table(table).Where(map[string]interface{}(match)).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toRows(rows), nil
}

func (s *tableStore) Delete(ctx context.Context, table string, match repository.Row) error {
	if len(match) == 0 {
		return fmt.Errorf("%s: %w", table, ErrUnfilteredDelete)
	}

	cols := make([]string, 0, len(match))
	for col := range match {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	conds := make([]string, len(cols))
	args := make([]interface{}, 0, len(cols))
	for i, col := range cols {
		if match[col] == nil {
			conds[i] = s.db.Statement.Quote(col) + " IS NULL"
			continue
		}
		conds[i] = s.db.Statement.Quote(col) + " = ?"
		args = append(args, match[col])
	}

	sql := "DELETE FROM " + s.db.Statement.Quote(table) + " WHERE " + strings.Join(conds, " AND ")
	return s.db.WithContext(ctx).Exec(sql, args...).Error
}

func (s *tableStore) Upsert(ctx context.Context, table string, row repository.Row, conflict []string) (repository.Row, error) {
	tx := s.db.WithContext(ctx).Table(table)

	if len(conflict) > 0 {
		onConflict := clause.OnConflict{Columns: make([]clause.Column, len(conflict))}
		for i, col := range conflict {
			onConflict.Columns[i] = clause.Column{Name: col}
		}

		var updates []string
		for col := range row {
			if !contains(conflict, col) {
				updates = append(updates, col)
			}
		}
		sort.Strings(updates)

		if len(updates) > 0 {
			onConflict.DoUpdates = clause.AssignmentColumns(updates)
		} else {
			onConflict.DoNothing = true
		}
		tx = tx.Clauses(onConflict)
	}

	values := map[string]interface{}(row.Clone())
	if err := tx.Create(values).Error; err != nil {
		return nil, err
	}

	if len(conflict) == 0 {
		return row.Clone(), nil
	}

	// Read back by the conflict key to pick up generated columns.
	var stored map[string]interface{}
	err := s.db.WithContext(ctx).Table(table).
		Where(map[string]interface{}(row.Pick(conflict...))).
		Take(&stored).Error
	if err != nil {
		return nil, fmt.Errorf("read back %s: %w", table, err)
	}
	return repository.Row(stored), nil
}

func toRows(rows []map[string]interface{}) []repository.Row {
	out := make([]repository.Row, len(rows))
	for i, r := range rows {
		out[i] = repository.Row(r)
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
