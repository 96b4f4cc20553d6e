package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dom/hero-builds/internal/repository"
	"github.com/rs/zerolog/log"
)

// DuplicateGroup is a set of rows sharing one natural key, in the order the
// store returned them. The first row is the one that is kept.
type DuplicateGroup struct {
	Table string
	Key   repository.Row
	Rows  []repository.Row
}

func (g DuplicateGroup) Count() int {
	return len(g.Rows)
}

// Describe renders the key as "hero_id=axe, mood=chaos".
func (g DuplicateGroup) Describe(cols []string) string {
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = fmt.Sprintf("%s=%s", col, g.Key.String(col))
	}
	return strings.Join(parts, ", ")
}

// TableReport holds the duplicate groups found in one table.
type TableReport struct {
	Table  repository.Table
	Groups []DuplicateGroup
	Err    error
}

// Extra is the number of rows that would be removed.
func (r TableReport) Extra() int {
	n := 0
	for _, g := range r.Groups {
		n += g.Count() - 1
	}
	return n
}

// DedupReport covers every table, children before parents.
type DedupReport struct {
	Tables []TableReport
}

func (r *DedupReport) GroupCount() int {
	n := 0
	for _, t := range r.Tables {
		n += len(t.Groups)
	}
	return n
}

func (r *DedupReport) Extra() int {
	n := 0
	for _, t := range r.Tables {
		n += t.Extra()
	}
	return n
}

// Removable is Extra without the report-only tables.
func (r *DedupReport) Removable() int {
	n := 0
	for _, t := range r.Tables {
		if !t.Table.ReportOnly {
			n += t.Extra()
		}
	}
	return n
}

func (r *DedupReport) Clean() bool {
	return r.GroupCount() == 0
}

// RemoveResult tallies a removal pass.
type RemoveResult struct {
	Removed int
	Failed  int
	Skipped int
}

type DedupService struct {
	store  repository.TableStore
	tables []repository.Table
}

func NewDedupService(store repository.TableStore) *DedupService {
	return &DedupService{store: store, tables: repository.Tables}
}

// FindDuplicates groups all rows of table by its natural key and returns the
// groups with more than one row, in first-seen order.
func (s *DedupService) FindDuplicates(ctx context.Context, table repository.Table) ([]DuplicateGroup, error) {
	rows, err := s.store.SelectAll(ctx, table.Name)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", table.Name, err)
	}

	var order []string
	groups := make(map[string]*DuplicateGroup)
	for _, row := range rows {
		// NULL never equals NULL, so such rows are not duplicates of each other
		if hasNull(row, table.Key) {
			continue
		}
		key := naturalKey(row, table.Key)
		g, ok := groups[key]
		if !ok {
			g = &DuplicateGroup{Table: table.Name, Key: row.Pick(table.Key...)}
			groups[key] = g
			order = append(order, key)
		}
		g.Rows = append(g.Rows, row)
	}

	var dups []DuplicateGroup
	for _, key := range order {
		if g := groups[key]; g.Count() > 1 {
			dups = append(dups, *g)
		}
	}
	return dups, nil
}

func hasNull(row repository.Row, cols []string) bool {
	for _, col := range cols {
		if row[col] == nil {
			return true
		}
	}
	return false
}

// naturalKey joins the key columns with a separator that cannot appear in
// slugs or mood names, so ("anti_mage", "x") and ("anti", "mage_x") differ.
func naturalKey(row repository.Row, cols []string) string {
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = row.String(col)
	}
	return strings.Join(parts, "\x1f")
}

// Scan checks every table. A table that cannot be read is reported with its
// error and the scan moves on.
func (s *DedupService) Scan(ctx context.Context) *DedupReport {
	report := &DedupReport{}
	for _, table := range s.tables {
		groups, err := s.FindDuplicates(ctx, table)
		if err != nil {
			log.Error().Err(err).Str("table", table.Name).Msg("failed to scan for duplicates")
		}
		report.Tables = append(report.Tables, TableReport{Table: table, Groups: groups, Err: err})
	}
	return report
}

// Remove deletes every row but the first in each group, tables in report
// order. Rows with a surrogate id are deleted one by one after their child
// rows. Tables without one can only be addressed by natural key, so the group
// is deleted as a whole and the kept row written back. Groups in report-only
// tables are logged and counted as skipped.
//
// Every delete is its own call; a failure is logged and counted, and the pass
// moves on.
func (s *DedupService) Remove(ctx context.Context, report *DedupReport) RemoveResult {
	var result RemoveResult
	for _, tr := range report.Tables {
		if tr.Table.ReportOnly {
			for _, group := range tr.Groups {
				log.Warn().Str("table", tr.Table.Name).Str("key", group.Describe(tr.Table.Key)).
					Int("count", group.Count()).Msg("duplicate left in place, resolve by hand")
				result.Skipped += group.Count() - 1
			}
			continue
		}
		for _, group := range tr.Groups {
			if tr.Table.IDColumn != "" {
				s.removeByID(ctx, tr.Table, group, &result)
			} else {
				s.collapse(ctx, tr.Table, group, &result)
			}
		}
	}

	log.Info().Int("removed", result.Removed).Int("failed", result.Failed).Int("skipped", result.Skipped).Msg("duplicate removal finished")
	return result
}

func (s *DedupService) removeByID(ctx context.Context, table repository.Table, group DuplicateGroup, result *RemoveResult) {
	for _, row := range group.Rows[1:] {
		id := row[table.IDColumn]
		logger := log.With().Str("table", table.Name).Interface("id", id).Logger()

		for _, child := range table.Children {
			if err := s.store.Delete(ctx, child, repository.Row{table.ChildColumn: id}); err != nil {
				logger.Error().Err(err).Str("child_table", child).Msg("failed to delete child rows")
			}
		}

		if err := s.store.Delete(ctx, table.Name, repository.Row{table.IDColumn: id}); err != nil {
			logger.Error().Err(err).Msg("failed to delete duplicate")
			result.Failed++
			continue
		}
		logger.Debug().Msg("deleted duplicate")
		result.Removed++
	}
}

func (s *DedupService) collapse(ctx context.Context, table repository.Table, group DuplicateGroup, result *RemoveResult) {
	extra := group.Count() - 1
	logger := log.With().Str("table", table.Name).Str("key", group.Describe(table.Key)).Logger()

	if err := s.store.Delete(ctx, table.Name, group.Key); err != nil {
		logger.Error().Err(err).Msg("failed to delete duplicates")
		result.Failed += extra
		return
	}

	if _, err := s.store.Upsert(ctx, table.Name, group.Rows[0].Clone(), nil); err != nil {
		// The whole group is gone at this point, the kept row included.
		logger.Error().Err(err).Interface("row", group.Rows[0]).Msg("failed to restore kept row")
		result.Removed += extra
		result.Failed++
		return
	}
	result.Removed += extra
}
