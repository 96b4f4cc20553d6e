package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

// Row is one table row keyed by column name.
type Row map[string]interface{}

// TableStore is the narrow boundary to the hosted tables. Every call is a
// single blocking round trip.
type TableStore interface {
	SelectAll(ctx context.Context, table string) ([]Row, error)
	Select(ctx context.Context, table string, match Row) ([]Row, error)
	Delete(ctx context.Context, table string, match Row) error
	// Upsert inserts row, or updates the existing row whose conflict columns
	// match. An empty conflict list is a plain insert. The stored row is
	// returned when it can be read back, including generated ids.
	Upsert(ctx context.Context, table string, row Row, conflict []string) (Row, error)
}

// String returns the column value formatted as text, or "" when absent.
func (r Row) String(col string) string {
	v, ok := r[col]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	}
	return fmt.Sprint(v)
}

// Int64 returns the column value as an integer.
func (r Row) Int64(col string) (int64, bool) {
	switch v := r[col].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	case float64:
		return int64(v), v == float64(int64(v))
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	}
	return 0, false
}

func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Pick returns a row holding only the named columns.
func (r Row) Pick(cols ...string) Row {
	out := make(Row, len(cols))
	for _, c := range cols {
		out[c] = r[c]
	}
	return out
}

// Matches reports whether every column in match holds the same value in r.
// Values are compared by their text form so ids read back as int64 match ids
// written as int.
func (r Row) Matches(match Row) bool {
	for col := range match {
		if _, ok := r[col]; !ok {
			return false
		}
		if r.String(col) != match.String(col) {
			return false
		}
	}
	return true
}
