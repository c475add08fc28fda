// Package table loads heterogeneous tabular exports into canonical
// in-memory tables keyed by a normalized order identifier.
package table

import (
	"errors"
	"strings"
)

// KeyColumn is the canonical join key every source is normalized onto.
const KeyColumn = "order_id"

var (
	// ErrUnsupportedFormat indicates the input blob is neither delimited text
	// nor a spreadsheet. Surfaced to the caller before any processing begins.
	ErrUnsupportedFormat = errors.New("unsupported input format")

	// ErrEmptyInput indicates the input parsed but contained zero data rows.
	ErrEmptyInput = errors.New("input contains no data rows")
)

// Record is one row of a source table: column name to raw cell value.
// A column absent from the map is a missing value, never an error.
type Record map[string]string

// Get returns the value for a column, or "" if the column is missing.
func (r Record) Get(col string) string {
	return r[col]
}

// GetOr returns the value for a column, or fallback if the column is absent.
// An empty value in a present column is returned as-is.
func (r Record) GetOr(col, fallback string) string {
	if v, ok := r[col]; ok {
		return v
	}
	return fallback
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an in-memory source table. Column order and row order match the
// input exactly.
type Table struct {
	Name    string
	Columns []string
	Rows    []Record
}

// HasColumn reports whether the table declares the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// keySource returns the column the join key is read from: a column literally
// named order_id if present, otherwise the first column.
func (t *Table) keySource() string {
	if t.HasColumn(KeyColumn) {
		return KeyColumn
	}
	if len(t.Columns) > 0 {
		return t.Columns[0]
	}
	return ""
}

// NormalizeKeys writes the canonical join key into the order_id column of
// every row: the key-source value, trimmed of surrounding whitespace. The
// rule is identical for all sources so the tables stay joinable. Duplicate
// keys are left alone; uniqueness is not this layer's business.
func (t *Table) NormalizeKeys() {
	src := t.keySource()
	if src == "" {
		return
	}
	if !t.HasColumn(KeyColumn) {
		t.Columns = append([]string{KeyColumn}, t.Columns...)
	}
	for _, row := range t.Rows {
		row[KeyColumn] = strings.TrimSpace(row.Get(src))
	}
}

// Key returns the normalized join key of a row.
func Key(r Record) string {
	return strings.TrimSpace(r.Get(KeyColumn))
}

// fromRows builds a Table from a header row plus data rows. Ragged rows are
// tolerated: short rows leave trailing columns missing, extra cells are
// dropped. Returns ErrEmptyInput when no data rows exist.
func fromRows(name string, rows [][]string) (*Table, error) {
	if len(rows) < 2 {
		return nil, ErrEmptyInput
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	t := &Table{Name: name, Columns: header}
	for _, raw := range rows[1:] {
		rec := make(Record, len(header))
		for i, col := range header {
			if i < len(raw) {
				rec[col] = raw[i]
			}
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}
