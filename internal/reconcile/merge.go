// Package reconcile joins the three source tables into one row per base
// order, replicating spreadsheet VLOOKUP semantics: left outer join with
// fan-out on duplicate keys.
package reconcile

import (
	"github.com/rs/zerolog/log"

	"efazi/internal/table"
)

// Suffixes appended to auxiliary columns whose names collide with a column
// already present on the left side of the join. Base columns keep the bare
// name; losing either side's value would be a correctness bug.
const (
	SuffixSource1 = "_s1"
	SuffixSource2 = "_s2"
)

// MergedRow is one output row of the join: the normalized key plus the union
// of base, source-1, and source-2 columns.
type MergedRow struct {
	Key    string
	Fields table.Record
}

// Merge left-joins base against src1 then src2 on the normalized order key.
// Every base row produces at least one merged row. A key with no match in an
// auxiliary source leaves that source's columns missing; a key matching M>1
// auxiliary rows fans out into M merged rows, in auxiliary input order.
// Output order is base input order, then fan-out order. Nothing is dropped,
// reordered, or deduplicated.
func Merge(base, src1, src2 *table.Table) []MergedRow {
	base.NormalizeKeys()
	src1.NormalizeKeys()
	src2.NormalizeKeys()

	rows, cols := leftJoin(baseRows(base), base.Columns, src1, SuffixSource1)
	rows, _ = leftJoin(rows, cols, src2, SuffixSource2)

	merged := make([]MergedRow, len(rows))
	for i, r := range rows {
		merged[i] = MergedRow{Key: table.Key(r), Fields: r}
	}

	log.Debug().
		Int("base", len(base.Rows)).
		Int("source1", len(src1.Rows)).
		Int("source2", len(src2.Rows)).
		Int("merged", len(merged)).
		Msg("Reconciled sources")
	return merged
}

func baseRows(t *table.Table) []table.Record {
	rows := make([]table.Record, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = r.Clone()
	}
	return rows
}

// leftJoin merges right into every left row. Collisions are decided against
// the left column set as a whole, not per row, so a column is either renamed
// for the entire join or not at all.
func leftJoin(left []table.Record, leftCols []string, right *table.Table, suffix string) ([]table.Record, []string) {
	index := make(map[string][]table.Record, len(right.Rows))
	for _, r := range right.Rows {
		k := table.Key(r)
		index[k] = append(index[k], r)
	}

	rename := renameMap(leftCols, right.Columns, suffix)

	outCols := append([]string{}, leftCols...)
	for _, c := range right.Columns {
		if c == table.KeyColumn {
			continue
		}
		if renamed, ok := rename[c]; ok {
			outCols = append(outCols, renamed)
		} else {
			outCols = append(outCols, c)
		}
	}

	var out []table.Record
	for _, l := range left {
		matches := index[table.Key(l)]
		if len(matches) == 0 {
			out = append(out, l)
			continue
		}
		for _, m := range matches {
			row := l.Clone()
			for col, v := range m {
				if col == table.KeyColumn {
					continue
				}
				if renamed, ok := rename[col]; ok {
					row[renamed] = v
				} else {
					row[col] = v
				}
			}
			out = append(out, row)
		}
	}
	return out, outCols
}

func renameMap(leftCols, rightCols []string, suffix string) map[string]string {
	existing := make(map[string]bool, len(leftCols))
	for _, c := range leftCols {
		existing[c] = true
	}

	rename := make(map[string]string)
	for _, c := range rightCols {
		if c != table.KeyColumn && existing[c] {
			rename[c] = c + suffix
		}
	}
	return rename
}
