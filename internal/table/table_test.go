package table

import "testing"

func TestNormalizeKeysPrefersOrderIDColumn(t *testing.T) {
	tbl := &Table{
		Columns: []string{"tracking_ref", "order_id"},
		Rows: []Record{
			{"tracking_ref": "TRK-1", "order_id": "  A100  "},
		},
	}
	tbl.NormalizeKeys()

	if got := Key(tbl.Rows[0]); got != "A100" {
		t.Errorf("Expected key A100, got %q", got)
	}
}

func TestNormalizeKeysFallsBackToFirstColumn(t *testing.T) {
	tbl := &Table{
		Columns: []string{"order_number", "qty"},
		Rows: []Record{
			{"order_number": " B200\t", "qty": "3"},
		},
	}
	tbl.NormalizeKeys()

	if !tbl.HasColumn(KeyColumn) {
		t.Fatalf("Expected %s column to be added", KeyColumn)
	}
	if got := Key(tbl.Rows[0]); got != "B200" {
		t.Errorf("Expected key B200, got %q", got)
	}
	// Source column stays untouched.
	if tbl.Rows[0].Get("order_number") != " B200\t" {
		t.Errorf("Expected original column preserved, got %q", tbl.Rows[0].Get("order_number"))
	}
}

func TestNormalizeKeysKeepsDuplicates(t *testing.T) {
	tbl := &Table{
		Columns: []string{"order_id"},
		Rows: []Record{
			{"order_id": "C1"},
			{"order_id": "C1"},
		},
	}
	tbl.NormalizeKeys()

	if len(tbl.Rows) != 2 {
		t.Errorf("Expected duplicates preserved, got %d rows", len(tbl.Rows))
	}
}

func TestRecordMissingColumnDefaults(t *testing.T) {
	r := Record{"present": "x"}

	if r.Get("absent") != "" {
		t.Errorf("Expected empty default for absent column")
	}
	if r.GetOr("absent", "0") != "0" {
		t.Errorf("Expected fallback for absent column")
	}
	if r.GetOr("present", "0") != "x" {
		t.Errorf("Expected stored value for present column")
	}

	// Present-but-empty is not absent.
	r["empty"] = ""
	if r.GetOr("empty", "0") != "" {
		t.Errorf("Expected empty value, not fallback, for present column")
	}
}

func TestFromRowsRaggedRows(t *testing.T) {
	tbl, err := fromRows("ragged", [][]string{
		{"a", "b", "c"},
		{"1", "2"},
		{"3", "4", "5", "6"},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if _, ok := tbl.Rows[0]["c"]; ok {
		t.Errorf("Expected short row to leave trailing column missing")
	}
	if tbl.Rows[1].Get("c") != "5" {
		t.Errorf("Expected extra cells dropped, got %q", tbl.Rows[1].Get("c"))
	}
}
