package table

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestLoadCSVPreservesOrder(t *testing.T) {
	data := []byte("order_id,store\nA1,North\nA2,South\nA3,East\n")

	tbl, err := Load("orders.csv", data)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(tbl.Rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(tbl.Rows))
	}
	for i, want := range []string{"A1", "A2", "A3"} {
		if got := tbl.Rows[i].Get("order_id"); got != want {
			t.Errorf("Row %d: expected %s, got %s", i, want, got)
		}
	}
	if tbl.Columns[0] != "order_id" || tbl.Columns[1] != "store" {
		t.Errorf("Expected column order preserved, got %v", tbl.Columns)
	}
}

func TestLoadEmptyInput(t *testing.T) {
	// Policy: a header with zero data rows is rejected up front rather than
	// flowing an empty table downstream.
	_, err := Load("orders.csv", []byte("order_id,store\n"))
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput, got %v", err)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := Load("orders.bin", []byte{0x00, 0x01, 0x02, 0xFF})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoadSniffsDelimitedWithoutExtension(t *testing.T) {
	tbl, err := Load("export", []byte("order_id,qty\nZ1,2\n"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if tbl.Rows[0].Get("qty") != "2" {
		t.Errorf("Expected sniffed CSV to parse, got %v", tbl.Rows[0])
	}
}

func TestLoadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"order_id", "shipped_qty", "store_name"},
		{"X1", 4, "Nakheel Mall Store"},
		{"X2", 1, "Corniche Store"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("Failed to build workbook: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Failed to serialize workbook: %v", err)
	}

	// No extension: the ZIP magic decides.
	tbl, err := Load("upload", buf.Bytes())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(tbl.Rows))
	}
	if tbl.Rows[0].Get("store_name") != "Nakheel Mall Store" {
		t.Errorf("Unexpected first row: %v", tbl.Rows[0])
	}
	if tbl.Rows[1].Get("shipped_qty") != "1" {
		t.Errorf("Expected numeric cell stringified, got %q", tbl.Rows[1].Get("shipped_qty"))
	}
}
