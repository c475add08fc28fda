// Package report renders finished outcome records into the delivery formats
// the surrounding tooling hands out: CSV, XLSX, and an HTML preview.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"efazi/internal/rod"
)

// Header is the fixed output column order.
var Header = []string{"Order_ID", "Shipped_Qty", "Store_Name", "Order_to_Process", "Order_to_Delivery", "Remark", "RCA"}

// DefaultFileName is the canonical report file name.
const DefaultFileName = "Careem_ROD_Final.csv"

// WriteCSV writes the report as UTF-8 CSV with a header row, one row per
// outcome record, preserving record order.
func WriteCSV(w io.Writer, records []rod.OutcomeRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(rowOf(r)); err != nil {
			return fmt.Errorf("write row %s: %w", r.OrderID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the report as a single-sheet workbook.
func WriteXLSX(w io.Writer, records []rod.OutcomeRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range records {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{r.OrderID, r.ShippedQty, r.StoreName, r.OrderToProcess, r.OrderToDelivery, r.Remark, r.RCA}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %s: %w", r.OrderID, err)
		}
	}
	return f.Write(w)
}

func rowOf(r rod.OutcomeRecord) []string {
	return []string{
		r.OrderID,
		r.ShippedQty,
		r.StoreName,
		formatMinutes(r.OrderToProcess),
		formatMinutes(r.OrderToDelivery),
		r.Remark,
		r.RCA,
	}
}

// formatMinutes prints a metric without trailing zeros (5 rather than 5.00,
// 10.25 as-is). Metrics arrive already rounded to two decimals.
func formatMinutes(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
