package bot

import (
	"bytes"

	"github.com/xuri/excelize/v2"

	"efazi/internal/geo"
)

// areaWorkbook packages the area distance rows as a single-sheet workbook.
func areaWorkbook(rows []geo.AreaDistance) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := []interface{}{"Area", "Lat", "Lon", "KM_from_Nakheel"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{r.Area, r.Lat, r.Lon, r.KM}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
