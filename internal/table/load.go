package table

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// xlsxMagic is the ZIP local-file-header signature; XLSX files are ZIP
// containers.
var xlsxMagic = []byte{0x50, 0x4B, 0x03, 0x04}

// Load parses a tabular blob into a Table. The format is taken from the file
// extension when it is conclusive, otherwise sniffed from the content.
// Returns ErrUnsupportedFormat for anything that is neither delimited text
// nor a spreadsheet, and ErrEmptyInput for a table with a header but no data
// rows (policy: empty sources are rejected up front rather than producing a
// silent zero-row report).
func Load(name string, data []byte) (*Table, error) {
	var t *Table
	var err error

	switch detectFormat(name, data) {
	case formatCSV:
		t, err = ReadCSV(name, bytes.NewReader(data))
	case formatXLSX:
		t, err = ReadXLSX(name, bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%s: %w", name, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, err
	}

	log.Debug().Str("source", name).Int("rows", len(t.Rows)).Int("columns", len(t.Columns)).Msg("Loaded source table")
	return t, nil
}

type format int

const (
	formatUnknown format = iota
	formatCSV
	formatXLSX
)

func detectFormat(name string, data []byte) format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".tsv", ".txt":
		return formatCSV
	case ".xlsx", ".xlsm":
		return formatXLSX
	}

	if bytes.HasPrefix(data, xlsxMagic) {
		return formatXLSX
	}
	if looksDelimited(data) {
		return formatCSV
	}
	return formatUnknown
}

// looksDelimited accepts content whose first line is printable text carrying
// a common field delimiter.
func looksDelimited(data []byte) bool {
	line, _, _ := bytes.Cut(data, []byte("\n"))
	if len(line) == 0 {
		return false
	}
	for _, b := range line {
		if b < 0x09 || (b > 0x0D && b < 0x20) {
			return false
		}
	}
	return bytes.ContainsAny(line, ",;\t")
}

// ReadCSV parses delimited text. Ragged rows are tolerated; quoting follows
// RFC 4180 with lenient quotes for real-world exports.
func ReadCSV(name string, r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return fromRows(name, rows)
}

// ReadXLSX parses the first sheet of a spreadsheet workbook.
func ReadXLSX(name string, r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, ErrUnsupportedFormat)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyInput)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return fromRows(name, rows)
}
