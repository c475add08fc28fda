package report

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"

	"efazi/internal/rod"
)

// PreviewLimit caps how many rows the HTML preview shows.
const PreviewLimit = 10

// PreviewHTML renders the first PreviewLimit rows as a standalone HTML page,
// mirroring the report preview the original dashboard showed before download.
func PreviewHTML(records []rod.OutcomeRecord) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>ROD Report Preview</title>\n")
	sb.WriteString("<style>body{font-family:sans-serif;background:#F8FAFC}table{border-collapse:collapse}td,th{border:1px solid #CBD5E1;padding:4px 10px}th{background:#10B981;color:#fff}</style>\n")
	sb.WriteString("</head><body>\n")
	sb.WriteString(fmt.Sprintf("<h2>ROD Report Preview (%d of %d rows)</h2>\n<table>\n<tr>", min(PreviewLimit, len(records)), len(records)))
	for _, h := range Header {
		sb.WriteString("<th>" + html.EscapeString(h) + "</th>")
	}
	sb.WriteString("</tr>\n")

	for i, r := range records {
		if i == PreviewLimit {
			break
		}
		sb.WriteString("<tr>")
		for _, cell := range rowOf(r) {
			sb.WriteString("<td>" + html.EscapeString(cell) + "</td>")
		}
		sb.WriteString("</tr>\n")
	}
	sb.WriteString("</table>\n</body></html>\n")
	return sb.String()
}

// OpenPreview writes the HTML preview next to the report and opens it in the
// default browser. Failures are logged, not fatal; the report itself is
// already on disk.
func OpenPreview(reportPath string, records []rod.OutcomeRecord) {
	previewPath := strings.TrimSuffix(reportPath, filepath.Ext(reportPath)) + "_preview.html"
	if err := os.WriteFile(previewPath, []byte(PreviewHTML(records)), 0644); err != nil {
		log.Warn().Err(err).Str("path", previewPath).Msg("Failed to write preview")
		return
	}
	if err := browser.OpenFile(previewPath); err != nil {
		log.Warn().Err(err).Str("path", previewPath).Msg("Failed to open preview in browser")
	}
}
