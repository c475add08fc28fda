package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"efazi/internal/report"
	"efazi/internal/rod"
	"efazi/internal/table"
)

var (
	runBaseFile    string
	runSource1File string
	runSource2File string
	runOutFile     string
	runFormat      string
	runOpenPreview bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build the ROD report from three export files",
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := loadTable(runBaseFile)
		if err != nil {
			return err
		}
		src1, err := loadTable(runSource1File)
		if err != nil {
			return err
		}
		src2, err := loadTable(runSource2File)
		if err != nil {
			return err
		}

		pipeline := rod.NewPipeline(cfg.Thresholds)

		// Sized off the base rows; aux fan-out can overflow the bar slightly.
		bar := progressbar.Default(int64(len(base.Rows)), "classifying")
		records, err := pipeline.Run(cmd.Context(), base, src1, src2, func() {
			_ = bar.Add(1)
		})
		if err != nil {
			return err
		}
		_ = bar.Finish()

		out := runOutFile
		if out == "" {
			name := report.DefaultFileName
			if runFormat == "xlsx" {
				name = "Careem_ROD_Final.xlsx"
			}
			out = filepath.Join(cfg.DataPath, name)
		}

		if err := writeReport(out, runFormat, records); err != nil {
			return err
		}
		log.Info().Str("path", out).Int("rows", len(records)).Msg("Report written")
		summarize(records)

		if runOpenPreview {
			report.OpenPreview(out, records)
		}
		return nil
	},
}

func loadTable(path string) (*table.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return table.Load(filepath.Base(path), data)
}

func writeReport(path, format string, records []rod.OutcomeRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	switch format {
	case "csv":
		return report.WriteCSV(f, records)
	case "xlsx":
		return report.WriteXLSX(f, records)
	default:
		return fmt.Errorf("unknown output format %q (want csv or xlsx)", format)
	}
}

// summarize logs the remark distribution so a batch run is auditable from
// the console alone.
func summarize(records []rod.OutcomeRecord) {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Remark]++
	}
	ev := log.Info()
	for remark, n := range counts {
		ev = ev.Int(remark, n)
	}
	ev.Msg("Remark distribution")
}

func init() {
	runCmd.Flags().StringVar(&runBaseFile, "base", "", "base rider sheet (csv/xlsx)")
	runCmd.Flags().StringVar(&runSource1File, "source1", "", "tracking & dates export (csv/xlsx)")
	runCmd.Flags().StringVar(&runSource2File, "source2", "", "shipped qty & stores export (csv/xlsx)")
	runCmd.Flags().StringVarP(&runOutFile, "out", "o", "", "output path (default: DATA_PATH/"+report.DefaultFileName+")")
	runCmd.Flags().StringVar(&runFormat, "format", "csv", "output format: csv or xlsx")
	runCmd.Flags().BoolVar(&runOpenPreview, "open", false, "open an HTML preview of the report in the browser")
	_ = runCmd.MarkFlagRequired("base")
	_ = runCmd.MarkFlagRequired("source1")
	_ = runCmd.MarkFlagRequired("source2")
	rootCmd.AddCommand(runCmd)
}
