package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/partsight/insight-cli/internal/analytics"
	"github.com/partsight/insight-cli/internal/store"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full dashboard to an xlsx workbook",
	Long:  "Runs every analyzer and writes one worksheet per result table.",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := buildFilter()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		source, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer source.Close()

		engine := analytics.NewEngine(source, cfg.Analytics)
		dash, err := engine.Dashboard(ctx, filter)
		if err != nil {
			return err
		}
		for name, msg := range dash.Errors {
			zap.L().Warn("cmd: analyzer skipped in export",
				zap.String("analyzer", name),
				zap.String("reason", msg),
			)
		}

		if err := writeWorkbook(exportOut, renderSections(dash)); err != nil {
			return err
		}
		zap.L().Info("cmd: dashboard exported", zap.String("path", exportOut))
		return nil
	},
}

func writeWorkbook(path string, sections []section) error {
	f := xlsx.NewFile()
	for _, sec := range sections {
		sheet, err := f.AddSheet(sheetName(sec.Title))
		if err != nil {
			return eris.Wrapf(err, "cmd: add sheet %s", sec.Title)
		}

		header := sheet.AddRow()
		for _, h := range sec.Headers {
			header.AddCell().SetString(h)
		}
		for _, row := range sec.Rows {
			out := sheet.AddRow()
			for _, cell := range row {
				out.AddCell().SetString(cell)
			}
		}
	}
	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "cmd: save workbook %s", path)
	}
	return nil
}

// sheetName trims a section title to Excel's 31-character sheet-name cap.
func sheetName(title string) string {
	if len(title) > 31 {
		return title[:31]
	}
	return title
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "partsight.xlsx", "output workbook path")
	exportCmd.Flags().Int64Var(&analyzeInsurer, "insurer", 0, "restrict to one insurer by ID")
	exportCmd.Flags().StringVar(&analyzeStart, "start", "", "earliest order date (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&analyzeEnd, "end", "", "latest order date, inclusive (YYYY-MM-DD)")
	rootCmd.AddCommand(exportCmd)
}
