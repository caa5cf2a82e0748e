package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/beesaferoot/dorm-ledger/internal/report"
	"github.com/beesaferoot/dorm-ledger/internal/service"
)

func ReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the monthly income and utility report",
		Long:  "Aggregates invoices, payments and meter readings per month, prints the table and saves it to the report file.",
		Args:  cobra.NoArgs,
		RunE: app.run(func(cmd *cobra.Command, args []string, svc *service.Service) error {
			rows, err := svc.MonthlyReport(cmd.Context())
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := report.WriteText(&buf, rows); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if _, err := io.Copy(out, bytes.NewReader(buf.Bytes())); err != nil {
				return err
			}

			reportFile, _ := cmd.Flags().GetString("output")
			if reportFile == "" {
				reportFile = app.Config.Path(app.Config.ReportFile)
			}
			if err := os.WriteFile(reportFile, buf.Bytes(), 0644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			fmt.Fprintf(out, "Report saved to '%s'\n", reportFile)

			xlsxPath, _ := cmd.Flags().GetString("xlsx")
			if xlsxPath == "" {
				return nil
			}
			if err := writeWorkbook(xlsxPath, rows); err != nil {
				return err
			}
			app.Log.Info("report workbook written", zap.String("file", xlsxPath), zap.Int("months", len(rows)))
			fmt.Fprintf(out, "Workbook saved to '%s'\n", xlsxPath)
			return nil
		}),
	}
	cmd.Flags().StringP("output", "o", "", "Text report file (default from DORM_REPORT_FILE)")
	cmd.Flags().String("xlsx", "", "Also write the report as an Excel workbook")
	return cmd
}

func writeWorkbook(path string, rows []report.MonthRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create workbook: %w", err)
	}
	if err := report.WriteXLSX(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
