// =============================================================================
// Sales Analyzer - Report Command
// =============================================================================
//
// This file defines the 'report' command, which exports an analysis to the
// reports directory.
//
// COMMAND USAGE:
//   sales-analyzer report [--type summary|trends|full] [--format txt|xlsx|both]
//
// OUTPUT:
//   reports/analysis_results_summary_20240115_143022.txt
//   reports/analysis_results_summary_20240115_143022.xlsx
//
// The file name follows report_name_format from the configuration.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/ginjaninja78/sales-analyzer/internal/report"
	"github.com/spf13/cobra"
)

var (
	reportType   string
	reportFormat string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export an analysis to a text file and/or an Excel workbook",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		writeText, writeWorkbook, err := reportFormats(reportFormat)
		if err != nil {
			return err
		}

		s, err := openSession()
		if err != nil {
			return err
		}
		agg := s.aggregator()
		a := s.analysis(reportType)

		switch reportType {
		case "summary":
			a.Notes = []string{summaryRevenueNote}
			a.Summary = agg.SalesSummary()
		case "trends":
			trends := agg.SalesTrends()
			a.Trends = &trends
		case "full":
			stats := s.loader.Stats()
			a.Stats = &stats
			a.Notes = []string{summaryRevenueNote}
			a.Summary = agg.SalesSummary()
			if best, err := agg.BestSellingProduct(); err == nil {
				a.Best = &best
			}
			trends := agg.SalesTrends()
			a.Trends = &trends
		default:
			return fmt.Errorf("unknown report type %q (summary, trends, full)", reportType)
		}

		exporter := report.NewExporter(appConfig.ReportsDir, appConfig.ReportNameFormat, appLog)
		out := cmd.OutOrStdout()

		if writeText {
			path, err := exporter.ExportText(a)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Report written to %s\n", path)
		}
		if writeWorkbook {
			path, err := exporter.ExportWorkbook(a)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Workbook written to %s\n", path)
		}
		return nil
	},
}

func reportFormats(format string) (text, workbook bool, err error) {
	switch format {
	case "txt":
		return true, false, nil
	case "xlsx":
		return false, true, nil
	case "both":
		return true, true, nil
	default:
		return false, false, fmt.Errorf("unknown report format %q (txt, xlsx, both)", format)
	}
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportType, "type", "full", "Analysis to export: summary, trends or full")
	reportCmd.Flags().StringVar(&reportFormat, "format", "txt", "Output format: txt, xlsx or both")
}
