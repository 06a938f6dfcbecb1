// =============================================================================
// Sales Analyzer - Report Module
// =============================================================================
//
// This module renders analysis results. The same text rendering is used for
// the command output and for exported ".txt" reports; the workbook export
// writes one sheet per table.
//
// TEXT LAYOUT:
//
//   Sales Analysis Report
//   Generated: 2024-01-15 14:30:22
//   Analysis:  summary
//   Source:    data/sales.csv
//   ================================================================================
//
//   SALES SUMMARY
//   --------------------------------------------------------------------------------
//   Product   Total Quantity   Orders   Average Price   Revenue
//   Widget    5                2        10.00           50.00
//
// =============================================================================

package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ginjaninja78/sales-analyzer/internal/csvwriter"
	"github.com/ginjaninja78/sales-analyzer/internal/types"
)

const (
	rule     = "================================================================================"
	thinRule = "--------------------------------------------------------------------------------"
)

// =============================================================================
// ANALYSIS STRUCTURE
// =============================================================================

// Analysis holds the results to render. Nil sections are skipped.
type Analysis struct {
	// Type names the analysis ("summary", "trends", ...). It is used in the
	// report header and in exported file names.
	Type string

	// SourceFile is the file the records were loaded from.
	SourceFile string

	// GeneratedAt is printed in the header. Zero means now.
	GeneratedAt time.Time

	Stats   *types.LoadStats
	Summary []types.SummaryRow
	Best    *types.SummaryRow
	Trends  *types.Trends

	// Records is a listing such as a filter or threshold result.
	Records *types.RecordSet

	// Revenue is the line revenue over RevenueRange.
	Revenue      *float64
	RevenueRange types.DateRange

	// Notes are free lines printed after the header.
	Notes []string
}

// =============================================================================
// TEXT RENDERING
// =============================================================================

// WriteText renders a full report with header.
func WriteText(w io.Writer, a Analysis) error {
	generated := a.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	var b strings.Builder
	b.WriteString("Sales Analysis Report\n")
	fmt.Fprintf(&b, "Generated: %s\n", generated.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Analysis:  %s\n", a.Type)
	if a.SourceFile != "" {
		fmt.Fprintf(&b, "Source:    %s\n", a.SourceFile)
	}
	b.WriteString(rule + "\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	return WriteSections(w, a)
}

// WriteSections renders the non-nil sections of a without the header.
func WriteSections(w io.Writer, a Analysis) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)

	for _, note := range a.Notes {
		fmt.Fprintln(tw, note)
	}
	if a.Stats != nil {
		writeStats(tw, a.Stats)
	}
	if a.Summary != nil {
		writeSummary(tw, a.Summary)
	}
	if a.Best != nil {
		writeBest(tw, *a.Best)
	}
	if a.Trends != nil {
		writeTrends(tw, *a.Trends)
	}
	if a.Records != nil {
		writeRecords(tw, a.Records)
	}
	if a.Revenue != nil {
		writeRevenue(tw, *a.Revenue, a.RevenueRange)
	}

	return tw.Flush()
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n%s\n", title, thinRule)
}

func writeStats(w io.Writer, s *types.LoadStats) {
	section(w, "LOAD STATISTICS")
	fmt.Fprintf(w, "Rows read:\t%d\n", s.TotalRows)
	fmt.Fprintf(w, "Valid rows:\t%d\n", s.ValidRows)
	fmt.Fprintf(w, "Dropped rows:\t%d\n", s.DroppedRows)
	for _, reason := range []string{types.DropEmpty, types.DropMissingEssential, types.DropInvalidQuantity, types.DropInvalidPrice, types.DropInvalidDate} {
		if n := s.DroppedBy[reason]; n > 0 {
			fmt.Fprintf(w, "  %s:\t%d\n", reason, n)
		}
	}
}

func writeSummary(w io.Writer, rows []types.SummaryRow) {
	section(w, "SALES SUMMARY")
	if len(rows) == 0 {
		fmt.Fprintln(w, "No sales records.")
		return
	}
	fmt.Fprintln(w, "Product\tTotal Quantity\tOrders\tAverage Price\tRevenue")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n", r.Product, r.TotalQuantity, r.NumberOfOrders, Money(r.AveragePrice), Money(r.TotalRevenue))
	}
}

func writeBest(w io.Writer, r types.SummaryRow) {
	section(w, "BEST-SELLING PRODUCT")
	fmt.Fprintf(w, "Product:\t%s\n", r.Product)
	fmt.Fprintf(w, "Total quantity:\t%d\n", r.TotalQuantity)
	fmt.Fprintf(w, "Orders:\t%d\n", r.NumberOfOrders)
	fmt.Fprintf(w, "Average price:\t%s\n", Money(r.AveragePrice))
	fmt.Fprintf(w, "Revenue:\t%s\n", Money(r.TotalRevenue))
}

func writeTrends(w io.Writer, t types.Trends) {
	section(w, "MONTHLY TRENDS")
	fmt.Fprintln(w, "Year\tMonth\tOrders\tQuantity\tRevenue")
	for _, m := range t.Monthly {
		fmt.Fprintf(w, "%d\t%02d\t%d\t%d\t%s\n", m.Year, m.Month, m.NumberOfOrders, m.TotalQuantity, Money(m.TotalRevenue))
	}

	section(w, "HOURLY TRENDS")
	fmt.Fprintln(w, "Hour\tOrders\tQuantity\tRevenue")
	for _, h := range t.Hourly {
		fmt.Fprintf(w, "%02d:00\t%d\t%d\t%s\n", h.Hour, h.NumberOfOrders, h.TotalQuantity, Money(h.TotalRevenue))
	}
	if peak, ok := t.PeakHour(); ok {
		fmt.Fprintf(w, "Peak hour:\t%02d:00 (%d orders)\n", peak.Hour, peak.NumberOfOrders)
	}

	section(w, "TOP PRODUCT PER MONTH")
	fmt.Fprintln(w, "Year\tMonth\tProduct\tQuantity\tRevenue")
	for _, pm := range t.MonthlyLeaders() {
		fmt.Fprintf(w, "%d\t%02d\t%s\t%d\t%s\n", pm.Year, pm.Month, pm.Product, pm.TotalQuantity, Money(pm.TotalRevenue))
	}
}

func writeRecords(w io.Writer, set *types.RecordSet) {
	section(w, fmt.Sprintf("RECORDS (%d)", set.Len()))
	if set.Len() == 0 {
		fmt.Fprintln(w, "No matching records.")
		return
	}
	fmt.Fprintln(w, strings.Join(set.Columns.Header(), "\t"))
	for _, r := range set.Records {
		fmt.Fprintln(w, strings.Join(csvwriter.FormatRecord(r), "\t"))
	}
}

func writeRevenue(w io.Writer, revenue float64, r types.DateRange) {
	section(w, "TOTAL REVENUE")
	fmt.Fprintf(w, "From:\t%s\n", bound(r.Start))
	fmt.Fprintf(w, "To:\t%s\n", bound(r.End))
	fmt.Fprintf(w, "Revenue:\t%s\n", Money(revenue))
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// Money formats an amount with two decimals.
func Money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func bound(t *time.Time) string {
	if t == nil {
		return "(open)"
	}
	return t.Format(csvwriter.DateLayout)
}
