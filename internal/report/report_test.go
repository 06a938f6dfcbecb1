package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ginjaninja78/sales-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var generated = time.Date(2024, 1, 15, 14, 30, 22, 0, time.UTC)

func sampleAnalysis() Analysis {
	best := types.SummaryRow{Product: "Widget", TotalQuantity: 5, NumberOfOrders: 2, AveragePrice: 10, TotalRevenue: 50}
	return Analysis{
		Type:        "full",
		SourceFile:  "data/sales.csv",
		GeneratedAt: generated,
		Summary:     []types.SummaryRow{best, {Product: "Gadget", TotalQuantity: 1, NumberOfOrders: 1, AveragePrice: 4.5, TotalRevenue: 4.5}},
		Best:        &best,
		Trends: &types.Trends{
			Monthly:        []types.MonthlyTrend{{Year: 2024, Month: 1, NumberOfOrders: 3, TotalQuantity: 6, TotalRevenue: 54.5}},
			Hourly:         []types.HourlyTrend{{Hour: 9, NumberOfOrders: 1, TotalQuantity: 1, TotalRevenue: 4.5}, {Hour: 10, NumberOfOrders: 2, TotalQuantity: 5, TotalRevenue: 50}},
			ProductMonthly: []types.ProductMonthlyTrend{{Year: 2024, Month: 1, Product: "Gadget", TotalQuantity: 1, TotalRevenue: 4.5}, {Year: 2024, Month: 1, Product: "Widget", TotalQuantity: 5, TotalRevenue: 50}},
		},
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleAnalysis()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Sales Analysis Report\nGenerated: 2024-01-15 14:30:22\nAnalysis:  full\nSource:    data/sales.csv\n"))
	assert.Contains(t, out, "SALES SUMMARY")
	assert.Regexp(t, `Widget\s+5\s+2\s+10\.00\s+50\.00`, out)
	assert.Contains(t, out, "BEST-SELLING PRODUCT")
	assert.Contains(t, out, "MONTHLY TRENDS")
	assert.Regexp(t, `Peak hour:\s+10:00 \(2 orders\)`, out)
	assert.Regexp(t, `2024\s+01\s+Widget\s+5\s+50\.00`, out)
	assert.NotContains(t, out, "TOTAL REVENUE")
}

func TestWriteSectionsRecordsAndRevenue(t *testing.T) {
	set := types.NewRecordSet(types.DefaultColumns(), []types.Record{{
		OrderID: "A1", Product: "Widget", Quantity: 3, UnitPrice: 10,
		OrderDate: time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC), PurchaseAddress: "x",
	}})
	revenue := 30.0
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, WriteSections(&buf, Analysis{
		Records:      set,
		Revenue:      &revenue,
		RevenueRange: types.DateRange{Start: &start},
		Stats:        &types.LoadStats{TotalRows: 3, ValidRows: 1, DroppedRows: 2, DroppedBy: map[string]int{types.DropInvalidDate: 2}},
	}))
	out := buf.String()

	assert.Contains(t, out, "RECORDS (1)")
	assert.Regexp(t, `A1\s+Widget\s+3\s+10\s+2024-01-05 10:00:00\s+x`, out)
	assert.Regexp(t, `From:\s+2024-01-01 00:00:00`, out)
	assert.Regexp(t, `To:\s+\(open\)`, out)
	assert.Regexp(t, `Revenue:\s+30\.00`, out)
	assert.Regexp(t, `invalid_date:\s+2`, out)
	assert.NotContains(t, out, "Sales Analysis Report")
}

func TestWriteSectionsEmptyListing(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSections(&buf, Analysis{Records: types.NewRecordSet(types.DefaultColumns(), nil), Summary: []types.SummaryRow{}}))
	assert.Contains(t, buf.String(), "No matching records.")
	assert.Contains(t, buf.String(), "No sales records.")
}

func TestBuildWorkbook(t *testing.T) {
	f, err := BuildWorkbook(sampleAnalysis())
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetMonthly, SheetHourly, SheetProductMonthly}, f.GetSheetList())

	rows, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Product", rows[0][0])
	assert.Equal(t, []string{"Widget", "5", "2", "10", "50"}, rows[1])

	rows, err = f.GetRows(SheetHourly)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestExporter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	exporter := NewExporter(dir, "{original}_{type}", nil)

	path, err := exporter.ExportText(sampleAnalysis())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sales_full.txt"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "SALES SUMMARY")

	path, err = exporter.ExportWorkbook(sampleAnalysis())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sales_full.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), SheetProductMonthly)
}

func TestExporterDefaultName(t *testing.T) {
	dir := t.TempDir()
	path, err := NewExporter(dir, "", nil).ExportText(Analysis{Type: "summary", GeneratedAt: generated})
	require.NoError(t, err)
	assert.Regexp(t, `analysis_results_summary_\d{8}_\d{6}\.txt$`, filepath.Base(path))
}
