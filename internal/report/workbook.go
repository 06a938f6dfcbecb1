// =============================================================================
// Sales Analyzer - Workbook Builder
// =============================================================================
//
// Builds an Excel workbook with one sheet per table of an analysis:
// Summary, Monthly, Hourly, ProductMonthly and Records.
//
// =============================================================================

package report

import (
	"fmt"

	"github.com/ginjaninja78/sales-analyzer/internal/csvwriter"
	"github.com/xuri/excelize/v2"
)

// Sheet names used by BuildWorkbook.
const (
	SheetSummary        = "Summary"
	SheetMonthly        = "Monthly"
	SheetHourly         = "Hourly"
	SheetProductMonthly = "ProductMonthly"
	SheetRecords        = "Records"
)

// BuildWorkbook builds an XLSX workbook with one sheet per non-nil table of a.
// The caller must Close the returned file.
func BuildWorkbook(a Analysis) (*excelize.File, error) {
	f := excelize.NewFile()
	defaultSheet := f.GetSheetName(0)

	var sheets []string
	add := func(name string, header []string, rows [][]interface{}) error {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
		if err := writeSheet(f, name, header, rows); err != nil {
			return err
		}
		sheets = append(sheets, name)
		return nil
	}

	if a.Summary != nil {
		rows := make([][]interface{}, 0, len(a.Summary))
		for _, r := range a.Summary {
			rows = append(rows, []interface{}{r.Product, r.TotalQuantity, r.NumberOfOrders, r.AveragePrice, r.TotalRevenue})
		}
		if err := add(SheetSummary, []string{"Product", "Total Quantity", "Number of Orders", "Average Price", "Total Revenue"}, rows); err != nil {
			f.Close()
			return nil, err
		}
	}

	if a.Trends != nil {
		monthly := make([][]interface{}, 0, len(a.Trends.Monthly))
		for _, m := range a.Trends.Monthly {
			monthly = append(monthly, []interface{}{m.Year, m.Month, m.NumberOfOrders, m.TotalQuantity, m.TotalRevenue})
		}
		hourly := make([][]interface{}, 0, len(a.Trends.Hourly))
		for _, h := range a.Trends.Hourly {
			hourly = append(hourly, []interface{}{h.Hour, h.NumberOfOrders, h.TotalQuantity, h.TotalRevenue})
		}
		productMonthly := make([][]interface{}, 0, len(a.Trends.ProductMonthly))
		for _, pm := range a.Trends.ProductMonthly {
			productMonthly = append(productMonthly, []interface{}{pm.Year, pm.Month, pm.Product, pm.TotalQuantity, pm.TotalRevenue})
		}

		err := add(SheetMonthly, []string{"Year", "Month", "Number of Orders", "Total Quantity", "Total Revenue"}, monthly)
		if err == nil {
			err = add(SheetHourly, []string{"Hour", "Number of Orders", "Total Quantity", "Total Revenue"}, hourly)
		}
		if err == nil {
			err = add(SheetProductMonthly, []string{"Year", "Month", "Product", "Total Quantity", "Total Revenue"}, productMonthly)
		}
		if err != nil {
			f.Close()
			return nil, err
		}
	}

	if a.Records != nil {
		rows := make([][]interface{}, 0, a.Records.Len())
		for _, r := range a.Records.Records {
			rows = append(rows, []interface{}{r.OrderID, r.Product, r.Quantity, r.UnitPrice, csvwriter.FormatDate(r.OrderDate), r.PurchaseAddress})
		}
		if err := add(SheetRecords, a.Records.Columns.Header(), rows); err != nil {
			f.Close()
			return nil, err
		}
	}

	// Drop the default "Sheet1" once there is something else to show.
	if len(sheets) > 0 {
		if idx, err := f.GetSheetIndex(sheets[0]); err == nil {
			f.SetActiveSheet(idx)
		}
		if err := f.DeleteSheet(defaultSheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to remove default sheet: %w", err)
		}
	}

	return f, nil
}

// writeSheet writes a bold header row followed by rows, starting at A1.
func writeSheet(f *excelize.File, sheet string, header []string, rows [][]interface{}) error {
	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", sheet, err)
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(header), 1)
		_ = f.SetCellStyle(sheet, "A1", last, style)
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+2, sheet, err)
		}
	}

	return nil
}
