// =============================================================================
// Sales Analyzer - XLSX Source Parser
// =============================================================================
//
// This module reads sales exports saved as Excel workbooks. The sheet is laid
// out like the CSV export: one header row naming the columns, then one order
// line per row.
//
//   | Order ID | Product              | Quantity Ordered | Price Each | Order Date     | Purchase Address |
//   |----------|----------------------|------------------|------------|----------------|------------------|
//   | 176558   | USB-C Charging Cable | 2                | 11.95      | 04/19/19 08:46 | 917 1st St, ...  |
//
// Cells are read as displayed text, so the rows go through the same
// validation as CSV rows.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/sales-analyzer/internal/csvparser"
	"github.com/xuri/excelize/v2"
)

// Parse reads one sheet of the workbook at path.
//
// PARAMETERS:
//   - path: The path to the .xlsx file.
//   - sheet: The sheet to read. Empty means the first sheet.
//
// RETURNS:
//   - The header and rows, in the same shape the CSV parser returns.
//   - csvparser.ErrEmptyFile if the sheet has no header row, or an error if
//     the workbook cannot be opened or the sheet does not exist.
func Parse(path, sheet string) (*csvparser.CSVData, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName, err := resolveSheet(f, sheet)
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of sheet %q: %w", sheetName, err)
	}

	data, err := csvparser.FromRows(dropBlankRows(rows))
	if err != nil {
		return nil, err
	}
	data.SourceFile = path
	return data, nil
}

// resolveSheet returns the sheet to read.
func resolveSheet(f *excelize.File, sheet string) (string, error) {
	if sheet == "" {
		name := f.GetSheetName(0)
		if name == "" {
			return "", fmt.Errorf("workbook has no sheets")
		}
		return name, nil
	}

	for _, name := range f.GetSheetList() {
		if strings.EqualFold(name, sheet) {
			return name, nil
		}
	}
	return "", fmt.Errorf("sheet %q not found (available: %s)", sheet, strings.Join(f.GetSheetList(), ", "))
}

// dropBlankRows empties rows whose cells are all whitespace, so they are
// skipped like blank lines. Row positions are kept.
func dropBlankRows(rows [][]string) [][]string {
	for i, row := range rows {
		if isRowEmpty(row) {
			rows[i] = nil
		}
	}
	return rows
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
