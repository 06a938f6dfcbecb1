package xlsxparser

import (
	"path/filepath"
	"testing"

	"github.com/ginjaninja78/sales-analyzer/internal/csvparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook saves a workbook with the given sheets and returns its path.
// Each sheet's rows are written from A1; a nil row leaves that row blank.
func writeWorkbook(t *testing.T, sheets map[string][][]string, order []string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for _, name := range order {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
		for i, row := range sheets[name] {
			if row == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			values := make([]interface{}, len(row))
			for j, v := range row {
				values[j] = v
			}
			require.NoError(t, f.SetSheetRow(name, cell, &values))
		}
	}
	require.NoError(t, f.DeleteSheet("Sheet1"))

	path := filepath.Join(t.TempDir(), "sales.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParseFirstSheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]string{
		"April": {
			{"Order ID", "Product", "Quantity Ordered"},
			{"176558", "USB-C Charging Cable", "2"},
			nil,
			{"176559", "Bose SoundSport Headphones", "1"},
		},
		"May": {
			{"Order ID"},
		},
	}, []string{"April", "May"})

	data, err := Parse(path, "")
	require.NoError(t, err)

	assert.Equal(t, path, data.SourceFile)
	assert.Equal(t, []string{"Order ID", "Product", "Quantity Ordered"}, data.Headers)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, []string{"176558", "USB-C Charging Cable", "2"}, data.Rows[0].Values)
	assert.Equal(t, 2, data.Rows[0].Line)
	assert.Equal(t, 4, data.Rows[1].Line)
}

func TestParseNamedSheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]string{
		"April": {{"a"}, {"1"}},
		"May":   {{"b"}, {"2"}, {"3"}},
	}, []string{"April", "May"})

	data, err := Parse(path, "may")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, data.Headers)
	assert.Len(t, data.Rows, 2)

	_, err = Parse(path, "June")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `sheet "June" not found`)
}

func TestParseEmptySheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]string{"Empty": {}}, []string{"Empty"})

	_, err := Parse(path, "")
	assert.ErrorIs(t, err, csvparser.ErrEmptyFile)
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.xlsx"), "")
	assert.Error(t, err)
}
