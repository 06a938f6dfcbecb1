package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ginjaninja78/sales-analyzer/internal/apperr"
	"github.com/ginjaninja78/sales-analyzer/internal/config"
	"github.com/ginjaninja78/sales-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const header = "Order ID,Product,Quantity Ordered,Price Each,Order Date,Purchase Address\n"

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newLoader(t *testing.T) *Loader {
	t.Helper()
	l, err := New(config.Default(), nil)
	require.NoError(t, err)
	return l
}

func TestLoadValidFile(t *testing.T) {
	path := writeCSV(t, header+
		"A1,Widget,3,10.0,2024-01-05 10:00,1 Main St\n"+
		"\n"+
		"A2,Widget,2,10.0,01/06/24 09:30,\n")

	l := newLoader(t)
	set, err := l.Load(path)
	require.NoError(t, err)

	require.Equal(t, 2, set.Len())
	assert.Equal(t, types.DefaultColumns(), set.Columns)

	first, _ := set.At(0)
	assert.Equal(t, types.Record{
		OrderID:         "A1",
		Product:         "Widget",
		Quantity:        3,
		UnitPrice:       10,
		OrderDate:       time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC),
		PurchaseAddress: "1 Main St",
	}, first)

	second, _ := set.At(1)
	assert.Equal(t, time.Date(2024, 1, 6, 9, 30, 0, 0, time.UTC), second.OrderDate)
	assert.Equal(t, "Unknown", second.PurchaseAddress)

	stats := l.Stats()
	assert.Equal(t, 2, stats.TotalRows)
	assert.Equal(t, 2, stats.ValidRows)
	assert.Equal(t, 0, stats.DroppedRows)
}

func TestLoadDropsInvalidRows(t *testing.T) {
	path := writeCSV(t, header+
		"A1,Widget,3,10.0,2024-01-05 10:00,1 Main St\n"+
		",,,,,\n"+
		"A2,,2,10.0,2024-01-05 10:00,1 Main St\n"+
		"A3,Widget,two,10.0,2024-01-05 10:00,1 Main St\n"+
		"A4,Widget,2,free,2024-01-05 10:00,1 Main St\n"+
		"A5,Widget,2,10.0,someday,1 Main St\n"+
		"A6,Widget,0,10.0,2024-01-05 10:00,1 Main St\n"+
		"A7,Gadget,1.0,5.5,2024-01-05 11:00,NULL\n")

	l := newLoader(t)
	set, err := l.Load(path)
	require.NoError(t, err)

	ids := []string{}
	for _, r := range set.Records {
		ids = append(ids, r.OrderID)
	}
	assert.Equal(t, []string{"A1", "A7"}, ids)

	stats := l.Stats()
	assert.Equal(t, 8, stats.TotalRows)
	assert.Equal(t, 2, stats.ValidRows)
	assert.Equal(t, 6, stats.DroppedRows)
	assert.Equal(t, stats.TotalRows, stats.ValidRows+stats.DroppedRows)
	assert.Equal(t, map[string]int{
		types.DropEmpty:            1,
		types.DropMissingEssential: 1,
		types.DropInvalidQuantity:  2,
		types.DropInvalidPrice:     1,
		types.DropInvalidDate:      1,
	}, stats.DroppedBy)
}

func TestLoadWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	rows := [][]interface{}{
		{"Order ID", "Product", "Quantity Ordered", "Price Each", "Order Date", "Purchase Address"},
		{"A1", "Widget", "3", "10.0", "2024-01-05 10:00", "1 Main St"},
		{"A2", "Widget", "abc", "10.0", "2024-01-05 11:00", ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	path := filepath.Join(t.TempDir(), "sales.xlsx")
	require.NoError(t, f.SaveAs(path))

	l := newLoader(t)
	set, err := l.Load(path)
	require.NoError(t, err)

	require.Equal(t, 1, set.Len())
	first, _ := set.At(0)
	assert.Equal(t, "A1", first.OrderID)
	assert.Equal(t, 3, first.Quantity)
	assert.Equal(t, 1, l.Stats().DroppedBy[types.DropInvalidQuantity])
}

func TestLoadMissingFile(t *testing.T) {
	l := newLoader(t)
	_, err := l.Load(filepath.Join(t.TempDir(), "nope.csv"))
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestLoadMissingColumn(t *testing.T) {
	bodies := []string{
		"",
		"A1,Widget,3,10.0,2024-01-05 10:00\n",
		"A1,Widget,3,10.0,2024-01-05 10:00\nA2,Widget,3,10.0,2024-01-05 10:00\n",
	}

	for _, body := range bodies {
		path := writeCSV(t, "Order ID,Product,Quantity Ordered,Price Each,Order Date\n"+body)
		l := newLoader(t)
		_, err := l.Load(path)
		require.Error(t, err)
		assert.Equal(t, apperr.CodeSchema, apperr.CodeOf(err))
		assert.Contains(t, err.Error(), "Purchase Address")
	}
}

func TestLoadEmptyFileIsSchemaError(t *testing.T) {
	l := newLoader(t)
	_, err := l.Load(writeCSV(t, ""))
	assert.True(t, errors.Is(err, apperr.ErrSchema))
}

func TestFailedLoadKeepsPreviousSet(t *testing.T) {
	l := newLoader(t)
	set, err := l.Load(writeCSV(t, header+"A1,Widget,3,10.0,2024-01-05 10:00,x\n"))
	require.NoError(t, err)

	_, err = l.Load(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)

	held, err := l.Records()
	require.NoError(t, err)
	assert.Same(t, set, held)
}

func TestLoadAppliesTransformationRules(t *testing.T) {
	cfg := config.Default()
	cfg.TransformationRules = []config.TransformationRule{
		{Field: "Product", Actions: []config.TransformationAction{
			{Type: "lowercase"},
			{Type: "lookup", LookupTable: map[string]string{"widget": "Widget"}},
		}},
	}
	l, err := New(cfg, nil)
	require.NoError(t, err)

	_, err = l.Load(writeCSV(t, header+
		"A1,WIDGET,3,10.0,2024-01-05 10:00,x\n"+
		"A2,widget,2,10.0,2024-01-06 10:00,x\n"))
	require.NoError(t, err)

	products, err := l.UniqueProducts()
	require.NoError(t, err)
	assert.Equal(t, []string{"Widget"}, products)
}

func TestTransformationRulesKeepMissingEssentials(t *testing.T) {
	cfg := config.Default()
	cfg.TransformationRules = []config.TransformationRule{
		{Field: "Product", Actions: []config.TransformationAction{{Type: "uppercase"}}},
	}
	l, err := New(cfg, nil)
	require.NoError(t, err)

	set, err := l.Load(writeCSV(t, header+
		"A1,nan,1,2.5,2024-01-05 10:00,x\n"+
		"A2,widget,1,2.5,2024-01-05 11:00,x\n"))
	require.NoError(t, err)

	require.Equal(t, 1, set.Len())
	kept, _ := set.At(0)
	assert.Equal(t, "WIDGET", kept.Product)
	assert.Equal(t, 1, l.Stats().DroppedBy[types.DropMissingEssential])
}

func TestNewRejectsBadRules(t *testing.T) {
	cfg := config.Default()
	cfg.TransformationRules = []config.TransformationRule{
		{Field: "Product", Actions: []config.TransformationAction{{Type: "nope"}}},
	}
	_, err := New(cfg, nil)
	assert.True(t, errors.Is(err, apperr.ErrConfig))
}

func TestLoadCustomColumns(t *testing.T) {
	cfg := config.Default()
	cfg.Columns.OrderID = "Order Number"
	cfg.CSVSettings.Delimiter = ";"
	l, err := New(cfg, nil)
	require.NoError(t, err)

	set, err := l.Load(writeCSV(t,
		"Order Number;Product;Quantity Ordered;Price Each;Order Date;Purchase Address\n"+
			"Z9;Widget;1;2.5;2024-01-05;x\n"))
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())
	assert.Equal(t, "Z9", set.Records[0].OrderID)
	assert.Equal(t, "Order Number", set.Columns.OrderID)
}

func TestViewsBeforeLoad(t *testing.T) {
	l := newLoader(t)

	_, err := l.Records()
	assert.True(t, errors.Is(err, apperr.ErrNotLoaded))
	_, err = l.UniqueProducts()
	assert.True(t, errors.Is(err, apperr.ErrNotLoaded))
	_, err = l.FilterByDate("2024-01-05")
	assert.True(t, errors.Is(err, apperr.ErrNotLoaded))
	_, err = l.FilterByProduct("Widget")
	assert.True(t, errors.Is(err, apperr.ErrNotLoaded))
	_, err = l.EntriesByOrderID("A1")
	assert.True(t, errors.Is(err, apperr.ErrNotLoaded))
}

func loadSample(t *testing.T) *Loader {
	t.Helper()
	l := newLoader(t)
	_, err := l.Load(writeCSV(t, header+
		"A1,Widget,3,10.0,2024-01-05 10:00,x\n"+
		"A2,Widget,2,10.0,2024-01-06 12:00,x\n"+
		"A2,Gadget,1,4.5,2024-01-06 12:00,x\n"+
		"A3,Gizmo,4,1.25,2024-01-07 23:59,x\n"))
	require.NoError(t, err)
	return l
}

func TestUniqueProducts(t *testing.T) {
	products, err := loadSample(t).UniqueProducts()
	require.NoError(t, err)
	assert.Equal(t, []string{"Widget", "Gadget", "Gizmo"}, products)
}

func TestFilterByDate(t *testing.T) {
	l := loadSample(t)

	set, err := l.FilterByDate("2024-01-05")
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())
	assert.Equal(t, "A1", set.Records[0].OrderID)

	set, err = l.FilterByDate("2024-01-06")
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())

	set, err = l.FilterByDate("2023-12-31")
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())

	_, err = l.FilterByDate("not-a-date")
	assert.True(t, errors.Is(err, apperr.ErrInvalidDate))
}

func TestFilterResultIsDetached(t *testing.T) {
	l := loadSample(t)

	set, err := l.FilterByProduct("Widget")
	require.NoError(t, err)
	require.Equal(t, 2, set.Len())
	set.Records[0].Quantity = 99

	held, err := l.Records()
	require.NoError(t, err)
	assert.Equal(t, 3, held.Records[0].Quantity)
}

func TestEntriesByOrderID(t *testing.T) {
	l := loadSample(t)

	entries, err := l.EntriesByOrderID("A2")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Index)
	assert.Equal(t, "Widget", entries[0].Record.Product)
	assert.Equal(t, 2, entries[1].Index)
	assert.Equal(t, "Gadget", entries[1].Record.Product)

	entries, err = l.EntriesByOrderID("missing")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
