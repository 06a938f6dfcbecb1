package csvwriter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ginjaninja78/sales-analyzer/internal/config"
	"github.com/ginjaninja78/sales-analyzer/internal/csvparser"
	"github.com/ginjaninja78/sales-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSet() *types.RecordSet {
	return types.NewRecordSet(types.DefaultColumns(), []types.Record{
		{
			OrderID:         "A1",
			Product:         "Widget",
			Quantity:        3,
			UnitPrice:       10,
			OrderDate:       time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC),
			PurchaseAddress: "1 Main St, Springfield",
		},
		{
			OrderID:         "A2",
			Product:         "Gadget",
			Quantity:        1,
			UnitPrice:       11.95,
			OrderDate:       time.Date(2024, 1, 6, 9, 30, 15, 0, time.UTC),
			PurchaseAddress: "Unknown",
		},
	})
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(",").Write(&buf, sampleSet()))

	expected := "Order ID,Product,Quantity Ordered,Price Each,Order Date,Purchase Address\n" +
		"A1,Widget,3,10,2024-01-05 10:00:00,\"1 Main St, Springfield\"\n" +
		"A2,Gadget,1,11.95,2024-01-06 09:30:15,Unknown\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteDelimiterAndColumns(t *testing.T) {
	set := sampleSet()
	set.Columns.OrderID = "Order Number"
	set.Records = set.Records[:1]

	var buf bytes.Buffer
	require.NoError(t, New(";").Write(&buf, set))
	assert.Equal(t,
		"Order Number;Product;Quantity Ordered;Price Each;Order Date;Purchase Address\n"+
			"A1;Widget;3;10;2024-01-05 10:00:00;1 Main St, Springfield\n",
		buf.String())
}

func TestWriteEmptySet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(",").Write(&buf, types.NewRecordSet(types.DefaultColumns(), nil)))
	assert.Equal(t, "Order ID,Product,Quantity Ordered,Price Each,Order Date,Purchase Address\n", buf.String())
}

func TestWriteFileReadsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, New(",").WriteFile(path, sampleSet()))

	data, err := csvparser.Parse(path, config.Default().CSVSettings)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultColumns().Header(), data.Headers)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, "1 Main St, Springfield", data.Rows[0].Values[5])
	assert.Equal(t, "11.95", data.Rows[1].Values[3])
}

func TestWriteFileMissingDir(t *testing.T) {
	err := New(",").WriteFile(filepath.Join(t.TempDir(), "missing", "out.csv"), sampleSet())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"utc whole second", time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC), "2024-01-05 10:00:00"},
		{"utc fraction", time.Date(2024, 1, 5, 10, 0, 0, 500000000, time.UTC), "2024-01-05 10:00:00.5Z"},
		{"offset", time.Date(2024, 1, 5, 23, 30, 0, 0, time.FixedZone("", -5*3600)), "2024-01-05 23:30:00-05:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(tt.in))
		})
	}
}
