// =============================================================================
// Sales Analyzer - CSV Writer Module
// =============================================================================
//
// This module writes a record set back to delimited text, in the same column
// layout it was loaded from, so a saved file can be loaded again.
//
// OUTPUT FORMAT:
//
//   Order ID,Product,Quantity Ordered,Price Each,Order Date,Purchase Address
//   A1,Widget,3,10,2024-01-05 10:00:00,1 Main St
//
//   - Header: the record set's configured column names
//   - Quantity: integer
//   - Price: shortest representation that parses back to the same value
//   - Order date: "2006-01-02 15:04:05" for whole-second UTC times,
//     "2006-01-02 15:04:05.999999999-07:00" otherwise
//
// =============================================================================

package csvwriter

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/ginjaninja78/sales-analyzer/internal/csvparser"
	"github.com/ginjaninja78/sales-analyzer/internal/types"
)

// DateLayout is the layout used for whole-second UTC order dates.
const DateLayout = "2006-01-02 15:04:05"

// OffsetDateLayout keeps the offset and fractional seconds of any other
// order date, so a saved file reloads to the same instants.
const OffsetDateLayout = "2006-01-02 15:04:05.999999999Z07:00"

// =============================================================================
// WRITER
// =============================================================================

// Writer writes record sets as delimited text.
type Writer struct {
	comma rune
}

// New creates a Writer for the given delimiter setting (see
// csvparser.Delimiter).
func New(delimiter string) *Writer {
	return &Writer{comma: csvparser.Delimiter(delimiter)}
}

// WriteFile writes set to path, replacing any existing file.
//
// RETURNS:
//   - An error if the file cannot be created or written.
func (w *Writer) WriteFile(path string, set *types.RecordSet) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, closeErr)
		}
	}()

	buffered := bufio.NewWriter(file)
	if err := w.Write(buffered, set); err != nil {
		return err
	}
	if err := buffered.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}

// Write writes the header and every record of set to out.
func (w *Writer) Write(out io.Writer, set *types.RecordSet) error {
	csvWriter := csv.NewWriter(out)
	csvWriter.Comma = w.comma

	columns := types.DefaultColumns()
	if set != nil {
		columns = set.Columns
	}
	if err := csvWriter.Write(columns.Header()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if set != nil {
		for i, r := range set.Records {
			if err := csvWriter.Write(FormatRecord(r)); err != nil {
				return fmt.Errorf("failed to write record %d: %w", i, err)
			}
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// FormatRecord renders a record as cells in column order.
func FormatRecord(r types.Record) []string {
	return []string{
		r.OrderID,
		r.Product,
		strconv.Itoa(r.Quantity),
		strconv.FormatFloat(r.UnitPrice, 'f', -1, 64),
		FormatDate(r.OrderDate),
		r.PurchaseAddress,
	}
}

// FormatDate renders an order date for output.
func FormatDate(t time.Time) string {
	if t.Location() == time.UTC && t.Nanosecond() == 0 {
		return t.Format(DateLayout)
	}
	return t.Format(OffsetDateLayout)
}
