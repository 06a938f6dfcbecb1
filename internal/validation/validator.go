// =============================================================================
// Sales Analyzer - Validation Engine
// =============================================================================
//
// This module turns the raw text cells of one CSV row into a typed
// types.Record. It validates:
//   - Essential fields (order id, product, quantity, price) are present
//   - Quantity is numeric, finite and positive after truncation to an integer
//   - Price is numeric, finite and positive
//   - Order date is parseable by one of the known layouts
//
// VALIDATION STRATEGY:
//   Coercion is row-level. A row that fails any check is not repaired: the
//   caller drops it and counts it under the RowError's Reason.
//
// DATE PARSING:
//   Dates arrive in mixed formats within the same file. Configured layouts
//   are tried first, then the built-in list below, then the permissive
//   dateparse parser. Values without a zone are read as UTC.
//
// =============================================================================

package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/ginjaninja78/sales-analyzer/internal/config"
	"github.com/ginjaninja78/sales-analyzer/internal/csvparser"
	"github.com/ginjaninja78/sales-analyzer/internal/types"
)

// =============================================================================
// ROW ERROR
// =============================================================================

// RowError describes why a row was rejected.
type RowError struct {
	// Line is the source line number of the row.
	Line int

	// Field is the column header of the offending cell.
	Field string

	// Value is the raw cell value.
	Value string

	// Reason is one of the types.Drop* constants.
	Reason string

	// Err is the underlying parse error, if any.
	Err error
}

// Error implements the error interface.
func (e *RowError) Error() string {
	msg := fmt.Sprintf("line %d, field '%s': %s (value: '%s')", e.Line, e.Field, e.Reason, e.Value)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// =============================================================================
// DATE LAYOUTS
// =============================================================================

// builtinLayouts are tried in order after the configured layouts.
var builtinLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02",
	"01/02/06 15:04",
	"01/02/06 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006 15:04:05",
	"01/02/06",
	"01/02/2006",
}

// =============================================================================
// COERCER
// =============================================================================

// Coercer converts raw rows into records.
type Coercer struct {
	columns     types.Columns
	missing     []string
	placeholder string
	layouts     []string
}

// NewCoercer creates a Coercer from the main configuration.
func NewCoercer(cfg *config.MainConfig) *Coercer {
	layouts := make([]string, 0, len(cfg.DateLayouts)+len(builtinLayouts))
	layouts = append(layouts, cfg.DateLayouts...)
	layouts = append(layouts, builtinLayouts...)

	return &Coercer{
		columns:     cfg.Columns,
		missing:     cfg.CSVSettings.MissingValues,
		placeholder: cfg.AddressPlaceholder,
		layouts:     layouts,
	}
}

// CoerceRow validates the cells of one row and builds a record.
//
// PARAMETERS:
//   - line: The source line number, copied into any RowError.
//   - fields: The row's cells keyed by column header.
//
// RETURNS:
//   - The coerced record.
//   - A *RowError if the row must be dropped, nil otherwise.
func (c *Coercer) CoerceRow(line int, fields map[string]string) (types.Record, *RowError) {
	// =========================================================================
	// ESSENTIAL FIELDS
	// =========================================================================

	for _, column := range c.columns.Essential() {
		if csvparser.IsMissing(fields[column], c.missing) {
			return types.Record{}, &RowError{
				Line:   line,
				Field:  column,
				Value:  fields[column],
				Reason: types.DropMissingEssential,
			}
		}
	}

	// =========================================================================
	// NUMERIC FIELDS
	// =========================================================================

	rawQuantity := fields[c.columns.Quantity]
	quantity, err := Quantity(rawQuantity)
	if err != nil {
		return types.Record{}, &RowError{
			Line:   line,
			Field:  c.columns.Quantity,
			Value:  rawQuantity,
			Reason: types.DropInvalidQuantity,
			Err:    err,
		}
	}

	rawPrice := fields[c.columns.Price]
	price, err := Price(rawPrice)
	if err != nil {
		return types.Record{}, &RowError{
			Line:   line,
			Field:  c.columns.Price,
			Value:  rawPrice,
			Reason: types.DropInvalidPrice,
			Err:    err,
		}
	}

	// =========================================================================
	// DATE FIELD
	// =========================================================================

	rawDate := fields[c.columns.OrderDate]
	var orderDate time.Time
	if csvparser.IsMissing(rawDate, c.missing) {
		err = fmt.Errorf("missing value")
	} else {
		orderDate, err = c.Timestamp(rawDate)
	}
	if err != nil {
		return types.Record{}, &RowError{
			Line:   line,
			Field:  c.columns.OrderDate,
			Value:  rawDate,
			Reason: types.DropInvalidDate,
			Err:    err,
		}
	}

	address := fields[c.columns.PurchaseAddress]
	if csvparser.IsMissing(address, c.missing) {
		address = c.placeholder
	}

	return types.Record{
		OrderID:         fields[c.columns.OrderID],
		Product:         fields[c.columns.Product],
		Quantity:        quantity,
		UnitPrice:       price,
		OrderDate:       orderDate,
		PurchaseAddress: address,
	}, nil
}

// Timestamp parses value with the configured layouts, then the built-in
// layouts, then dateparse.
func (c *Coercer) Timestamp(value string) (time.Time, error) {
	return parseTimestamp(value, c.layouts)
}

// Date is Date with the configured layouts tried first.
func (c *Coercer) Date(value string) (time.Time, error) {
	ts, err := c.Timestamp(value)
	if err != nil {
		return time.Time{}, err
	}
	return midnight(ts), nil
}

// =============================================================================
// FIELD VALIDATORS
// =============================================================================

// Quantity parses a quantity. Fractional values are truncated toward zero;
// the result must be strictly positive.
//
// EXAMPLE:
//   "2"   -> 2
//   "2.9" -> 2
//   "0.5" -> error (truncates to 0)
func Quantity(value string) (int, error) {
	f, err := parseFinite(value)
	if err != nil {
		return 0, err
	}
	if f >= math.MaxInt32 {
		return 0, fmt.Errorf("quantity %q is out of range", value)
	}
	q := int(f)
	if q <= 0 {
		return 0, fmt.Errorf("quantity must be positive, got %q", value)
	}
	return q, nil
}

// Price parses a unit price, which must be finite and strictly positive.
func Price(value string) (float64, error) {
	f, err := parseFinite(value)
	if err != nil {
		return 0, err
	}
	if f <= 0 {
		return 0, fmt.Errorf("price must be positive, got %q", value)
	}
	return f, nil
}

// Timestamp parses value with the built-in layouts, then dateparse.
func Timestamp(value string) (time.Time, error) {
	return parseTimestamp(value, builtinLayouts)
}

// Date parses a calendar date (or a timestamp, whose time part is ignored)
// and returns midnight UTC of that day.
func Date(value string) (time.Time, error) {
	ts, err := Timestamp(value)
	if err != nil {
		return time.Time{}, err
	}
	return midnight(ts), nil
}

func midnight(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar day, each in its
// own location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func parseFinite(value string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", value)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number: %q", value)
	}
	return f, nil
}

func parseTimestamp(value string, layouts []string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognised date format %q: %w", value, err)
	}
	return t, nil
}
