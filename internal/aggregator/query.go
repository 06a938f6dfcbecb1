// =============================================================================
// Sales Analyzer - Record Queries
// =============================================================================
//
// Threshold search and total revenue over an inclusive date range, plus the
// parsing of user-supplied range bounds.
//
// =============================================================================

package aggregator

import (
	"time"

	"github.com/ginjaninja78/sales-analyzer/internal/apperr"
	"github.com/ginjaninja78/sales-analyzer/internal/types"
	"github.com/ginjaninja78/sales-analyzer/internal/validation"
	"github.com/shopspring/decimal"
)

// SalesByThreshold returns a detached set of the records inside every bound
// of t, in source order. Bounds are inclusive; nil bounds are ignored.
func (a *Aggregator) SalesByThreshold(t types.Threshold) *types.RecordSet {
	return a.records.Filter(t.Match)
}

// TotalRevenue returns the line revenue of the records whose order date lies
// within r, rounded to two decimals. It is 0 when nothing matches.
func (a *Aggregator) TotalRevenue(r types.DateRange) float64 {
	total := decimal.Zero
	for _, record := range a.rows() {
		if r.Contains(record.OrderDate) {
			total = total.Add(lineRevenue(record))
		}
	}
	return round2(total)
}

// TimestampFunc parses a user-supplied date/time.
type TimestampFunc func(string) (time.Time, error)

// ParseDateRange builds a DateRange from user input. An empty string leaves
// that side open. A date without a time means midnight, so an end bound of
// "2024-01-05" excludes orders placed later that day.
//
// PARAMETERS:
//   - start, end: The bounds as typed by the user.
//   - parse: The timestamp parser, normally Loader.Timestamp so configured
//     layouts apply. nil means validation.Timestamp.
//
// RETURNS:
//   - An INVALID_DATE error naming the first value that does not parse.
func ParseDateRange(start, end string, parse TimestampFunc) (types.DateRange, error) {
	var r types.DateRange
	if parse == nil {
		parse = validation.Timestamp
	}

	s, err := parseBound(start, parse)
	if err != nil {
		return r, err
	}
	e, err := parseBound(end, parse)
	if err != nil {
		return r, err
	}

	r.Start, r.End = s, e
	return r, nil
}

func parseBound(value string, parse TimestampFunc) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	ts, err := parse(value)
	if err != nil {
		return nil, apperr.InvalidDate(value, err)
	}
	return &ts, nil
}
