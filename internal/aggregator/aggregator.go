// =============================================================================
// Sales Analyzer - Aggregation Engine
// =============================================================================
//
// This module computes the analytical views over a record set and performs
// the guarded mutations on it.
//
// OWNERSHIP:
//   The Aggregator works on exactly the *types.RecordSet it was given. Pass
//   the loader's set to have mutations visible through the loader, or a
//   Clone() to work on a private copy.
//
// ROUNDING:
//   Money and averages are summed with shopspring/decimal and rounded to two
//   decimals (half away from zero) only when a result row is built.
//
// REVENUE:
//   Two revenue figures exist and are kept apart on purpose:
//   - SummaryRow.TotalRevenue is the "average-price revenue":
//     total quantity x rounded average unit price.
//   - Trend and TotalRevenue figures are the "line revenue":
//     the sum of quantity x unit price over the individual records.
//   They differ whenever a product sold at more than one price.
//
// =============================================================================

package aggregator

import (
	"sort"

	"github.com/ginjaninja78/sales-analyzer/internal/apperr"
	"github.com/ginjaninja78/sales-analyzer/internal/csvwriter"
	"github.com/ginjaninja78/sales-analyzer/internal/logger"
	"github.com/ginjaninja78/sales-analyzer/internal/types"
	"github.com/shopspring/decimal"
)

// =============================================================================
// AGGREGATOR STRUCTURE
// =============================================================================

// RecordWriter persists a record set. *csvwriter.Writer implements it.
type RecordWriter interface {
	WriteFile(path string, set *types.RecordSet) error
}

// Aggregator computes summaries and trends over a record set.
type Aggregator struct {
	records *types.RecordSet

	// outputDir is where Save writes "<name>_updated" files.
	outputDir string

	// placeholder fills a blank address on AddEntry.
	placeholder string

	writer RecordWriter
	logger *logger.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithOutputDir sets the directory Save writes to. Default: "data".
func WithOutputDir(dir string) Option {
	return func(a *Aggregator) {
		a.outputDir = dir
	}
}

// WithLogger sets the logger. Default: discard.
func WithLogger(l *logger.Logger) Option {
	return func(a *Aggregator) {
		if l != nil {
			a.logger = l.With("component", "aggregator")
		}
	}
}

// WithWriter sets the writer used by Save. Default: comma-delimited CSV.
func WithWriter(w RecordWriter) Option {
	return func(a *Aggregator) {
		if w != nil {
			a.writer = w
		}
	}
}

// WithAddressPlaceholder sets the address stored by AddEntry when the new
// record has none. Default: "Unknown".
func WithAddressPlaceholder(placeholder string) Option {
	return func(a *Aggregator) {
		a.placeholder = placeholder
	}
}

// New creates an Aggregator over records. records may be nil, in which case
// every view is empty and every mutation fails.
func New(records *types.RecordSet, opts ...Option) *Aggregator {
	a := &Aggregator{
		records:     records,
		outputDir:   "data",
		placeholder: "Unknown",
		writer:      csvwriter.New(","),
		logger:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Records returns the record set the aggregator operates on.
func (a *Aggregator) Records() *types.RecordSet {
	return a.records
}

// =============================================================================
// SALES SUMMARY
// =============================================================================

type productTotals struct {
	quantity int
	orders   int
	priceSum decimal.Decimal
}

// SalesSummary returns one row per product, ranked by total quantity
// descending. Products with equal quantity keep the order in which they were
// first seen.
//
// The average is computed on the decimal form of each price and rounded
// half away from zero, so two prices of 1.005 average to 1.01. Tools that
// round the binary float mean half to even (numpy, pandas) report 1.00 for
// the same input; averages exactly on a half cent can differ by one cent.
func (a *Aggregator) SalesSummary() []types.SummaryRow {
	totals := make(map[string]*productTotals)
	order := []string{}

	for _, r := range a.rows() {
		t, ok := totals[r.Product]
		if !ok {
			t = &productTotals{}
			totals[r.Product] = t
			order = append(order, r.Product)
		}
		t.quantity += r.Quantity
		t.orders++
		t.priceSum = t.priceSum.Add(decimal.NewFromFloat(r.UnitPrice))
	}

	rows := make([]types.SummaryRow, 0, len(order))
	for _, product := range order {
		t := totals[product]
		average := t.priceSum.Div(decimal.NewFromInt(int64(t.orders))).Round(2)
		revenue := decimal.NewFromInt(int64(t.quantity)).Mul(average)

		rows = append(rows, types.SummaryRow{
			Product:        product,
			TotalQuantity:  t.quantity,
			NumberOfOrders: t.orders,
			AveragePrice:   round2(average),
			TotalRevenue:   round2(revenue),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalQuantity > rows[j].TotalQuantity
	})

	return rows
}

// BestSellingProduct returns the first row of SalesSummary.
//
// RETURNS:
//   - An EMPTY_RESULT error when there are no records.
func (a *Aggregator) BestSellingProduct() (types.SummaryRow, error) {
	summary := a.SalesSummary()
	if len(summary) == 0 {
		return types.SummaryRow{}, apperr.EmptyResult("no sales records to rank")
	}
	return summary[0], nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// rows returns the records, or nil when no set is held.
func (a *Aggregator) rows() []types.Record {
	if a.records == nil {
		return nil
	}
	return a.records.Records
}

// round2 rounds d to two decimals and converts it to float64.
func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// lineRevenue returns quantity x unit price as a decimal.
func lineRevenue(r types.Record) decimal.Decimal {
	return decimal.NewFromFloat(r.UnitPrice).Mul(decimal.NewFromInt(int64(r.Quantity)))
}
