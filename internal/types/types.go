// =============================================================================
// Sales Analyzer - Shared Types
// =============================================================================
//
// This package contains the typed record set and the aggregate result types
// shared by the loader, the aggregator, the writers and the CLI. Keeping them
// here avoids import cycles between:
//   - loader
//   - aggregator
//   - csvwriter
//   - report
//
// =============================================================================

package types

import (
	"time"
)

// =============================================================================
// RECORD TYPES
// =============================================================================

// Record is one validated sale/order line.
type Record struct {
	// OrderID identifies the order. It is NOT unique: an order with several
	// products appears once per product line.
	OrderID string

	// Product is the free-text product name. Never empty after ingestion.
	Product string

	// Quantity is the number of units ordered. Always > 0.
	Quantity int

	// UnitPrice is the price of a single unit. Always > 0.
	UnitPrice float64

	// OrderDate is the order timestamp.
	OrderDate time.Time

	// PurchaseAddress is the delivery address, or the configured placeholder
	// when the source row had none.
	PurchaseAddress string
}

// LineRevenue returns quantity x unit price for this record.
func (r Record) LineRevenue() float64 {
	return float64(r.Quantity) * r.UnitPrice
}

// IndexedRecord pairs a record with its position in the canonical record set.
// The index is what the disambiguate-by-index modify flow passes back.
type IndexedRecord struct {
	Index  int
	Record Record
}

// =============================================================================
// COLUMN NAMES
// =============================================================================

// Columns holds the display names of the six required columns.
// Semantics are fixed; only the header text may differ between files.
type Columns struct {
	OrderID         string `yaml:"order_id"`
	Product         string `yaml:"product"`
	Quantity        string `yaml:"quantity"`
	Price           string `yaml:"price"`
	OrderDate       string `yaml:"order_date"`
	PurchaseAddress string `yaml:"purchase_address"`
}

// DefaultColumns returns the header names used by the sales exports this tool
// was built for.
func DefaultColumns() Columns {
	return Columns{
		OrderID:         "Order ID",
		Product:         "Product",
		Quantity:        "Quantity Ordered",
		Price:           "Price Each",
		OrderDate:       "Order Date",
		PurchaseAddress: "Purchase Address",
	}
}

// Header returns the column names in file order.
func (c Columns) Header() []string {
	return []string{c.OrderID, c.Product, c.Quantity, c.Price, c.OrderDate, c.PurchaseAddress}
}

// Essential returns the columns whose absence drops a row outright.
func (c Columns) Essential() []string {
	return []string{c.OrderID, c.Product, c.Quantity, c.Price}
}

// =============================================================================
// RECORD SET
// =============================================================================

// RecordSet is the in-memory collection of validated sale records.
//
// A *RecordSet is an owned, mutable value: whoever holds the pointer sees
// in-place edits made through it. Filter and Clone return detached copies
// that never write back into the set they were derived from.
type RecordSet struct {
	// Columns are the header names the set was loaded with. They are reused
	// when the set is written back to disk.
	Columns Columns

	// Records are the rows in source order.
	Records []Record
}

// NewRecordSet creates a record set with the given columns and rows.
func NewRecordSet(columns Columns, records []Record) *RecordSet {
	if records == nil {
		records = []Record{}
	}
	return &RecordSet{Columns: columns, Records: records}
}

// Len returns the number of records.
func (s *RecordSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Records)
}

// At returns the record at index i and whether it exists.
func (s *RecordSet) At(i int) (Record, bool) {
	if s == nil || i < 0 || i >= len(s.Records) {
		return Record{}, false
	}
	return s.Records[i], true
}

// Append adds a record at the end of the set.
func (s *RecordSet) Append(r Record) {
	s.Records = append(s.Records, r)
}

// Clone returns a detached copy of the set.
func (s *RecordSet) Clone() *RecordSet {
	if s == nil {
		return nil
	}
	records := make([]Record, len(s.Records))
	copy(records, s.Records)
	return &RecordSet{Columns: s.Columns, Records: records}
}

// Filter returns a detached set holding the records for which keep returns
// true, in source order.
func (s *RecordSet) Filter(keep func(Record) bool) *RecordSet {
	out := &RecordSet{Records: []Record{}}
	if s == nil {
		return out
	}
	out.Columns = s.Columns
	for _, r := range s.Records {
		if keep(r) {
			out.Records = append(out.Records, r)
		}
	}
	return out
}

// =============================================================================
// SUMMARY TYPES
// =============================================================================

// SummaryRow is the per-product sales summary.
//
// TotalRevenue is the "average-price revenue": TotalQuantity multiplied by the
// rounded AveragePrice. It is NOT the sum of per-line revenue and can differ
// from the trend tables' revenue when a product sold at several prices.
type SummaryRow struct {
	Product        string
	TotalQuantity  int
	NumberOfOrders int
	AveragePrice   float64
	TotalRevenue   float64
}

// =============================================================================
// TREND TYPES
// =============================================================================
// Trend revenue is the "line revenue": the sum of quantity x unit price over
// the records of the group.

// MonthlyTrend aggregates one calendar month.
type MonthlyTrend struct {
	Year           int
	Month          int
	NumberOfOrders int
	TotalQuantity  int
	TotalRevenue   float64
}

// HourlyTrend aggregates one hour of the day (0-23) across all dates.
type HourlyTrend struct {
	Hour           int
	NumberOfOrders int
	TotalQuantity  int
	TotalRevenue   float64
}

// ProductMonthlyTrend aggregates one product within one calendar month.
type ProductMonthlyTrend struct {
	Year          int
	Month         int
	Product       string
	TotalQuantity int
	TotalRevenue  float64
}

// Trends bundles the three trend tables.
type Trends struct {
	Monthly        []MonthlyTrend
	Hourly         []HourlyTrend
	ProductMonthly []ProductMonthlyTrend
}

// PeakHour returns the hour with the most orders. The earliest hour wins a
// tie. ok is false when there are no hourly rows.
func (t Trends) PeakHour() (peak HourlyTrend, ok bool) {
	for i, h := range t.Hourly {
		if i == 0 || h.NumberOfOrders > peak.NumberOfOrders {
			peak = h
			ok = true
		}
	}
	return peak, ok
}

// MonthlyLeaders returns, for every month, the product with the highest
// total quantity. The first product in ProductMonthly order wins a tie.
func (t Trends) MonthlyLeaders() []ProductMonthlyTrend {
	leaders := []ProductMonthlyTrend{}
	for _, pm := range t.ProductMonthly {
		n := len(leaders)
		if n > 0 && leaders[n-1].Year == pm.Year && leaders[n-1].Month == pm.Month {
			if pm.TotalQuantity > leaders[n-1].TotalQuantity {
				leaders[n-1] = pm
			}
			continue
		}
		leaders = append(leaders, pm)
	}
	return leaders
}

// =============================================================================
// QUERY TYPES
// =============================================================================

// Threshold holds optional inclusive bounds for a threshold search.
// A nil bound imposes no constraint.
type Threshold struct {
	MinQuantity *int
	MaxQuantity *int
	MinPrice    *float64
	MaxPrice    *float64
}

// Match reports whether r satisfies every bound.
func (t Threshold) Match(r Record) bool {
	if t.MinQuantity != nil && r.Quantity < *t.MinQuantity {
		return false
	}
	if t.MaxQuantity != nil && r.Quantity > *t.MaxQuantity {
		return false
	}
	if t.MinPrice != nil && r.UnitPrice < *t.MinPrice {
		return false
	}
	if t.MaxPrice != nil && r.UnitPrice > *t.MaxPrice {
		return false
	}
	return true
}

// DateRange is an inclusive timestamp interval. A nil bound is open.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Contains reports whether ts lies within the range.
func (d DateRange) Contains(ts time.Time) bool {
	if d.Start != nil && ts.Before(*d.Start) {
		return false
	}
	if d.End != nil && ts.After(*d.End) {
		return false
	}
	return true
}

// EntryUpdate holds the new values for a modify operation.
// Nil fields are left unchanged.
type EntryUpdate struct {
	Quantity *int
	Price    *float64
}

// =============================================================================
// LOAD STATISTICS
// =============================================================================

// Drop reasons recorded in LoadStats.
const (
	DropEmpty            = "empty"
	DropMissingEssential = "missing_essential"
	DropInvalidQuantity  = "invalid_quantity"
	DropInvalidPrice     = "invalid_price"
	DropInvalidDate      = "invalid_date"
)

// LoadStats reports how many rows a load kept and dropped.
// ValidRows + DroppedRows always equals TotalRows.
type LoadStats struct {
	SourceFile  string
	TotalRows   int
	ValidRows   int
	DroppedRows int

	// DroppedBy counts dropped rows per reason (see the Drop* constants).
	DroppedBy map[string]int
}
