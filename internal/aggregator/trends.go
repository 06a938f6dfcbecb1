// =============================================================================
// Sales Analyzer - Sales Trends
// =============================================================================
//
// This module groups records by calendar month, by hour of day, and by
// product within a month. Trend revenue is line revenue. Every table is
// returned sorted by its key.
//
// =============================================================================

package aggregator

import (
	"sort"

	"github.com/ginjaninja78/sales-analyzer/internal/types"
	"github.com/shopspring/decimal"
)

type monthKey struct {
	year  int
	month int
}

type productMonthKey struct {
	monthKey
	product string
}

type trendTotals struct {
	orders   int
	quantity int
	revenue  decimal.Decimal
}

func (t *trendTotals) add(r types.Record) {
	t.orders++
	t.quantity += r.Quantity
	t.revenue = t.revenue.Add(lineRevenue(r))
}

// SalesTrends groups the records by calendar month, by hour of day and by
// (month, product). Every revenue figure is line revenue.
//
// Monthly rows are sorted by year then month, hourly rows by hour, and
// product-monthly rows by year, month, then product name.
func (a *Aggregator) SalesTrends() types.Trends {
	monthly := make(map[monthKey]*trendTotals)
	hourly := make(map[int]*trendTotals)
	productMonthly := make(map[productMonthKey]*trendTotals)

	for _, r := range a.rows() {
		mk := monthKey{year: r.OrderDate.Year(), month: int(r.OrderDate.Month())}
		totalsFor(monthly, mk).add(r)
		totalsFor(hourly, r.OrderDate.Hour()).add(r)
		totalsFor(productMonthly, productMonthKey{monthKey: mk, product: r.Product}).add(r)
	}

	trends := types.Trends{
		Monthly:        make([]types.MonthlyTrend, 0, len(monthly)),
		Hourly:         make([]types.HourlyTrend, 0, len(hourly)),
		ProductMonthly: make([]types.ProductMonthlyTrend, 0, len(productMonthly)),
	}

	for k, t := range monthly {
		trends.Monthly = append(trends.Monthly, types.MonthlyTrend{
			Year:           k.year,
			Month:          k.month,
			NumberOfOrders: t.orders,
			TotalQuantity:  t.quantity,
			TotalRevenue:   round2(t.revenue),
		})
	}
	sort.Slice(trends.Monthly, func(i, j int) bool {
		return monthLess(trends.Monthly[i].Year, trends.Monthly[i].Month, trends.Monthly[j].Year, trends.Monthly[j].Month)
	})

	for hour, t := range hourly {
		trends.Hourly = append(trends.Hourly, types.HourlyTrend{
			Hour:           hour,
			NumberOfOrders: t.orders,
			TotalQuantity:  t.quantity,
			TotalRevenue:   round2(t.revenue),
		})
	}
	sort.Slice(trends.Hourly, func(i, j int) bool {
		return trends.Hourly[i].Hour < trends.Hourly[j].Hour
	})

	for k, t := range productMonthly {
		trends.ProductMonthly = append(trends.ProductMonthly, types.ProductMonthlyTrend{
			Year:          k.year,
			Month:         k.month,
			Product:       k.product,
			TotalQuantity: t.quantity,
			TotalRevenue:  round2(t.revenue),
		})
	}
	sort.Slice(trends.ProductMonthly, func(i, j int) bool {
		x, y := trends.ProductMonthly[i], trends.ProductMonthly[j]
		if x.Year != y.Year || x.Month != y.Month {
			return monthLess(x.Year, x.Month, y.Year, y.Month)
		}
		return x.Product < y.Product
	})

	return trends
}

func totalsFor[K comparable](groups map[K]*trendTotals, key K) *trendTotals {
	t, ok := groups[key]
	if !ok {
		t = &trendTotals{}
		groups[key] = t
	}
	return t
}

func monthLess(y1, m1, y2, m2 int) bool {
	if y1 != y2 {
		return y1 < y2
	}
	return m1 < m2
}
