// =============================================================================
// Sales Analyzer - Query Commands
// =============================================================================
//
// COMMAND USAGE:
//   sales-analyzer by-date 2019-04-19
//   sales-analyzer by-product "USB-C Charging Cable"
//   sales-analyzer threshold --min-qty 2 --max-price 100
//   sales-analyzer revenue --start 2019-04-01 --end "2019-04-30 23:59:59"
//
// Threshold bounds are inclusive; a bound that is not given is not applied.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/ginjaninja78/sales-analyzer/internal/aggregator"
	"github.com/ginjaninja78/sales-analyzer/internal/types"
	"github.com/spf13/cobra"
)

var (
	minQty   int
	maxQty   int
	minPrice float64
	maxPrice float64

	revenueStart string
	revenueEnd   string
)

var byDateCmd = &cobra.Command{
	Use:   "by-date DATE",
	Short: "List the records of one calendar day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		records, err := s.loader.FilterByDate(args[0])
		if err != nil {
			return err
		}
		a := s.analysis("by-date")
		a.Records = records
		return render(cmd, a)
	},
}

var byProductCmd = &cobra.Command{
	Use:   "by-product PRODUCT",
	Short: "List the records of one product with its summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		records, err := s.loader.FilterByProduct(args[0])
		if err != nil {
			return err
		}
		if records.Len() == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No sales for product %q.\n", args[0])
			return nil
		}
		a := s.analysis("by-product")
		a.Summary = aggregator.New(records).SalesSummary()
		a.Records = records
		return render(cmd, a)
	},
}

var thresholdCmd = &cobra.Command{
	Use:   "threshold",
	Short: "List the records within quantity and price bounds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}

		var t types.Threshold
		flags := cmd.Flags()
		if flags.Changed("min-qty") {
			t.MinQuantity = &minQty
		}
		if flags.Changed("max-qty") {
			t.MaxQuantity = &maxQty
		}
		if flags.Changed("min-price") {
			t.MinPrice = &minPrice
		}
		if flags.Changed("max-price") {
			t.MaxPrice = &maxPrice
		}

		a := s.analysis("threshold")
		a.Records = s.aggregator().SalesByThreshold(t)
		return render(cmd, a)
	},
}

var revenueCmd = &cobra.Command{
	Use:   "revenue",
	Short: "Show the total revenue between two dates (inclusive)",
	Long: `Show the sum of quantity x unit price for the orders placed between
--start and --end, both inclusive. A missing bound leaves that side open.
A date without a time means midnight: use "2019-04-30 23:59:59" to include
the whole last day.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		r, err := aggregator.ParseDateRange(revenueStart, revenueEnd, s.loader.Timestamp)
		if err != nil {
			return err
		}

		revenue := s.aggregator().TotalRevenue(r)
		a := s.analysis("revenue")
		a.Revenue = &revenue
		a.RevenueRange = r
		return render(cmd, a)
	},
}

func init() {
	rootCmd.AddCommand(byDateCmd, byProductCmd, thresholdCmd, revenueCmd)

	thresholdCmd.Flags().IntVar(&minQty, "min-qty", 0, "Minimum quantity (inclusive)")
	thresholdCmd.Flags().IntVar(&maxQty, "max-qty", 0, "Maximum quantity (inclusive)")
	thresholdCmd.Flags().Float64Var(&minPrice, "min-price", 0, "Minimum unit price (inclusive)")
	thresholdCmd.Flags().Float64Var(&maxPrice, "max-price", 0, "Maximum unit price (inclusive)")

	revenueCmd.Flags().StringVar(&revenueStart, "start", "", "Start date/time (inclusive)")
	revenueCmd.Flags().StringVar(&revenueEnd, "end", "", "End date/time (inclusive)")
}
