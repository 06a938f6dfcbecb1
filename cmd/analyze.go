// =============================================================================
// Sales Analyzer - Analysis Commands
// =============================================================================
//
// COMMAND USAGE:
//   sales-analyzer files
//   sales-analyzer products
//   sales-analyzer summary [--stats]
//   sales-analyzer best
//   sales-analyzer trends
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// showStats adds the load statistics to the summary output.
var showStats bool

// summaryRevenueNote is printed above every sales summary.
const summaryRevenueNote = "Summary revenue = total quantity x average unit price."

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List the data files, creating the working directories if needed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fm := fileManager()
		if err := fm.EnsureDirectories(); err != nil {
			return err
		}
		files, err := fm.DiscoverDataFiles("")
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(files) == 0 {
			fmt.Fprintf(out, "No CSV files in %s\n", appConfig.DataDir)
			return nil
		}
		for i, f := range files {
			fmt.Fprintf(out, "%d. %s\n", i+1, f)
		}
		return nil
	},
}

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List the distinct products, in order of first appearance",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		products, err := s.loader.UniqueProducts()
		if err != nil {
			return err
		}
		for _, p := range products {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show quantity, orders, average price and revenue per product",
	Long: `Show the sales summary, one row per product, ranked by total quantity.

Revenue here is total quantity x average unit price. It can differ from the
revenue in 'trends' and 'revenue', which sum quantity x price line by line.

Averages are rounded to cents half away from zero on the decimal prices
(1.005 and 1.005 average to 1.01). Spreadsheet or pandas exports that round
the binary mean half to even can show one cent less on such ties.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		a := s.analysis("summary")
		a.Notes = []string{summaryRevenueNote}
		a.Summary = s.aggregator().SalesSummary()
		if showStats {
			stats := s.loader.Stats()
			a.Stats = &stats
		}
		return render(cmd, a)
	},
}

var bestCmd = &cobra.Command{
	Use:   "best",
	Short: "Show the best-selling product",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		best, err := s.aggregator().BestSellingProduct()
		if err != nil {
			return err
		}
		a := s.analysis("best")
		a.Best = &best
		return render(cmd, a)
	},
}

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Show monthly and hourly trends and the top product per month",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		trends := s.aggregator().SalesTrends()
		a := s.analysis("trends")
		a.Trends = &trends
		return render(cmd, a)
	},
}

func init() {
	rootCmd.AddCommand(filesCmd, productsCmd, summaryCmd, bestCmd, trendsCmd)

	summaryCmd.Flags().BoolVar(&showStats, "stats", false, "Also show how many rows were read and dropped")
}
