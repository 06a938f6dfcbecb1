// =============================================================================
// Sales Analyzer - Mutation Commands
// =============================================================================
//
// COMMAND USAGE:
//   sales-analyzer modify ORDER_ID [--index N | --all] [--quantity Q] [--price P]
//   sales-analyzer add --product NAME --quantity Q --price P [--order-id ID] [--date D] [--address A]
//
// Both commands save the whole record set to "<name>_updated.csv" in the
// output directory after a successful change. The source file is never
// overwritten.
//
// MULTI-LINE ORDERS:
//   An order id appears once per product line. When the id has several lines
//   and neither --index nor --all is given, modify lists the lines with their
//   index and stops.
//
// =============================================================================

package cmd

import (
	"fmt"
	"time"

	"github.com/ginjaninja78/sales-analyzer/internal/csvwriter"
	"github.com/ginjaninja78/sales-analyzer/internal/report"
	"github.com/ginjaninja78/sales-analyzer/internal/types"
	"github.com/spf13/cobra"
)

var (
	modifyIndex    int
	modifyAll      bool
	modifyQuantity int
	modifyPrice    float64

	addOrderID  string
	addProduct  string
	addQuantity int
	addPrice    float64
	addDate     string
	addAddress  string
)

var modifyCmd = &cobra.Command{
	Use:   "modify ORDER_ID",
	Short: "Change the quantity and/or unit price of an order, then save",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		orderID := args[0]
		flags := cmd.Flags()

		var upd types.EntryUpdate
		if flags.Changed("quantity") {
			upd.Quantity = &modifyQuantity
		}
		if flags.Changed("price") {
			upd.Price = &modifyPrice
		}
		if upd.Quantity == nil && upd.Price == nil {
			return fmt.Errorf("nothing to change: pass --quantity and/or --price")
		}
		if flags.Changed("index") && modifyAll {
			return fmt.Errorf("--index and --all cannot be combined")
		}

		s, err := openSession()
		if err != nil {
			return err
		}
		entries, err := s.loader.EntriesByOrderID(orderID)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return fmt.Errorf("order %s not found", orderID)
		}

		var target *int
		if flags.Changed("index") {
			target = &modifyIndex
		} else if len(entries) > 1 && !modifyAll {
			printEntries(cmd, orderID, entries)
			return fmt.Errorf("order %s has %d lines: pass --index to change one, or --all to change every line", orderID, len(entries))
		}

		agg := s.aggregator()
		if !agg.ModifyEntry(orderID, upd, target) {
			return fmt.Errorf("order %s was not changed: check the index and that the new values are positive", orderID)
		}

		path, err := agg.Save(s.path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Order %s updated. Saved to %s\n", orderID, path)
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Append a sales record, then save",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}

		now := time.Now()
		orderDate := now
		if addDate != "" {
			ts, err := s.loader.Timestamp(addDate)
			if err != nil {
				return fmt.Errorf("invalid --date %q: %w", addDate, err)
			}
			orderDate = ts
		}

		orderID := addOrderID
		if orderID == "" {
			orderID = now.Format("20060102150405")
		}

		record := types.Record{
			OrderID:         orderID,
			Product:         addProduct,
			Quantity:        addQuantity,
			UnitPrice:       addPrice,
			OrderDate:       orderDate.Truncate(time.Second),
			PurchaseAddress: addAddress,
		}

		agg := s.aggregator()
		if !agg.AddEntry(record) {
			return fmt.Errorf("record rejected: product must be set and quantity and price must be positive")
		}

		path, err := agg.Save(s.path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Order %s added. Saved to %s\n", orderID, path)
		return nil
	},
}

// printEntries lists the lines of a multi-line order with their index.
func printEntries(cmd *cobra.Command, orderID string, entries []types.IndexedRecord) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Order %s has several lines:\n", orderID)
	for _, e := range entries {
		fmt.Fprintf(out, "  [index %d] %s  qty %d  price %s  %s\n",
			e.Index,
			e.Record.Product,
			e.Record.Quantity,
			report.Money(e.Record.UnitPrice),
			csvwriter.FormatDate(e.Record.OrderDate),
		)
	}
}

func init() {
	rootCmd.AddCommand(modifyCmd, addCmd)

	modifyCmd.Flags().IntVar(&modifyIndex, "index", 0, "Index of the line to change (see the listing for multi-line orders)")
	modifyCmd.Flags().BoolVar(&modifyAll, "all", false, "Change every line of the order")
	modifyCmd.Flags().IntVar(&modifyQuantity, "quantity", 0, "New quantity")
	modifyCmd.Flags().Float64Var(&modifyPrice, "price", 0, "New unit price")

	addCmd.Flags().StringVar(&addOrderID, "order-id", "", "Order id (default: current timestamp, YYYYMMDDHHMMSS)")
	addCmd.Flags().StringVar(&addProduct, "product", "", "Product name")
	addCmd.Flags().IntVar(&addQuantity, "quantity", 0, "Quantity ordered")
	addCmd.Flags().Float64Var(&addPrice, "price", 0, "Unit price")
	addCmd.Flags().StringVar(&addDate, "date", "", "Order date/time (default: now)")
	addCmd.Flags().StringVar(&addAddress, "address", "", "Purchase address (default: the configured placeholder)")
	_ = addCmd.MarkFlagRequired("product")
	_ = addCmd.MarkFlagRequired("quantity")
	_ = addCmd.MarkFlagRequired("price")
}
