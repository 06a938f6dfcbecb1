// =============================================================================
// Sales Analyzer - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Sales Analyzer CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   sales-analyzer summary        - Per-product sales summary
//   sales-analyzer trends         - Monthly and hourly trends
//   sales-analyzer modify ID ...  - Change an order and save a copy
//   sales-analyzer report         - Export an analysis to .txt/.xlsx
//   sales-analyzer version        - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : loading, validation, aggregation and reporting
//   - pkg/           : shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/sales-analyzer/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
