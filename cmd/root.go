// =============================================================================
// Sales Analyzer - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All analysis and
// mutation commands are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (sales-analyzer)
//   ├── files        list source files in the data directory
//   ├── products     list distinct products
//   ├── summary      per-product sales summary
//   ├── best         best-selling product
//   ├── trends       monthly, hourly and product-monthly trends
//   ├── by-date      records of one day
//   ├── by-product   records and summary of one product
//   ├── threshold    records within quantity/price bounds
//   ├── revenue      total revenue over a date range
//   ├── modify       change quantity/price of an order, then save
//   ├── add          append a record, then save
//   ├── report       export an analysis to .txt/.xlsx
//   └── version
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose, --file)
//   2. Loading config.yaml (defaults apply when it is absent)
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/ginjaninja78/sales-analyzer/internal/apperr"
	"github.com/ginjaninja78/sales-analyzer/internal/config"
	"github.com/ginjaninja78/sales-analyzer/internal/logger"
	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose forces debug logging.
var verbose bool

// dataFile is the source file to analyse. Relative names that do not exist
// as given are looked up in the data directory.
var dataFile string

// appConfig and appLog are set by the root command's PersistentPreRunE.
var (
	appConfig *config.MainConfig
	appLog    *logger.Logger
)

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "sales-analyzer",
	Short: "Sales Analyzer - Summaries, trends and edits over CSV sales exports",
	Long: `Sales Analyzer loads a CSV export of order lines, drops the rows that
cannot be trusted (missing ids, non-numeric quantities, unparseable dates) and
answers questions about what was sold, when, and for how much.

Key Features:
  - Per-product summary and best seller
  - Monthly, hourly and per-product monthly trends
  - Threshold search on quantity and price
  - Revenue over a date range
  - Safe edits of multi-line orders, saved to <name>_updated.csv
  - Text and Excel report export

Example Usage:
  sales-analyzer summary --file data/sales.csv
  sales-analyzer revenue --start 2019-04-01 --end 2019-04-30
  sales-analyzer modify 176558 --index 3 --quantity 2`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp()
	},

	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if appLog != nil {
			appLog.Sync()
		}
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", describeError(err))
		os.Exit(1)
	}
}

// initApp loads the configuration and builds the logger.
func initApp() error {
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	l, err := logger.New(cfg.LogMode, level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	appConfig = cfg
	appLog = l
	appLog.Debug("configuration loaded", "config", cfgFile, "data_dir", cfg.DataDir, "output_dir", cfg.OutputDir)
	return nil
}

// describeError turns coded errors into a message for the terminal.
func describeError(err error) string {
	code := apperr.CodeOf(err)
	if code == "" {
		return err.Error()
	}
	var appErr *apperr.AppError
	errors.As(err, &appErr)

	switch code {
	case apperr.CodeNotFound:
		return appErr.Message
	case apperr.CodeSchema:
		return "the file does not have the expected columns (" + appErr.Message + ")"
	case apperr.CodeNotLoaded:
		return "no data loaded; pass --file or set default_file in the configuration"
	case apperr.CodeInvalidDate:
		return appErr.Message + "; use a date such as 2024-01-05 or 2024-01-05 14:30"
	case apperr.CodeEmptyResult:
		return "no data: " + appErr.Message
	default:
		return err.Error()
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	// --config flag: Path to the main configuration file. A missing file at
	// this path means "use defaults".
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	// --verbose flag: Enables debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	// --file flag: The sales file to analyse.
	rootCmd.PersistentFlags().StringVarP(
		&dataFile,
		"file",
		"f",
		"",
		"Sales CSV file (default: default_file from the configuration, or the only CSV in data_dir)",
	)
}
