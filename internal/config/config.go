// =============================================================================
// Sales Analyzer - Configuration Module
// =============================================================================
//
// This module is responsible for loading the main configuration file
// (config.yaml). It controls:
//   - Where source files live and where updated files and reports are written
//   - How the CSV is parsed (delimiter, missing-value tokens)
//   - The display names of the six required columns
//   - Extra date layouts and per-column normalisation rules
//   - Logging mode and level
//
// Every option has a default, so the tool runs without a config file.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ginjaninja78/sales-analyzer/internal/apperr"
	"github.com/ginjaninja78/sales-analyzer/internal/types"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// DataDir is the directory scanned for source CSV files.
	// Default: "./data"
	DataDir string `yaml:"data_dir"`

	// OutputDir is where "<name>_updated.csv" files are written.
	// Default: "./data"
	OutputDir string `yaml:"output_dir"`

	// ReportsDir is where analysis reports (.txt, .xlsx) are written.
	// Default: "./reports"
	ReportsDir string `yaml:"reports_dir"`

	// DefaultFile is the source file used when --file is not given.
	// Relative names are resolved against DataDir.
	DefaultFile string `yaml:"default_file"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogMode selects the encoder: "dev" (console) or "prod" (JSON).
	// Default: "dev"
	LogMode string `yaml:"log_mode"`

	// =========================================================================
	// INGESTION SETTINGS
	// =========================================================================

	// CSVSettings contains settings for parsing the input CSV file.
	CSVSettings CSVSettings `yaml:"csv_settings"`

	// WorkbookSheet is the sheet read when the source is an .xlsx workbook.
	// Empty means the first sheet.
	WorkbookSheet string `yaml:"workbook_sheet"`

	// Columns maps the six required fields to their header names.
	Columns types.Columns `yaml:"columns"`

	// AddressPlaceholder replaces a missing purchase address.
	// Default: "Unknown"
	AddressPlaceholder string `yaml:"address_placeholder"`

	// DateLayouts are extra Go time layouts tried before the built-in ones.
	DateLayouts []string `yaml:"date_layouts"`

	// TransformationRules normalise raw column values before validation.
	TransformationRules []TransformationRule `yaml:"transformation_rules"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// ReportNameFormat defines report file names (without extension).
	// Placeholders:
	//   {type}      - Analysis type (summary, trends, ...)
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {uuid}      - A random UUID
	//   {original}  - Source file name without extension
	// Default: "analysis_results_{type}_{timestamp}"
	ReportNameFormat string `yaml:"report_name_format"`
}

// =============================================================================
// CSV SETTINGS STRUCTURE
// =============================================================================

// CSVSettings contains settings for parsing CSV files.
type CSVSettings struct {
	// Delimiter is the character used to separate fields in the CSV.
	// Common values: "," (comma), "|" (pipe), "\t" (tab), ";"
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// MissingValues are the tokens treated as an absent value.
	// Default: "", "nan", "NaN", "NULL"
	MissingValues []string `yaml:"missing_values"`
}

// =============================================================================
// TRANSFORMATION RULE STRUCTURE
// =============================================================================

// TransformationRule defines a transformation to apply to a specific column.
type TransformationRule struct {
	// Field is the column header the rule applies to.
	Field string `yaml:"field"`

	// Actions are applied in order.
	Actions []TransformationAction `yaml:"actions"`
}

// TransformationAction defines a single transformation action.
type TransformationAction struct {
	// Type is one of: trim, uppercase, lowercase, title_case, replace,
	// regex_replace, prepend_string, append_string, lookup.
	Type string `yaml:"type"`

	// Value is the parameter for the transformation (replacement text,
	// prefix, suffix).
	Value string `yaml:"value"`

	// Find is used by "replace" and "regex_replace".
	Find string `yaml:"find,omitempty"`

	// LookupTable is used by "lookup". Values not in the table pass through.
	LookupTable map[string]string `yaml:"lookup_table,omitempty"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *MainConfig {
	config := &MainConfig{}
	applyMainConfigDefaults(config)
	return config
}

// LoadMainConfig loads the main configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the main configuration file.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read, parsed or validated. A missing file
//     is reported with an error wrapping os.ErrNotExist so callers can fall
//     back to Default().
func LoadMainConfig(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes, defaults and validates configuration bytes.
func Parse(data []byte) (*MainConfig, error) {
	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeConfig, "failed to parse config file")
	}

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, apperr.Wrap(err, apperr.CodeConfig, "invalid configuration")
	}

	return &config, nil
}

// LoadOrDefault loads configPath, falling back to Default() when the file does
// not exist. Any other failure is returned.
func LoadOrDefault(configPath string) (*MainConfig, error) {
	config, err := LoadMainConfig(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return config, err
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.DataDir == "" {
		config.DataDir = "./data"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./data"
	}
	if config.ReportsDir == "" {
		config.ReportsDir = "./reports"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogMode == "" {
		config.LogMode = "dev"
	}
	if config.AddressPlaceholder == "" {
		config.AddressPlaceholder = "Unknown"
	}
	if config.ReportNameFormat == "" {
		config.ReportNameFormat = "analysis_results_{type}_{timestamp}"
	}

	// CSV settings defaults.
	if config.CSVSettings.Delimiter == "" {
		config.CSVSettings.Delimiter = ","
	}
	if config.CSVSettings.MissingValues == nil {
		config.CSVSettings.MissingValues = []string{"", "nan", "NaN", "NULL"}
	}

	// Column defaults, field by field so a config may rename only some.
	defaults := types.DefaultColumns()
	if config.Columns.OrderID == "" {
		config.Columns.OrderID = defaults.OrderID
	}
	if config.Columns.Product == "" {
		config.Columns.Product = defaults.Product
	}
	if config.Columns.Quantity == "" {
		config.Columns.Quantity = defaults.Quantity
	}
	if config.Columns.Price == "" {
		config.Columns.Price = defaults.Price
	}
	if config.Columns.OrderDate == "" {
		config.Columns.OrderDate = defaults.OrderDate
	}
	if config.Columns.PurchaseAddress == "" {
		config.Columns.PurchaseAddress = defaults.PurchaseAddress
	}
}

// validateMainConfig validates the main configuration.
func validateMainConfig(config *MainConfig) error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, strings.ToLower(config.LogLevel)) {
		return fmt.Errorf("invalid log level %q, must be one of: %s", config.LogLevel, strings.Join(validLogLevels, ", "))
	}

	validLogModes := []string{"dev", "prod"}
	if !contains(validLogModes, strings.ToLower(config.LogMode)) {
		return fmt.Errorf("invalid log mode %q, must be one of: %s", config.LogMode, strings.Join(validLogModes, ", "))
	}

	// Column names must be distinct, otherwise two fields read the same cell.
	seen := make(map[string]bool)
	for _, name := range config.Columns.Header() {
		if seen[name] {
			return fmt.Errorf("column name %q is used for more than one field", name)
		}
		seen[name] = true
	}

	for _, rule := range config.TransformationRules {
		if rule.Field == "" {
			return fmt.Errorf("transformation rule without field")
		}
	}

	return nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
