package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ginjaninja78/sales-analyzer/internal/apperr"
	"github.com/ginjaninja78/sales-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, "./data", cfg.OutputDir)
	assert.Equal(t, "./reports", cfg.ReportsDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ",", cfg.CSVSettings.Delimiter)
	assert.Equal(t, []string{"", "nan", "NaN", "NULL"}, cfg.CSVSettings.MissingValues)
	assert.Equal(t, types.DefaultColumns(), cfg.Columns)
	assert.Equal(t, "Unknown", cfg.AddressPlaceholder)
}

func TestParsePartialColumns(t *testing.T) {
	yaml := `
data_dir: ./input
log_level: debug
csv_settings:
  delimiter: ";"
columns:
  order_id: "Order Number"
  price: "Unit Price"
transformation_rules:
  - field: Product
    actions:
      - type: trim
      - type: uppercase
`
	cfg, err := Parse([]byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, "./input", cfg.DataDir)
	assert.Equal(t, "./data", cfg.OutputDir)
	assert.Equal(t, ";", cfg.CSVSettings.Delimiter)
	assert.Equal(t, "Order Number", cfg.Columns.OrderID)
	assert.Equal(t, "Unit Price", cfg.Columns.Price)
	assert.Equal(t, "Product", cfg.Columns.Product)
	require.Len(t, cfg.TransformationRules, 1)
	assert.Len(t, cfg.TransformationRules[0].Actions, 2)
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad log level", "log_level: loud\n"},
		{"bad log mode", "log_mode: fancy\n"},
		{"duplicate column", "columns:\n  product: \"Order ID\"\n"},
		{"rule without field", "transformation_rules:\n  - actions:\n      - type: trim\n"},
		{"not yaml", "data_dir: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperr.ErrConfig))
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadOrDefault(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("reports_dir: ./out\n"), 0o644))

	cfg, err = LoadOrDefault(path)
	require.NoError(t, err)
	assert.Equal(t, "./out", cfg.ReportsDir)
}
