// =============================================================================
// Sales Analyzer - Loader Module
// =============================================================================
//
// This module owns the ingestion pipeline and the canonical record set of the
// session.
//
// LOADING PIPELINE:
//   1. Check that the file exists
//   2. Parse the delimited text or workbook sheet (blank lines skipped)
//   3. Check that the six configured columns are present
//   4. Drop rows where every cell is missing
//   5. Apply the configured normalisation rules
//   6. Coerce each row (essential fields, quantity, price, date)
//   7. Replace the held record set and record the load statistics
//
// A failed load leaves the previously held record set untouched.
//
// =============================================================================

package loader

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ginjaninja78/sales-analyzer/internal/apperr"
	"github.com/ginjaninja78/sales-analyzer/internal/config"
	"github.com/ginjaninja78/sales-analyzer/internal/csvparser"
	"github.com/ginjaninja78/sales-analyzer/internal/logger"
	"github.com/ginjaninja78/sales-analyzer/internal/transform"
	"github.com/ginjaninja78/sales-analyzer/internal/types"
	"github.com/ginjaninja78/sales-analyzer/internal/validation"
	"github.com/ginjaninja78/sales-analyzer/internal/xlsxparser"
	"github.com/ginjaninja78/sales-analyzer/pkg/utils"
)

// =============================================================================
// LOADER STRUCTURE
// =============================================================================

// Loader parses sales files and holds the resulting record set.
type Loader struct {
	config      *config.MainConfig
	logger      *logger.Logger
	transformer *transform.Transformer
	coercer     *validation.Coercer

	// records is nil until the first successful Load.
	records *types.RecordSet
	stats   types.LoadStats
}

// New creates a Loader.
//
// PARAMETERS:
//   - cfg: The main configuration (columns, CSV settings, rules, layouts).
//   - log: The logger. nil means discard.
//
// RETURNS:
//   - A new Loader.
//   - An error if a transformation rule is invalid.
func New(cfg *config.MainConfig, log *logger.Logger) (*Loader, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logger.Nop()
	}

	transformer, err := transform.NewTransformer(cfg.TransformationRules)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.CodeConfig, "invalid transformation rules")
	}

	return &Loader{
		config:      cfg,
		logger:      log.With("component", "loader"),
		transformer: transformer,
		coercer:     validation.NewCoercer(cfg),
	}, nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the file at path and replaces the held record set.
//
// RETURNS:
//   - The new record set. The loader keeps the same pointer, so edits made
//     through it are visible to later calls.
//   - A NOT_FOUND error if the file does not exist, a SCHEMA error if a
//     required column is absent, or the parse error.
func (l *Loader) Load(path string) (*types.RecordSet, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.NotFound(path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	data, err := l.parse(path)
	if errors.Is(err, csvparser.ErrEmptyFile) {
		return nil, apperr.Schema(l.config.Columns.Header())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	index := data.Index()
	if missing := l.missingColumns(index); len(missing) > 0 {
		return nil, apperr.Schema(missing)
	}

	stats := types.LoadStats{
		SourceFile: path,
		TotalRows:  len(data.Rows),
		DroppedBy:  make(map[string]int),
	}
	records := make([]types.Record, 0, len(data.Rows))
	missingTokens := l.config.CSVSettings.MissingValues

	for _, row := range data.Rows {
		if csvparser.IsRowEmpty(row.Values, missingTokens) {
			stats.DroppedBy[types.DropEmpty]++
			continue
		}

		fields := make(map[string]string, len(index))
		for name, i := range index {
			fields[name] = row.Values[i]
		}
		l.transformer.TransformRow(fields, missingTokens)

		record, rowErr := l.coercer.CoerceRow(row.Line, fields)
		if rowErr != nil {
			stats.DroppedBy[rowErr.Reason]++
			l.logger.Debug("row dropped", "line", rowErr.Line, "field", rowErr.Field, "reason", rowErr.Reason, "value", rowErr.Value)
			continue
		}
		records = append(records, record)
	}

	stats.ValidRows = len(records)
	stats.DroppedRows = stats.TotalRows - stats.ValidRows

	l.records = types.NewRecordSet(l.config.Columns, records)
	l.stats = stats

	l.logger.Info("data loaded",
		"file", path,
		"valid_rows", stats.ValidRows,
		"total_rows", stats.TotalRows,
		"dropped_rows", stats.DroppedRows,
	)

	return l.records, nil
}

// parse reads path as a workbook or as delimited text, by extension.
func (l *Loader) parse(path string) (*csvparser.CSVData, error) {
	if utils.IsWorkbook(path) {
		return xlsxparser.Parse(path, l.config.WorkbookSheet)
	}
	return csvparser.Parse(path, l.config.CSVSettings)
}

// missingColumns returns the configured columns absent from the header.
func (l *Loader) missingColumns(index map[string]int) []string {
	var missing []string
	for _, column := range l.config.Columns.Header() {
		if _, ok := index[column]; !ok {
			missing = append(missing, column)
		}
	}
	return missing
}

// =============================================================================
// VIEWS
// =============================================================================

// Records returns the held record set.
func (l *Loader) Records() (*types.RecordSet, error) {
	if l.records == nil {
		return nil, apperr.NotLoaded()
	}
	return l.records, nil
}

// Stats returns the statistics of the last successful load.
func (l *Loader) Stats() types.LoadStats {
	return l.stats
}

// UniqueProducts returns the distinct product names in first-occurrence order.
func (l *Loader) UniqueProducts() ([]string, error) {
	records, err := l.Records()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	products := []string{}
	for _, r := range records.Records {
		if !seen[r.Product] {
			seen[r.Product] = true
			products = append(products, r.Product)
		}
	}
	return products, nil
}

// FilterByDate returns a detached set of the records whose order date falls
// on the given calendar day. The time part of date, if any, is ignored.
func (l *Loader) FilterByDate(date string) (*types.RecordSet, error) {
	records, err := l.Records()
	if err != nil {
		return nil, err
	}

	day, err := l.coercer.Date(date)
	if err != nil {
		return nil, apperr.InvalidDate(date, err)
	}

	return records.Filter(func(r types.Record) bool {
		return validation.SameDay(r.OrderDate, day)
	}), nil
}

// Timestamp parses a user-supplied date/time with the same layouts used for
// the order date column.
func (l *Loader) Timestamp(value string) (time.Time, error) {
	return l.coercer.Timestamp(value)
}

// FilterByProduct returns a detached set of the records for one product.
func (l *Loader) FilterByProduct(product string) (*types.RecordSet, error) {
	records, err := l.Records()
	if err != nil {
		return nil, err
	}

	return records.Filter(func(r types.Record) bool {
		return r.Product == product
	}), nil
}

// EntriesByOrderID returns every record carrying orderID together with its
// index in the held set. The index is what ModifyEntry accepts to target one
// line of a multi-line order.
func (l *Loader) EntriesByOrderID(orderID string) ([]types.IndexedRecord, error) {
	records, err := l.Records()
	if err != nil {
		return nil, err
	}

	entries := []types.IndexedRecord{}
	for i, r := range records.Records {
		if r.OrderID == orderID {
			entries = append(entries, types.IndexedRecord{Index: i, Record: r})
		}
	}
	return entries, nil
}
