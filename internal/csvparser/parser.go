// =============================================================================
// Sales Analyzer - CSV Parser Module
// =============================================================================
//
// This module reads delimited sales exports into headers and raw rows. It does
// not interpret values; coercion happens in the validation package. It
// handles:
//   - Different delimiters (comma, pipe, tab, semicolon)
//   - Blank lines (skipped, never reported as rows)
//   - Ragged rows (short rows are padded with empty cells)
//   - Configurable missing-value tokens ("", "nan", "NaN", "NULL")
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/sales-analyzer/internal/config"
)

// ErrEmptyFile is returned when the input has no header line.
var ErrEmptyFile = errors.New("CSV file is empty")

// =============================================================================
// CSV DATA STRUCTURE
// =============================================================================

// CSVData represents the parsed CSV file.
type CSVData struct {
	// Headers contains the column headers from the first row.
	Headers []string

	// Rows contains the data rows, one cell per header.
	Rows []Row

	// SourceFile is the path to the source CSV file.
	SourceFile string
}

// Row is a single data row.
type Row struct {
	// Line is the 1-based line number in the source file, for error reporting.
	Line int

	// Values are the trimmed cell values, aligned with CSVData.Headers.
	Values []string
}

// Index returns the position of each header, keyed by name.
// If a header appears twice the first occurrence wins.
func (d *CSVData) Index() map[string]int {
	index := make(map[string]int, len(d.Headers))
	for i, h := range d.Headers {
		if _, ok := index[h]; !ok {
			index[h] = i
		}
	}
	return index
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a CSV file and returns the parsed data.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: The CSV parsing settings.
//
// RETURNS:
//   - A pointer to the CSVData struct containing the parsed data.
//   - An error if the file cannot be opened or is not valid delimited text.
func Parse(filePath string, settings config.CSVSettings) (*CSVData, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	data, err := ParseReader(bufio.NewReader(file), settings)
	if err != nil {
		return nil, err
	}
	data.SourceFile = filePath
	return data, nil
}

// ParseReader parses delimited text from r.
func ParseReader(r io.Reader, settings config.CSVSettings) (*CSVData, error) {
	csvReader := csv.NewReader(r)
	configureReader(csvReader, settings)

	data := &CSVData{Rows: []Row{}}

	header, err := csvReader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	data.Headers = cleanHeaders(header)

	for {
		record, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}

		line, _ := csvReader.FieldPos(0)
		data.Rows = append(data.Rows, Row{
			Line:   line,
			Values: alignRow(record, len(data.Headers)),
		})
	}

	return data, nil
}

// FromRows builds CSVData from rows that were already split into cells,
// such as the rows of a spreadsheet. The first non-blank row is the header.
// Rows without cells are skipped like blank lines; Line is the 1-based row
// position.
func FromRows(rows [][]string) (*CSVData, error) {
	data := &CSVData{Rows: []Row{}}

	for i, record := range rows {
		if len(record) == 0 {
			continue
		}
		if data.Headers == nil {
			data.Headers = cleanHeaders(record)
			continue
		}
		data.Rows = append(data.Rows, Row{
			Line:   i + 1,
			Values: alignRow(record, len(data.Headers)),
		})
	}

	if data.Headers == nil {
		return nil, ErrEmptyFile
	}
	return data, nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) {
	reader.Comma = Delimiter(settings.Delimiter)

	// Allow variable number of fields per row.
	reader.FieldsPerRecord = -1

	// Allow lazy quotes (quotes that don't follow strict CSV rules).
	reader.LazyQuotes = true

	reader.TrimLeadingSpace = true
}

// Delimiter maps a configured delimiter name to its rune. Names such as
// "tab" and "pipe" are accepted; anything else uses its first character,
// and an empty setting means comma.
func Delimiter(setting string) rune {
	switch setting {
	case "\\t", "\t", "tab", "TAB":
		return '\t'
	case "|", "pipe", "PIPE":
		return '|'
	case ";", "semicolon":
		return ';'
	case "":
		return ','
	default:
		return []rune(setting)[0]
	}
}

// cleanHeaders trims header names and names blank ones after their position.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))

	for i, header := range headers {
		header = strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		cleaned[i] = header
	}

	return cleaned
}

// alignRow trims every cell and pads or truncates the row to width cells.
func alignRow(record []string, width int) []string {
	values := make([]string, width)
	for i := 0; i < width && i < len(record); i++ {
		values[i] = strings.TrimSpace(record[i])
	}
	return values
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// IsMissing reports whether value is one of the missing-value tokens. An
// empty cell is always missing.
func IsMissing(value string, tokens []string) bool {
	if value == "" {
		return true
	}
	for _, token := range tokens {
		if value == token {
			return true
		}
	}
	return false
}

// IsRowEmpty reports whether every cell of the row is missing.
func IsRowEmpty(values []string, tokens []string) bool {
	for _, cell := range values {
		if !IsMissing(cell, tokens) {
			return false
		}
	}
	return true
}
