// =============================================================================
// Sales Analyzer - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the analyzer, including:
//   - Directory management (data, output and reports directories)
//   - Source file discovery
//   - Output file naming ("<name>_updated.csv", report names)
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UpdatedSuffix is appended to the stem of saved record sets.
const UpdatedSuffix = "_updated"

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager resolves the analyzer's working directories.
type FileManager struct {
	// DataDir is the directory scanned for source files.
	DataDir string

	// OutputDir is the directory where updated record sets are saved.
	OutputDir string

	// ReportsDir is the directory where analysis reports are written.
	ReportsDir string
}

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(dataDir, outputDir, reportsDir string) *FileManager {
	return &FileManager{
		DataDir:    dataDir,
		OutputDir:  outputDir,
		ReportsDir: reportsDir,
	}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates all working directories if they don't exist.
func (fm *FileManager) EnsureDirectories() error {
	for _, dir := range []string{fm.DataDir, fm.OutputDir, fm.ReportsDir} {
		if err := EnsureDir(dir); err != nil {
			return err
		}
	}
	return nil
}

// EnsureDir creates dir and its parents if they don't exist.
func EnsureDir(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DataFilePatterns are the globs matched when no pattern is given.
var DataFilePatterns = []string{"*.csv", "*.xlsx"}

// DiscoverDataFiles lists the files in the data directory matching pattern,
// sorted by name.
//
// PARAMETERS:
//   - pattern: A glob pattern to match files (e.g., "*.csv").
//     If empty, CSV exports and Excel workbooks are both listed.
//
// RETURNS:
//   - A slice of file paths. A missing data directory yields an empty slice.
//   - An error if the pattern is malformed.
func (fm *FileManager) DiscoverDataFiles(pattern string) ([]string, error) {
	patterns := DataFilePatterns
	if pattern != "" {
		patterns = []string{pattern}
	}

	result := []string{}
	for _, p := range patterns {
		files, err := filepath.Glob(filepath.Join(fm.DataDir, p))
		if err != nil {
			return nil, fmt.Errorf("failed to scan data directory: %w", err)
		}
		for _, file := range files {
			info, err := os.Stat(file)
			if err != nil || info.IsDir() {
				continue
			}
			result = append(result, file)
		}
	}
	sort.Strings(result)

	return result, nil
}

// ResolveDataFile returns name unchanged when it is absolute or names an
// existing file, and joins it to the data directory otherwise.
func (fm *FileManager) ResolveDataFile(name string) string {
	if name == "" || filepath.IsAbs(name) || FileExists(name) {
		return name
	}
	return filepath.Join(fm.DataDir, name)
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// UpdatedFileName returns the base name used when saving a modified copy of
// originalPath. Saved copies are always delimited text, so a workbook source
// gets a .csv name.
//
// EXAMPLE:
//   "data/sales.csv"         -> "sales_updated.csv"
//   "data/sales_updated.csv" -> "sales_updated.csv"
//   "data/q1.xlsx"           -> "q1_updated.csv"
//   "exports/sales"          -> "sales_updated.csv"
func UpdatedFileName(originalPath string) string {
	base := filepath.Base(originalPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	if ext == "" || IsWorkbook(base) {
		ext = ".csv"
	}
	if !strings.HasSuffix(stem, UpdatedSuffix) {
		stem += UpdatedSuffix
	}

	return stem + ext
}

// IsWorkbook reports whether path names an Excel workbook.
func IsWorkbook(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return true
	default:
		return false
	}
}

// GenerateReportFileName generates a report file name.
//
// PARAMETERS:
//   - format: The format string for the file name.
//     Placeholders:
//       {uuid}      - A random UUID
//       {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//       {date}      - Current date (YYYYMMDD)
//       {time}      - Current time (HHMMSS)
//       {type}      - Analysis type
//       {original}  - Source file name (without extension)
//   - params: A map of placeholder values ("type", "original", ...).
//   - ext: The extension to ensure, including the dot (".txt", ".xlsx").
//
// RETURNS:
//   - The generated file name.
//
// EXAMPLE:
//   format: "analysis_results_{type}_{timestamp}"
//   params: {"type": "summary"}
//   output: "analysis_results_summary_20240115_143022.txt"
func GenerateReportFileName(format string, params map[string]string, ext string) string {
	return generateFileName(format, params, ext, time.Now())
}

func generateFileName(format string, params map[string]string, ext string, now time.Time) string {
	replacements := map[string]string{
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}
	if strings.Contains(format, "{uuid}") {
		replacements["{uuid}"] = uuid.New().String()
	}

	for key, value := range params {
		if key == "original" && value != "" {
			value = strings.TrimSuffix(filepath.Base(value), filepath.Ext(value))
		}
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if ext != "" && !strings.HasSuffix(strings.ToLower(result), strings.ToLower(ext)) {
		result += ext
	}

	return result
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
