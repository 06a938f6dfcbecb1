// =============================================================================
// Sales Analyzer - Report Exporter
// =============================================================================
//
// Writes analyses into the reports directory as .txt and .xlsx files.
//
// OUTPUT:
//   reports/analysis_results_full_20240115_143022.txt
//   reports/analysis_results_full_20240115_143022.xlsx
//
// =============================================================================

package report

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ginjaninja78/sales-analyzer/internal/logger"
	"github.com/ginjaninja78/sales-analyzer/pkg/utils"
)

// Exporter writes reports into a directory.
type Exporter struct {
	dir        string
	nameFormat string
	logger     *logger.Logger
}

// NewExporter creates an Exporter. nameFormat uses the placeholders of
// utils.GenerateReportFileName; an empty format means
// "analysis_results_{type}_{timestamp}".
func NewExporter(dir, nameFormat string, log *logger.Logger) *Exporter {
	if nameFormat == "" {
		nameFormat = "analysis_results_{type}_{timestamp}"
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Exporter{dir: dir, nameFormat: nameFormat, logger: log.With("component", "report")}
}

// ExportText writes a as a text report and returns its path.
func (e *Exporter) ExportText(a Analysis) (path string, err error) {
	path, err = e.prepare(a, ".txt")
	if err != nil {
		return "", err
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close report: %w", closeErr)
		}
	}()

	w := bufio.NewWriter(file)
	if err := WriteText(w, a); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush report: %w", err)
	}

	e.logger.Info("report exported", "path", path, "type", a.Type)
	return path, nil
}

// ExportWorkbook writes a as an XLSX workbook and returns its path.
func (e *Exporter) ExportWorkbook(a Analysis) (string, error) {
	path, err := e.prepare(a, ".xlsx")
	if err != nil {
		return "", err
	}

	f, err := BuildWorkbook(a)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}

	e.logger.Info("workbook exported", "path", path, "type", a.Type)
	return path, nil
}

// prepare ensures the reports directory exists and returns the target path.
func (e *Exporter) prepare(a Analysis, ext string) (string, error) {
	if err := utils.EnsureDir(e.dir); err != nil {
		return "", err
	}
	name := utils.GenerateReportFileName(e.nameFormat, map[string]string{
		"type":     a.Type,
		"original": a.SourceFile,
	}, ext)
	return filepath.Join(e.dir, name), nil
}
