// =============================================================================
// Sales Analyzer - Command Session
// =============================================================================
//
// Shared setup for the commands that work on a data file: picking the file,
// loading it, and building the aggregator and report header around it.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/ginjaninja78/sales-analyzer/internal/aggregator"
	"github.com/ginjaninja78/sales-analyzer/internal/csvwriter"
	"github.com/ginjaninja78/sales-analyzer/internal/loader"
	"github.com/ginjaninja78/sales-analyzer/internal/report"
	"github.com/ginjaninja78/sales-analyzer/internal/types"
	"github.com/ginjaninja78/sales-analyzer/pkg/utils"
	"github.com/spf13/cobra"
)

// session is one loaded sales file plus the components built around it.
type session struct {
	path    string
	loader  *loader.Loader
	records *types.RecordSet
}

// fileManager returns the file manager for the configured directories.
func fileManager() *utils.FileManager {
	return utils.NewFileManager(appConfig.DataDir, appConfig.OutputDir, appConfig.ReportsDir)
}

// resolveDataFile picks the file to load: --file, then default_file, then
// the only CSV in the data directory.
func resolveDataFile() (string, error) {
	fm := fileManager()

	name := dataFile
	if name == "" {
		name = appConfig.DefaultFile
	}
	if name != "" {
		return fm.ResolveDataFile(name), nil
	}

	files, err := fm.DiscoverDataFiles("")
	if err != nil {
		return "", err
	}
	switch len(files) {
	case 0:
		return "", fmt.Errorf("no CSV files in %s; pass --file", appConfig.DataDir)
	case 1:
		return files[0], nil
	default:
		return "", fmt.Errorf("%d CSV files in %s; pass --file to choose one (see 'files')", len(files), appConfig.DataDir)
	}
}

// openSession resolves and loads the sales file.
func openSession() (*session, error) {
	path, err := resolveDataFile()
	if err != nil {
		return nil, err
	}

	l, err := loader.New(appConfig, appLog)
	if err != nil {
		return nil, err
	}
	records, err := l.Load(path)
	if err != nil {
		return nil, err
	}

	return &session{path: path, loader: l, records: records}, nil
}

// aggregator returns an aggregator over the session's canonical record set,
// so mutations are what Save writes.
func (s *session) aggregator() *aggregator.Aggregator {
	return aggregator.New(s.records,
		aggregator.WithOutputDir(appConfig.OutputDir),
		aggregator.WithLogger(appLog),
		aggregator.WithWriter(csvwriter.New(appConfig.CSVSettings.Delimiter)),
		aggregator.WithAddressPlaceholder(appConfig.AddressPlaceholder),
	)
}

// analysis returns an Analysis header for the session.
func (s *session) analysis(kind string) report.Analysis {
	return report.Analysis{Type: kind, SourceFile: s.path}
}

// render prints the sections of a to the command's output.
func render(cmd *cobra.Command, a report.Analysis) error {
	return report.WriteSections(cmd.OutOrStdout(), a)
}
