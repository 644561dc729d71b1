// Package pipecmd implements the poemset commands behind the thin
// cobra constructors in cmd/.
package pipecmd

import (
	"fmt"
	"log/slog"

	"github.com/ruspoetry/poemset/internal/authors"
	"github.com/ruspoetry/poemset/internal/dedup"
	"github.com/ruspoetry/poemset/internal/merge"
	"github.com/ruspoetry/poemset/internal/source"
	"github.com/ruspoetry/poemset/internal/validate"
)

type mergeOptions struct {
	poemsPath   string
	themedPath  string
	outputPath  string
	aliasesPath string
	dedupDB     string
	reportPath  string
	reportEvery int
}

func executeMerge(opts mergeOptions) error {
	slog.Info("Starting merge", "poems", opts.poemsPath, "themed", opts.themedPath, "output", opts.outputPath)

	aliases, err := loadAliases(opts.aliasesPath)
	if err != nil {
		return err
	}

	index, err := openIndex(opts.dedupDB)
	if err != nil {
		return err
	}
	defer index.Close()

	poems, err := source.ReadCSV(opts.poemsPath, source.PoemsLayout)
	if err != nil {
		return fmt.Errorf("failed to read poems source: %w", err)
	}
	themed, err := source.ReadCSV(opts.themedPath, source.ThemedLayout)
	if err != nil {
		return fmt.Errorf("failed to read themed source: %w", err)
	}

	merger := merge.New(aliases, index)
	merger.ReportEvery = opts.reportEvery

	dataset, stats, err := merger.Merge(poems, themed)
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}

	if err := source.SaveDataset(dataset, opts.outputPath); err != nil {
		return fmt.Errorf("failed to save dataset: %w", err)
	}
	slog.Info("Dataset written", "path", opts.outputPath, "records", dataset.Len())

	printMergeSummary(stats)

	report := validate.Dataset(dataset)
	printReport(report)

	if opts.reportPath != "" {
		if err := report.SaveYAML(opts.reportPath, opts.outputPath); err != nil {
			return err
		}
		slog.Info("Report saved", "path", opts.reportPath)
	}

	if !report.IsValid() {
		return fmt.Errorf("merged dataset failed validation: %d violation(s)", len(report.Violations))
	}
	return nil
}

func loadAliases(path string) (*authors.Table, error) {
	if path == "" {
		return authors.Default(), nil
	}
	table, err := authors.Load(path)
	if err != nil {
		return nil, err
	}
	slog.Debug("Alias table loaded", "path", path, "entries", table.Len())
	return table, nil
}

func openIndex(path string) (dedup.Index, error) {
	if path == "" {
		return dedup.NewMemory(), nil
	}
	return dedup.OpenSQLite(path)
}
