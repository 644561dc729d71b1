package pipecmd

import (
	"fmt"
	"log/slog"

	"github.com/ruspoetry/poemset/internal/source"
	"github.com/ruspoetry/poemset/internal/validate"
)

type validateOptions struct {
	datasetPath string
	reportPath  string
}

func executeValidate(opts validateOptions) error {
	slog.Info("Validating dataset", "path", opts.datasetPath)

	dataset, err := source.LoadDataset(opts.datasetPath)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	report := validate.Dataset(dataset)
	printReport(report)

	if opts.reportPath != "" {
		if err := report.SaveYAML(opts.reportPath, opts.datasetPath); err != nil {
			return err
		}
		slog.Info("Report saved", "path", opts.reportPath)
	}

	if !report.IsValid() {
		return fmt.Errorf("dataset failed validation: %d violation(s)", len(report.Violations))
	}
	return nil
}
