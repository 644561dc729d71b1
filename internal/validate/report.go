package validate

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// yamlSummary is the summary section of a saved report.
type yamlSummary struct {
	Timestamp     string `yaml:"timestamp"`
	Dataset       string `yaml:"dataset"`
	Rows          int    `yaml:"rows"`
	UniqueAuthors int    `yaml:"unique_authors"`
	Valid         bool   `yaml:"valid"`
	Errors        int    `yaml:"errors"`
	Warnings      int    `yaml:"warnings"`
}

// yamlViolation is one violation entry in a saved report.
type yamlViolation struct {
	Check    string `yaml:"check"`
	Severity string `yaml:"severity"`
	Row      int    `yaml:"row"`
	Field    string `yaml:"field,omitempty"`
	Detail   string `yaml:"detail"`
}

type yamlReport struct {
	Summary    yamlSummary     `yaml:"summary"`
	Violations []yamlViolation `yaml:"violations"`
}

// SaveYAML writes the report to a YAML file for later inspection.
// The dataset label records which file was validated.
func (r *Report) SaveYAML(path, dataset string) error {
	errors := 0
	warnings := 0
	for _, v := range r.Violations {
		if v.Severity == SeverityError {
			errors++
		} else {
			warnings++
		}
	}

	doc := yamlReport{
		Summary: yamlSummary{
			Timestamp:     time.Now().Format("2006-01-02_15-04-05"),
			Dataset:       dataset,
			Rows:          r.Rows,
			UniqueAuthors: r.UniqueAuthors,
			Valid:         r.IsValid(),
			Errors:        errors,
			Warnings:      warnings,
		},
		Violations: make([]yamlViolation, 0, len(r.Violations)),
	}
	for _, v := range r.Violations {
		doc.Violations = append(doc.Violations, yamlViolation{
			Check:    v.Check,
			Severity: string(v.Severity),
			Row:      v.Row,
			Field:    v.Field,
			Detail:   v.Detail,
		})
	}

	raw, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
