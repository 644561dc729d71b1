package validate

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestSaveYAML(t *testing.T) {
	report := &Report{
		Rows:          2,
		UniqueAuthors: 2,
		Violations: []Violation{
			{Check: CheckCompleteness, Severity: SeverityError, Row: 1, Field: "text", Detail: "field is empty"},
			{Check: CheckAuthorFormat, Severity: SeverityWarning, Row: 0, Field: "author", Detail: "single token"},
		},
	}

	path := filepath.Join(t.TempDir(), "report.yaml")
	if err := report.SaveYAML(path, "merged_poems.csv"); err != nil {
		t.Fatalf("SaveYAML returned error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}

	var doc struct {
		Summary struct {
			Dataset  string `yaml:"dataset"`
			Rows     int    `yaml:"rows"`
			Valid    bool   `yaml:"valid"`
			Errors   int    `yaml:"errors"`
			Warnings int    `yaml:"warnings"`
		} `yaml:"summary"`
		Violations []struct {
			Check string `yaml:"check"`
			Row   int    `yaml:"row"`
		} `yaml:"violations"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("report is not valid YAML: %v", err)
	}

	if doc.Summary.Dataset != "merged_poems.csv" {
		t.Errorf("Expected dataset label, got %q", doc.Summary.Dataset)
	}
	if doc.Summary.Valid {
		t.Errorf("Expected valid=false with an error-severity violation")
	}
	if doc.Summary.Errors != 1 || doc.Summary.Warnings != 1 {
		t.Errorf("Expected 1 error and 1 warning, got %d/%d", doc.Summary.Errors, doc.Summary.Warnings)
	}
	if len(doc.Violations) != 2 {
		t.Errorf("Expected 2 violations, got %d", len(doc.Violations))
	}
}
