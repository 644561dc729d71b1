// Package authors canonicalizes poet names against a hand-curated alias
// table. The table maps known variants (alternate orderings, initials,
// transliterations, misspellings) to one canonical "Surname Name
// Patronymic" form and is append-only data, not code.
package authors

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ruspoetry/poemset/internal/normalize"
)

//go:embed aliases.yaml
var embeddedAliases []byte

// Table is the alias → canonical lookup used by author normalization.
type Table struct {
	aliases map[string]string
}

// Default returns the table built from the embedded alias resource.
func Default() *Table {
	t, err := parse(embeddedAliases)
	if err != nil {
		// The embedded resource is validated by tests; a parse failure
		// here means a broken build, not bad user input.
		panic(fmt.Sprintf("authors: embedded alias table: %v", err))
	}
	return t
}

// Load reads an alias table from a YAML file on disk, replacing the
// embedded resource for this run.
func Load(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read alias table: %w", err)
	}
	t, err := parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse alias table %s: %w", path, err)
	}
	return t, nil
}

func parse(raw []byte) (*Table, error) {
	var doc struct {
		Aliases map[string]string `yaml:"aliases"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if doc.Aliases == nil {
		doc.Aliases = map[string]string{}
	}
	return &Table{aliases: doc.Aliases}, nil
}

// Lookup returns the canonical name for a known alias. The match is
// exact and case-sensitive; callers collapse whitespace first.
func (t *Table) Lookup(name string) (string, bool) {
	canonical, ok := t.aliases[name]
	return canonical, ok
}

// Canonical trims and whitespace-normalizes a raw author string, then
// rewrites it through the alias table. Unknown names pass through
// cleaned but otherwise unchanged. Idempotent: canonical values are
// fixed points of the table.
func (t *Table) Canonical(raw string) string {
	cleaned := normalize.Whitespace(raw)
	if canonical, ok := t.aliases[cleaned]; ok {
		return canonical
	}
	return cleaned
}

// Len returns the number of alias entries.
func (t *Table) Len() int {
	return len(t.aliases)
}
