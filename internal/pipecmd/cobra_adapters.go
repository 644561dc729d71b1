package pipecmd

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ruspoetry/poemset/internal/merge"
)

// NewMergeCmd creates the merge command: merge both sources, write the
// dataset, then validate it.
func NewMergeCmd() *cobra.Command {
	var opts mergeOptions

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge the two poem collections into one deduplicated dataset",
		Long: `Merge the two raw poem collections into a single canonical dataset.

Rows from each source are extracted through that source's fixed column
mapping (poems: writer,poem,text — themed: author,name,text), normalized,
and deduplicated on the full (author, title, text) content. The merged
dataset is validated before the command exits; validation errors make the
exit status non-zero.`,
		Example: `  # Merge with defaults
  poemset merge --poems data/poems.csv --themed data/russianPoetryWithTheme.csv

  # Write Parquet and keep the dedup index on disk for very large inputs
  poemset merge --poems poems.csv --themed themed.csv \
    --output merged_poems.parquet --dedup-db merged_poems.dedup.sqlite3

  # Save the validation report next to the dataset
  poemset merge --poems poems.csv --themed themed.csv --report report.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeMerge(opts)
		},
	}

	cmd.Flags().StringVar(&opts.poemsPath, "poems", envOr("POEMSET_POEMS_CSV", "data/poems.csv"), "Path to the poems source CSV (writer,poem,text)")
	cmd.Flags().StringVar(&opts.themedPath, "themed", envOr("POEMSET_THEMED_CSV", "data/russianPoetryWithTheme.csv"), "Path to the themed source CSV (author,name,text)")
	cmd.Flags().StringVar(&opts.outputPath, "output", envOr("POEMSET_OUTPUT", "data/merged_poems.csv"), "Output dataset path (.csv or .parquet)")
	cmd.Flags().StringVar(&opts.aliasesPath, "aliases", os.Getenv("POEMSET_AUTHOR_ALIASES"), "Author alias table YAML (defaults to the embedded table)")
	cmd.Flags().StringVar(&opts.dedupDB, "dedup-db", "", "SQLite file for the dedup index (defaults to in-memory)")
	cmd.Flags().StringVar(&opts.reportPath, "report", "", "Save the validation report to this YAML file")
	cmd.Flags().IntVar(&opts.reportEvery, "report-every", envOrInt("POEMSET_REPORT_EVERY", merge.DefaultReportEvery), "Log merge progress every N rows (0 disables)")

	return cmd
}

// NewValidateCmd creates the validate command: check an existing merged
// dataset without re-merging.
func NewValidateCmd() *cobra.Command {
	var opts validateOptions

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an existing merged dataset",
		Long: `Validate an existing merged dataset without re-merging.

Runs every structural check (completeness, uniqueness, author format,
encoding sanity) and prints the full violation report. The exit status is
non-zero when any error-severity violation is found; author-format
findings are warnings and never fail the run.`,
		Example: `  poemset validate --dataset data/merged_poems.csv

  # Validate a Parquet dataset and save the report
  poemset validate --dataset merged_poems.parquet --report report.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeValidate(opts)
		},
	}

	cmd.Flags().StringVar(&opts.datasetPath, "dataset", envOr("POEMSET_OUTPUT", "data/merged_poems.csv"), "Merged dataset to validate (.csv or .parquet)")
	cmd.Flags().StringVar(&opts.reportPath, "report", "", "Save the validation report to this YAML file")

	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
