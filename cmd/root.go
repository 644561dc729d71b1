package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ruspoetry/poemset/internal/pipecmd"
)

func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "poemset",
		Short: "Merge and validate poem datasets into a single clean collection",
		Long: `Poemset merges two heterogeneously-schemed poem collections into one
canonical dataset of (author, title, text) records.

Rows are normalized, author names are rewritten to their canonical
"Surname Name Patronymic" form via a curated alias table, exact duplicates
are dropped, and the result is checked against structural invariants
before it is considered usable.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	// Add subcommands
	cmd.AddCommand(pipecmd.NewMergeCmd())
	cmd.AddCommand(pipecmd.NewValidateCmd())

	return cmd
}
