package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/ruspoetry/poemset/cmd"
)

const version = "0.2.0"

func main() {
	root := cmd.NewRootCmd()

	// fang wraps the root command with --version, shell completions,
	// manpage generation and signal-aware cancellation.
	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}
