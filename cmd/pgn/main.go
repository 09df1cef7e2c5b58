package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/macropower/pgn/internal/cli"
	"github.com/macropower/pgn/pkg/version"
)

func main() {
	err := fang.Execute(context.Background(), cli.NewRootCmd(),
		fang.WithVersion(version.Info()),
		fang.WithErrorHandler(cli.ErrorHandler),
	)
	if err != nil {
		os.Exit(1)
	}
}
