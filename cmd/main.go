package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/desertthunder/artx/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()

	// config.toml (or --config) is loaded by runner.configure before any action runs.
	runner := NewRunner(RunnerOpts{
		Config:     config,
		HTTPClient: &http.Client{Timeout: config.API.Timeout()},
		Logger:     logger,
	})

	app := &cli.Command{
		Name:    "artx",
		Usage:   "Browse the Art Institute of Chicago collection page by page",
		Version: "0.3.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Before:   runner.configure,
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
