package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/artx/internal/shared"
	"github.com/desertthunder/artx/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal gallery.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.source == nil {
		return fmt.Errorf("%w: artwork source not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, logFile, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	defer logFile.Close()
	shared.SetLogLevel(fileLogger, r.logger.GetLevel())
	r.SetLogger(fileLogger)

	var saver ui.SelectionSaver
	if !cmd.Bool("no-save") {
		repo, closeFn, err := r.selections()
		if err != nil {
			r.logger.Warn("saved selections unavailable", "error", err)
		} else {
			defer closeFn()
			saver = repo
		}
	}

	controller := r.newController()
	defer controller.Close()

	model := ui.NewModel(ctx, controller, saver)
	model.StartAt(cmd.Int("page"))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
