package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/artx/internal/formatter"
	"github.com/desertthunder/artx/internal/shared"
	"github.com/urfave/cli/v3"
)

// selectionSummary is one row of `artx selections list --json`.
type selectionSummary struct {
	ID        string    `json:"id"`
	Sequence  int       `json:"sequence"`
	Name      string    `json:"name"`
	Requested int       `json:"requested"`
	Selected  int       `json:"selected"`
	PageSize  int       `json:"page_size"`
	CreatedAt time.Time `json:"created_at"`
}

// SelectionsList prints saved selections in creation order.
func (r *Runner) SelectionsList(ctx context.Context, cmd *cli.Command) error {
	repo, closeFn, err := r.selections()
	if err != nil {
		return err
	}
	defer closeFn()

	criteria := map[string]any{}
	if name := cmd.String("name"); name != "" {
		criteria["name"] = name
	}
	if limit := cmd.Int("limit"); limit > 0 {
		criteria["limit"] = limit
	}

	saved, err := repo.List(criteria)
	if err != nil {
		return fmt.Errorf("failed to list selections: %w", err)
	}

	if cmd.Bool("json") {
		out := make([]selectionSummary, 0, len(saved))
		for _, s := range saved {
			out = append(out, selectionSummary{
				ID:        s.ID(),
				Sequence:  s.Sequence(),
				Name:      s.Name(),
				Requested: s.Requested(),
				Selected:  s.Count(),
				PageSize:  s.PageSize(),
				CreatedAt: s.CreatedAt(),
			})
		}
		return r.writeJSON(out, cmd.Bool("pretty"))
	}

	if len(saved) == 0 {
		return r.writePlain("No saved selections.\n")
	}

	for _, s := range saved {
		r.writePlain("#%-4d %-36s %-24s %d/%d rows  %s\n",
			s.Sequence(), s.ID(), s.Name(), s.Count(), s.Requested(), s.CreatedAt().Format(time.DateTime))
	}
	return nil
}

// SelectionsShow prints one saved selection, looked up by UUID, sequence number, or name.
func (r *Runner) SelectionsShow(ctx context.Context, cmd *cli.Command) error {
	ref := strings.TrimSpace(cmd.StringArg("id"))
	if ref == "" {
		return fmt.Errorf("%w: selection id, sequence or name", shared.ErrMissingArgument)
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	repo, closeFn, err := r.selections()
	if err != nil {
		return err
	}
	defer closeFn()

	saved, err := repo.Resolve(ref)
	if err != nil {
		return fmt.Errorf("%w: %s", err, ref)
	}

	data, err := formatter.Render(formatter.FromSelection(saved), format)
	if err != nil {
		return err
	}
	return r.writeBytes(data)
}

// SelectionsExport writes a saved selection to disk in the requested format.
func (r *Runner) SelectionsExport(ctx context.Context, cmd *cli.Command) error {
	ref := strings.TrimSpace(cmd.StringArg("id"))
	if ref == "" {
		return fmt.Errorf("%w: selection id, sequence or name", shared.ErrMissingArgument)
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	repo, closeFn, err := r.selections()
	if err != nil {
		return err
	}
	defer closeFn()

	saved, err := repo.Resolve(ref)
	if err != nil {
		return fmt.Errorf("%w: %s", err, ref)
	}

	r.logger.Info("exporting selection", "id", saved.ID(), "format", format)

	files, err := formatter.WriteExport(formatter.FromSelection(saved), format, cmd.String("output"))
	if err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	for _, f := range files {
		r.writePlain("✓ Wrote %s\n", f)
	}
	return nil
}

// SelectionsRename gives a saved selection a new name, keeping its rows.
func (r *Runner) SelectionsRename(ctx context.Context, cmd *cli.Command) error {
	ref := strings.TrimSpace(cmd.StringArg("id"))
	name := strings.TrimSpace(cmd.StringArg("name"))
	if ref == "" || name == "" {
		return fmt.Errorf("%w: selection id and new name", shared.ErrMissingArgument)
	}

	repo, closeFn, err := r.selections()
	if err != nil {
		return err
	}
	defer closeFn()

	saved, err := repo.Resolve(ref)
	if err != nil {
		return fmt.Errorf("%w: %s", err, ref)
	}

	old := saved.Name()
	saved.SetName(name)
	if err := repo.Update(saved); err != nil {
		return fmt.Errorf("failed to rename selection: %w", err)
	}

	r.logger.Info("selection renamed", "id", saved.ID(), "from", old, "to", name)
	return r.writePlain("✓ Renamed %s to %s (%s)\n", old, name, saved.ID())
}

// SelectionsDelete soft-deletes a saved selection.
func (r *Runner) SelectionsDelete(ctx context.Context, cmd *cli.Command) error {
	ref := strings.TrimSpace(cmd.StringArg("id"))
	if ref == "" {
		return fmt.Errorf("%w: selection id, sequence or name", shared.ErrMissingArgument)
	}

	repo, closeFn, err := r.selections()
	if err != nil {
		return err
	}
	defer closeFn()

	saved, err := repo.Resolve(ref)
	if err != nil {
		return fmt.Errorf("%w: %s", err, ref)
	}

	if err := repo.Delete(saved.ID()); err != nil {
		return fmt.Errorf("failed to delete selection: %w", err)
	}

	r.logger.Info("selection deleted", "id", saved.ID(), "name", saved.Name())
	return r.writePlain("✓ Deleted %s (%s)\n", saved.Name(), saved.ID())
}
