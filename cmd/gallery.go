package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/artx/internal/formatter"
	"github.com/desertthunder/artx/internal/gallery"
	"github.com/desertthunder/artx/internal/models"
	"github.com/desertthunder/artx/internal/shared"
	"github.com/desertthunder/artx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// pageOutput is the JSON shape printed by `artx page --json`.
type pageOutput struct {
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages,omitempty"`
	Records    []models.Artwork `json:"records"`
}

// selectOutput is the JSON shape printed by `artx select --json`.
type selectOutput struct {
	Requested int              `json:"requested"`
	Selected  int              `json:"selected"`
	Pages     int              `json:"pages"`
	SavedID   string           `json:"saved_id,omitempty"`
	Records   []models.Artwork `json:"records"`
}

// Page fetches one page of the collection and prints it.
func (r *Runner) Page(ctx context.Context, cmd *cli.Command) error {
	page, err := parsePositive(cmd.StringArg("page"), 1, shared.ErrInvalidPage)
	if err != nil {
		return err
	}

	c := r.newController()
	defer c.Close()

	r.logger.Info("loading page", "page", page)
	if err := c.LoadPage(ctx, page); err != nil {
		return fmt.Errorf("failed to load page %d: %w", page, err)
	}

	snap := c.Snapshot()

	if cmd.Bool("json") {
		return r.writeJSON(pageOutput{
			Page:       snap.CurrentPage,
			PageSize:   snap.PageSize,
			TotalPages: snap.TotalPages,
			Records:    snap.Records,
		}, cmd.Bool("pretty"))
	}

	if f := cmd.String("format"); f != "" {
		format, err := formatter.ParseFormat(f)
		if err != nil {
			return err
		}
		label := formatter.PageLabel(snap.CurrentPage, snap.TotalPages)
		data, err := formatter.Render(formatter.NewExport(label, max(len(snap.Records), 1), snap.PageSize, snap.Records), format)
		if err != nil {
			return err
		}
		return r.writeBytes(data)
	}

	r.writePlain("%s\n", formatter.PageLabel(snap.CurrentPage, snap.TotalPages))
	if len(snap.Records) == 0 {
		return r.writePlain("No artworks on this page.\n")
	}
	return r.writePlain("%s\n", formatter.RenderTable(snap.Records, nil, cmd.Int("width")))
}

// Select selects the first N rows of the collection and prints, exports or saves them.
//
// Counts up to the page size select from the page given by --page; larger counts fetch pages 1..ceil(N/pageSize).
func (r *Runner) Select(ctx context.Context, cmd *cli.Command) error {
	n, err := strconv.Atoi(strings.TrimSpace(cmd.StringArg("count")))
	if err != nil {
		return fmt.Errorf("%w: count must be a number", shared.ErrInvalidCount)
	}
	if n <= 0 {
		return fmt.Errorf("%w: %d", shared.ErrInvalidCount, n)
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	c := r.newController()
	defer c.Close()

	pages := 0
	if n <= c.PageSize() {
		page := max(cmd.Int("page"), 1)
		if err := c.LoadPage(ctx, page); err != nil {
			return fmt.Errorf("failed to load page %d: %w", page, err)
		}
	} else {
		pages = tasks.PagesNeeded(n, c.PageSize())
		r.logger.Info("collecting rows across pages", "requested", n, "pages", pages)
	}

	progress := make(chan tasks.ProgressUpdate, 32)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Debug(update.Message, "phase", update.Phase, "step", update.Step, "total", update.Total)
		}
	}()

	selected, err := c.RequestBulkSelectionWithProgress(ctx, n, progress)
	close(progress)
	<-done
	if err != nil {
		return fmt.Errorf("bulk selection failed: %w", err)
	}

	records := c.Selection()
	if selected < n {
		r.logger.Warn("fewer rows than requested", "requested", n, "selected", selected)
	}

	out := selectOutput{Requested: n, Selected: selected, Pages: pages, Records: records}

	if name := strings.TrimSpace(cmd.String("save")); name != "" {
		saved, err := r.saveSelection(name, n, c, records)
		if err != nil {
			return err
		}
		out.SavedID = saved.ID()
		r.logger.Info("selection saved", "id", saved.ID(), "sequence", saved.Sequence(), "name", saved.Name())
	}

	if cmd.Bool("json") {
		return r.writeJSON(out, cmd.Bool("pretty"))
	}

	name := cmd.String("save")
	if name == "" {
		name = fmt.Sprintf("First %d artworks", n)
	}
	export := formatter.NewExport(name, n, c.PageSize(), records)

	if path := cmd.String("output"); path != "" {
		files, err := formatter.WriteExport(export, format, path)
		if err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		for _, f := range files {
			r.writePlain("✓ Wrote %s\n", f)
		}
		return nil
	}

	data, err := formatter.Render(export, format)
	if err != nil {
		return err
	}
	return r.writeBytes(data)
}

func (r *Runner) saveSelection(name string, requested int, c *gallery.Controller, records []models.Artwork) (*models.SavedSelection, error) {
	repo, closeFn, err := r.selections()
	if err != nil {
		return nil, err
	}
	defer closeFn()

	saved := models.NewSavedSelection(0, name, requested, c.PageSize(), records)
	if err := repo.Create(saved); err != nil {
		return nil, fmt.Errorf("failed to save selection: %w", err)
	}
	return saved, nil
}

// parsePositive parses s as a positive integer, returning def when s is empty.
func parsePositive(s string, def int, sentinel error) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q", sentinel, s)
	}
	return n, nil
}
