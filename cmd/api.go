package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/artx/internal/shared"
	"github.com/urfave/cli/v3"
)

// APIGet makes a direct GET request to the artwork API and prints the response body.
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: path (e.g. /artworks?page=1&limit=12)", shared.ErrMissingArgument)
	}
	pretty := cmd.Bool("pretty")

	r.logger.Info("GET request", "path", path)

	resp, err := r.api.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}

	if !resp.OK() {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	}

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, pretty)
	}

	if err := r.writeBytes(resp.Body); err != nil {
		return err
	}
	return r.writePlain("\n")
}
