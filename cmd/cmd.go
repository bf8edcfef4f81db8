// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// pageCommand fetches and prints a single page
func pageCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "page",
		Aliases: []string{"p"},
		Usage:   "Fetch one page of artworks",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "page",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Render as csv, markdown, json or txt instead of a table",
			},
			&cli.IntFlag{
				Name:  "width",
				Usage: "Truncate table cells to this many characters (0 keeps full text)",
				Value: 40,
			},
		},
		Action: r.Page,
	}
}

// selectCommand selects the first N rows across pages
func selectCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "select",
		Usage: "Select the first N artworks of the collection",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "count",
			},
		},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "page",
				Usage: "Page to select from when N fits on one page",
				Value: 1,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: csv, markdown, json or txt",
				Value:   "txt",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the export to this path instead of stdout",
			},
			&cli.StringFlag{
				Name:  "save",
				Usage: "Save the selection under this name",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
			},
		},
		Action: r.Select,
	}
}

// selectionsCommand manages saved selections
func selectionsCommand(r *Runner) *cli.Command {
	idArg := func() []cli.Argument {
		return []cli.Argument{&cli.StringArg{Name: "id"}}
	}

	return &cli.Command{
		Name:    "selections",
		Aliases: []string{"sel"},
		Usage:   "Manage saved selections",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List saved selections",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "name",
						Usage: "Only selections with this name",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of selections to list",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print JSON output",
					},
				},
				Action: r.SelectionsList,
			},
			{
				Name:      "show",
				Usage:     "Print a saved selection (by id, sequence number or name)",
				Arguments: idArg(),
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: csv, markdown, json or txt",
						Value:   "txt",
					},
				},
				Action: r.SelectionsShow,
			},
			{
				Name:      "export",
				Usage:     "Write a saved selection to disk",
				Arguments: idArg(),
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, markdown, json or txt",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output path (defaults to a name derived from the selection)",
					},
				},
				Action: r.SelectionsExport,
			},
			{
				Name:  "rename",
				Usage: "Rename a saved selection",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
					&cli.StringArg{Name: "name"},
				},
				Action: r.SelectionsRename,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a saved selection",
				Arguments: idArg(),
				Action:    r.SelectionsDelete,
			},
		},
	}
}

// apiCommand handles direct API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct calls to the artwork API",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET relative to the configured base URL, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
		},
	}
}

// setupCommand handles setup operations for the database and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations (creates --config from the template if missing)",
				Action: r.SetupDatabase,
			},
			{
				Name:   "rollback",
				Usage:  "Revert the most recent database migration",
				Action: r.SetupRollback,
			},
			{
				Name:  "config",
				Usage: "Write the default configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Where to write the file",
						Value:   "config.toml",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive gallery",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "page",
				Usage: "Page to open on",
				Value: 1,
			},
			&cli.BoolFlag{
				Name:  "no-save",
				Usage: "Do not open the database; disables saving selections",
			},
		},
		Action: r.TUI,
	}
}
