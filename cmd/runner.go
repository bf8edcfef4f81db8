package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/artx/internal/gallery"
	"github.com/desertthunder/artx/internal/repositories"
	"github.com/desertthunder/artx/internal/services"
	"github.com/desertthunder/artx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	source     services.ArtworkSource
	api        *services.APIService
	httpClient *http.Client
	db         *sql.DB
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Source     services.ArtworkSource // Defaults to an [services.ArticService] over API
	API        *services.APIService
	HTTPClient *http.Client
	DB         *sql.DB // Pre-opened database; when nil one is opened from config per command
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		source:     opts.Source,
		api:        opts.API,
		httpClient: opts.HTTPClient,
		db:         opts.DB,
		logger:     opts.Logger,
		output:     opts.Output,
	}
	r.wireServices()
	return r
}

// wireServices builds the API client and artwork source from config unless they were injected.
func (r *Runner) wireServices() {
	if r.api == nil {
		r.api = services.NewAPIService(r.config.API.BaseURL, r.httpClient)
		r.api.SetRateLimit(r.config.API.RequestsPerSecond)
	}
	if r.source == nil {
		r.source = services.NewArticService(r.api, r.config.API.Fields)
	}
}

// SetLogger replaces the logger used by subsequent actions.
func (r *Runner) SetLogger(l *log.Logger) { r.logger = l }

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		pageCommand, selectCommand, selectionsCommand, apiCommand, setupCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// configure runs before every command: it loads --config when present and applies log settings.
func (r *Runner) configure(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := cmd.String("config")
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			config, err := shared.LoadConfig(path)
			if err != nil {
				return ctx, err
			}
			r.config = config
			r.configPath = path
			r.httpClient = &http.Client{Timeout: config.API.Timeout(), Transport: r.httpClient.Transport}
			r.api = nil
			r.source = nil
			r.wireServices()
		} else if cmd.IsSet("config") {
			r.logger.Warn("config file not found, using defaults", "path", path)
		}
	}

	shared.SetLogLevel(r.logger, r.config.Log.ParsedLevel())
	if cmd.Bool("debug") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	r.logger.Debug("configured", "config", r.configPath, "base_url", r.api.BaseURL(), "page_size", r.config.API.PageSize)
	return ctx, nil
}

// newController creates a gallery controller over the configured source.
func (r *Runner) newController() *gallery.Controller {
	return gallery.NewController(r.source, gallery.Options{
		PageSize:        r.config.API.PageSize,
		ClampToLastPage: r.config.API.ClampToLastPage,
		Logger:          r.logger,
	})
}

// openDatabase returns the injected database or opens and migrates the configured one.
//
// The returned func closes a database opened here and is a no-op for an injected one.
func (r *Runner) openDatabase() (*sql.DB, func(), error) {
	if r.db != nil {
		return r.db, func() {}, nil
	}

	db, closeFn, err := r.connect()
	if err != nil {
		return nil, nil, err
	}

	if err := shared.RunMigrations(db); err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, closeFn, nil
}

// connect returns the injected database or opens the configured one without migrating it.
func (r *Runner) connect() (*sql.DB, func(), error) {
	if r.db != nil {
		return r.db, func() {}, nil
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	return db, func() { db.Close() }, nil
}

// selections opens the saved selection repository.
func (r *Runner) selections() (*repositories.SelectionRepository, func(), error) {
	db, closeFn, err := r.openDatabase()
	if err != nil {
		return nil, nil, err
	}
	return repositories.NewSelectionRepository(db), closeFn, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writeBytes(data []byte) error {
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
