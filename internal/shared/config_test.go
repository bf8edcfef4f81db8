package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.API.BaseURL != "https://api.artic.edu/api/v1" {
			t.Errorf("expected base URL https://api.artic.edu/api/v1, got %s", config.API.BaseURL)
		}

		if config.API.PageSize != 12 {
			t.Errorf("expected page size 12, got %d", config.API.PageSize)
		}

		if config.API.ClampToLastPage {
			t.Error("expected clamp_to_last_page to default to false")
		}

		if config.API.Timeout() != 0 {
			t.Errorf("expected no timeout, got %v", config.API.Timeout())
		}

		if config.Database.Path != "./artx.db" {
			t.Errorf("expected database path ./artx.db, got %s", config.Database.Path)
		}

		if len(config.API.Fields) != 7 {
			t.Errorf("expected 7 default fields, got %d", len(config.API.Fields))
		}

		if err := config.Validate(); err != nil {
			t.Errorf("default config should be valid: %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.API.BaseURL != defaultConfig.API.BaseURL {
			t.Errorf("created config base URL doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("WriteConfigFile Overwrite", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("# stale\n"), 0644); err != nil {
			t.Fatalf("failed to seed config: %v", err)
		}

		if err := WriteConfigFile(configPath, false); err == nil {
			t.Error("expected refusal without overwrite")
		}
		if err := WriteConfigFile(configPath, true); err != nil {
			t.Fatalf("expected overwrite to succeed, got %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load overwritten config: %v", err)
		}
		if config.API.PageSize != DefaultConfig().API.PageSize {
			t.Errorf("expected template contents, got page_size %d", config.API.PageSize)
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[api]
base_url = "http://localhost:9090/api/v1"
page_size = 25
timeout_seconds = 5
requests_per_second = 2.5
clamp_to_last_page = true

[database]
path = "/custom/path.db"

[log]
level = "debug"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.API.BaseURL != "http://localhost:9090/api/v1" {
			t.Errorf("expected overridden base URL, got %s", config.API.BaseURL)
		}
		if config.API.PageSize != 25 {
			t.Errorf("expected page size 25, got %d", config.API.PageSize)
		}
		if config.API.Timeout() != 5*time.Second {
			t.Errorf("expected 5s timeout, got %v", config.API.Timeout())
		}
		if config.API.RequestsPerSecond != 2.5 {
			t.Errorf("expected 2.5 rps, got %v", config.API.RequestsPerSecond)
		}
		if !config.API.ClampToLastPage {
			t.Error("expected clamp_to_last_page to be true")
		}
		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}
		if config.Database.MaxOpenConns != 1 {
			t.Errorf("expected unset max_open_conns to keep default 1, got %d", config.Database.MaxOpenConns)
		}
		if config.Log.ParsedLevel() != log.DebugLevel {
			t.Errorf("expected debug level, got %v", config.Log.ParsedLevel())
		}
	})

	t.Run("LoadConfig Rejects Invalid Page Size", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[api]\npage_size = 0\n"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		if !errors.Is(err, ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})

	t.Run("ParsedLevel Falls Back To Info", func(t *testing.T) {
		if got := (LogConfig{Level: "loud"}).ParsedLevel(); got != log.InfoLevel {
			t.Errorf("expected info level fallback, got %v", got)
		}
	})
}
