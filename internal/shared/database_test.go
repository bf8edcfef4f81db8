package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDatabase(t *testing.T) {
	t.Run("dsn", func(t *testing.T) {
		tc := []struct {
			path, want string
		}{
			{":memory:", ":memory:?" + sqliteParams},
			{"./artx.db", "./artx.db?" + sqliteParams},
			{"file:artx.db?mode=ro", "file:artx.db?mode=ro&" + sqliteParams},
		}

		for _, tt := range tc {
			if got := dsn(tt.path); got != tt.want {
				t.Errorf("dsn(%q) = %q, want %q", tt.path, got, tt.want)
			}
		}
	})

	t.Run("Foreign Keys Enabled", func(t *testing.T) {
		db := newMemoryDB(t)

		var enabled int
		if err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
			t.Fatalf("failed to read pragma: %v", err)
		}
		if enabled != 1 {
			t.Errorf("expected foreign keys on, got %d", enabled)
		}
	})

	t.Run("Cascade Deletes Items", func(t *testing.T) {
		db := newMemoryDB(t)
		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		_, err := db.Exec(`INSERT INTO selections (id, sequence, name, requested, page_size, created_at, updated_at)
			VALUES ('s1', 1, 'x', 1, 12, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
		if err != nil {
			t.Fatalf("failed to insert selection: %v", err)
		}
		if _, err := db.Exec(`INSERT INTO selection_items (selection_id, position, artwork_id) VALUES ('s1', 0, 7)`); err != nil {
			t.Fatalf("failed to insert item: %v", err)
		}
		if _, err := db.Exec(`DELETE FROM selections WHERE id = 's1'`); err != nil {
			t.Fatalf("failed to delete selection: %v", err)
		}

		var count int
		if err := db.QueryRow(`SELECT COUNT(*) FROM selection_items`).Scan(&count); err != nil {
			t.Fatalf("failed to count items: %v", err)
		}
		if count != 0 {
			t.Errorf("expected items to cascade, got %d", count)
		}
	})

	t.Run("File Database", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "artx.db")
		db, err := NewDatabase(path)
		if err != nil {
			t.Fatalf("failed to open file database: %v", err)
		}
		defer db.Close()

		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected database file at %s: %v", path, err)
		}
	})
}
