package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/desertthunder/artx/internal/models"
	"github.com/desertthunder/artx/internal/shared"
	tu "github.com/desertthunder/artx/internal/testing"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	shared.ConfigureDatabase(db, 1, 1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	for want := 1; want <= 3; want++ {
		got, err := NextSequence(db, "selections")
		if err != nil {
			t.Fatalf("NextSequence failed: %v", err)
		}
		if got != want {
			t.Errorf("expected sequence %d, got %d", want, got)
		}
	}

	if _, err := NextSequence(db, "selections; DROP TABLE selections"); !errors.Is(err, shared.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for unknown table, got %v", err)
	}
}

func TestSelectionRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSelectionRepository(db)
		selection := models.NewSavedSelection(0, "first twenty", 20, 12, tu.MakeArtworks(1, 20))

		if err := repo.Create(selection); err != nil {
			t.Fatalf("failed to create selection: %v", err)
		}

		if selection.ID() == "" {
			t.Error("selection ID should be set after creation")
		}
		if selection.Sequence() != 1 {
			t.Errorf("expected sequence 1, got %d", selection.Sequence())
		}
	})

	t.Run("Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSelectionRepository(db)
		items := tu.MakeArtworks(40, 5)
		items[2].Inscriptions = "signed lower right"
		selection := models.NewSavedSelection(0, "sketches", 5, 12, items)

		if err := repo.Create(selection); err != nil {
			t.Fatalf("failed to create selection: %v", err)
		}

		retrieved, err := repo.Get(selection.ID())
		if err != nil {
			t.Fatalf("failed to get selection: %v", err)
		}

		if retrieved.Name() != "sketches" {
			t.Errorf("expected name sketches, got %s", retrieved.Name())
		}
		if retrieved.Requested() != 5 || retrieved.PageSize() != 12 {
			t.Errorf("unexpected requested/page size: %d/%d", retrieved.Requested(), retrieved.PageSize())
		}
		if !tu.EqualInts(tu.IDs(retrieved.Items()), []int{40, 41, 42, 43, 44}) {
			t.Errorf("items out of order: %v", tu.IDs(retrieved.Items()))
		}
		if retrieved.Items()[2].Inscriptions != "signed lower right" {
			t.Errorf("expected inscriptions to round-trip, got %q", retrieved.Items()[2].Inscriptions)
		}
	})

	t.Run("Resolve", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSelectionRepository(db)
		first := models.NewSavedSelection(0, "alpha", 3, 12, tu.MakeArtworks(1, 3))
		second := models.NewSavedSelection(0, "beta", 3, 12, tu.MakeArtworks(4, 3))
		repo.Create(first)
		repo.Create(second)

		tests := []struct {
			name string
			ref  string
			want string
		}{
			{"by id", second.ID(), second.ID()},
			{"by sequence", "1", first.ID()},
			{"by name", "beta", second.ID()},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := repo.Resolve(tt.ref)
				if err != nil {
					t.Fatalf("Resolve(%q) failed: %v", tt.ref, err)
				}
				if got.ID() != tt.want {
					t.Errorf("Resolve(%q) = %s, want %s", tt.ref, got.ID(), tt.want)
				}
			})
		}

		if _, err := repo.Resolve("gamma"); !errors.Is(err, shared.ErrSelectionNotFound) {
			t.Errorf("expected ErrSelectionNotFound, got %v", err)
		}
	})

	t.Run("Update", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSelectionRepository(db)
		selection := models.NewSavedSelection(0, "draft", 4, 12, tu.MakeArtworks(1, 4))
		if err := repo.Create(selection); err != nil {
			t.Fatalf("failed to create selection: %v", err)
		}

		selection.SetName("final")
		selection.SetItems(tu.MakeArtworks(10, 2))

		if err := repo.Update(selection); err != nil {
			t.Fatalf("failed to update selection: %v", err)
		}

		retrieved, err := repo.Get(selection.ID())
		if err != nil {
			t.Fatalf("failed to get selection: %v", err)
		}
		if retrieved.Name() != "final" {
			t.Errorf("expected name final, got %s", retrieved.Name())
		}
		if !tu.EqualInts(tu.IDs(retrieved.Items()), []int{10, 11}) {
			t.Errorf("expected replaced items, got %v", tu.IDs(retrieved.Items()))
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSelectionRepository(db)
		selection := models.NewSavedSelection(0, "temp", 2, 12, tu.MakeArtworks(1, 2))
		if err := repo.Create(selection); err != nil {
			t.Fatalf("failed to create selection: %v", err)
		}

		if err := repo.Delete(selection.ID()); err != nil {
			t.Fatalf("failed to delete selection: %v", err)
		}

		if _, err := repo.Get(selection.ID()); !errors.Is(err, shared.ErrSelectionNotFound) {
			t.Errorf("expected deleted selection to be hidden, got %v", err)
		}

		var deletedAt sql.NullTime
		if err := db.QueryRow("SELECT deleted_at FROM selections WHERE id = ?", selection.ID()).Scan(&deletedAt); err != nil {
			t.Fatalf("failed to read row: %v", err)
		}
		if !deletedAt.Valid {
			t.Error("expected deleted_at to be set")
		}
	})

	t.Run("List", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSelectionRepository(db)
		names := []string{"one", "two", "one"}
		for i, name := range names {
			s := models.NewSavedSelection(0, name, 2, 12, tu.MakeArtworks(i*10+1, 2))
			if err := repo.Create(s); err != nil {
				t.Fatalf("failed to create selection: %v", err)
			}
		}

		all, err := repo.List(map[string]any{})
		if err != nil {
			t.Fatalf("failed to list selections: %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("expected 3 selections, got %d", len(all))
		}
		for i, s := range all {
			if s.Sequence() != i+1 {
				t.Errorf("expected sequence order, got %d at %d", s.Sequence(), i)
			}
			if s.Count() != 2 {
				t.Errorf("expected items loaded, got %d", s.Count())
			}
		}

		ones, err := repo.List(map[string]any{"name": "one"})
		if err != nil {
			t.Fatalf("failed to list by name: %v", err)
		}
		if len(ones) != 2 {
			t.Errorf("expected 2 selections named one, got %d", len(ones))
		}

		limited, _ := repo.List(map[string]any{"limit": 1})
		if len(limited) != 1 {
			t.Errorf("expected limit to apply, got %d", len(limited))
		}

		if err := repo.Delete(all[0].ID()); err != nil {
			t.Fatalf("failed to delete: %v", err)
		}
		remaining, _ := repo.List(nil)
		if len(remaining) != 2 {
			t.Errorf("expected deleted selection excluded, got %d", len(remaining))
		}
	})
}

func TestSelectionRepositoryErrors(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		t.Run("ValidationError", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewSelectionRepository(db)
			selection := models.NewSavedSelection(0, "  ", 3, 12, nil)

			if err := repo.Create(selection); err == nil {
				t.Fatal("expected validation error for blank name")
			}
		})

		t.Run("TooManyItems", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewSelectionRepository(db)
			selection := models.NewSavedSelection(0, "over", 2, 12, tu.MakeArtworks(1, 3))

			if err := repo.Create(selection); err == nil {
				t.Fatal("expected validation error for more items than requested")
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("NotFound", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewSelectionRepository(db)

			if _, err := repo.Get("nonexistent-id"); !errors.Is(err, shared.ErrSelectionNotFound) {
				t.Fatalf("expected ErrSelectionNotFound, got %v", err)
			}
		})
	})

	t.Run("Update", func(t *testing.T) {
		t.Run("NotFound", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewSelectionRepository(db)
			selection := models.NewSavedSelection(0, "ghost", 1, 12, nil)
			selection.SetID("nonexistent-id")

			if err := repo.Update(selection); !errors.Is(err, shared.ErrSelectionNotFound) {
				t.Fatalf("expected ErrSelectionNotFound, got %v", err)
			}
		})
	})

	t.Run("Delete", func(t *testing.T) {
		t.Run("AlreadyDeleted", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewSelectionRepository(db)
			selection := models.NewSavedSelection(0, "once", 1, 12, tu.MakeArtworks(1, 1))
			repo.Create(selection)

			if err := repo.Delete(selection.ID()); err != nil {
				t.Fatalf("first delete failed: %v", err)
			}
			if err := repo.Delete(selection.ID()); !errors.Is(err, shared.ErrSelectionNotFound) {
				t.Fatalf("expected ErrSelectionNotFound on second delete, got %v", err)
			}
		})
	})
}
