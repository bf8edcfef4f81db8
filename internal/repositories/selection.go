package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/desertthunder/artx/internal/models"
	"github.com/desertthunder/artx/internal/shared"
)

var _ models.Repository[*models.SavedSelection] = (*SelectionRepository)(nil)

const selectionColumns = `id, sequence, name, requested, page_size, created_at, updated_at, deleted_at`

// SelectionRepository implements models.Repository[*models.SavedSelection] for saved selections.
//
// A selection row owns an ordered list of selection_items; both are written in one transaction.
type SelectionRepository struct {
	db *sql.DB
}

// NewSelectionRepository creates a new SelectionRepository with the given database connection
func NewSelectionRepository(db *sql.DB) *SelectionRepository {
	return &SelectionRepository{db: db}
}

// Create inserts a new selection and its items with generated ID and sequence
func (r *SelectionRepository) Create(selection *models.SavedSelection) error {
	if err := selection.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "selections")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO selections (id, sequence, name, requested, page_size, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = tx.Exec(query,
		id,
		sequence,
		selection.Name(),
		selection.Requested(),
		selection.PageSize(),
		selection.CreatedAt(),
		selection.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert selection: %w", err)
	}

	if err := insertItems(tx, id, selection.Items()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit selection: %w", err)
	}

	selection.SetID(id)
	selection.SetSequence(sequence)
	return nil
}

// Get retrieves a selection and its items by ID, excluding soft-deleted selections
func (r *SelectionRepository) Get(id string) (*models.SavedSelection, error) {
	query := `SELECT ` + selectionColumns + ` FROM selections WHERE id = ? AND deleted_at IS NULL`
	return r.getOne(query, id)
}

// GetBySequence retrieves a selection by its sequence number
func (r *SelectionRepository) GetBySequence(sequence int) (*models.SavedSelection, error) {
	query := `SELECT ` + selectionColumns + ` FROM selections WHERE sequence = ? AND deleted_at IS NULL`
	return r.getOne(query, sequence)
}

// GetByName retrieves the most recently created selection with the given name
func (r *SelectionRepository) GetByName(name string) (*models.SavedSelection, error) {
	query := `
		SELECT ` + selectionColumns + `
		FROM selections
		WHERE name = ? AND deleted_at IS NULL
		ORDER BY sequence DESC
		LIMIT 1
	`
	return r.getOne(query, name)
}

// Resolve looks a selection up by UUID, then by sequence number, then by name.
func (r *SelectionRepository) Resolve(ref string) (*models.SavedSelection, error) {
	selection, err := r.Get(ref)
	if err == nil || !errors.Is(err, shared.ErrSelectionNotFound) {
		return selection, err
	}

	if seq, convErr := strconv.Atoi(ref); convErr == nil {
		selection, err = r.GetBySequence(seq)
		if err == nil || !errors.Is(err, shared.ErrSelectionNotFound) {
			return selection, err
		}
	}

	return r.GetByName(ref)
}

// Update renames a selection and replaces its items
func (r *SelectionRepository) Update(selection *models.SavedSelection) error {
	if err := selection.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE selections
		SET name = ?, requested = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := tx.Exec(query, selection.Name(), selection.Requested(), now, selection.ID())
	if err != nil {
		return fmt.Errorf("failed to update selection: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrSelectionNotFound, selection.ID())
	}

	if _, err := tx.Exec(`DELETE FROM selection_items WHERE selection_id = ?`, selection.ID()); err != nil {
		return fmt.Errorf("failed to clear selection items: %w", err)
	}
	if err := insertItems(tx, selection.ID(), selection.Items()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit selection: %w", err)
	}

	selection.SetUpdatedAt(now)
	return nil
}

// Delete soft-deletes a selection by ID
func (r *SelectionRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE selections
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete selection: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrSelectionNotFound, id)
	}

	return nil
}

// List retrieves all selections matching the given criteria, excluding soft-deleted selections.
//
// Supported criteria: "name" (string, exact match) and "limit" (int).
func (r *SelectionRepository) List(criteria map[string]any) ([]*models.SavedSelection, error) {
	query := `SELECT ` + selectionColumns + ` FROM selections WHERE deleted_at IS NULL`

	args := []any{}

	if name, ok := criteria["name"].(string); ok && name != "" {
		query += " AND name = ?"
		args = append(args, name)
	}

	query += " ORDER BY sequence ASC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query selections: %w", err)
	}

	var selections []*models.SavedSelection
	for rows.Next() {
		selection, err := scanSelection(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		selections = append(selections, selection)
	}

	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	rows.Close()

	// Items are loaded after the cursor is closed so a single-connection pool is not held twice.
	for _, selection := range selections {
		items, err := r.items(selection.ID())
		if err != nil {
			return nil, err
		}
		selection.SetItems(items)
	}

	return selections, nil
}

func (r *SelectionRepository) getOne(query string, arg any) (*models.SavedSelection, error) {
	selection, err := scanSelection(r.db.QueryRow(query, arg))
	if err != nil {
		return nil, err
	}

	items, err := r.items(selection.ID())
	if err != nil {
		return nil, err
	}
	selection.SetItems(items)

	return selection, nil
}

// items loads the artworks of a selection in position order
func (r *SelectionRepository) items(selectionID string) ([]models.Artwork, error) {
	query := `
		SELECT artwork_id, title, place_of_origin, artist_display, inscriptions, date_start, date_end
		FROM selection_items
		WHERE selection_id = ?
		ORDER BY position ASC
	`

	rows, err := r.db.Query(query, selectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query selection items: %w", err)
	}
	defer rows.Close()

	items := []models.Artwork{}
	for rows.Next() {
		var a models.Artwork
		if err := rows.Scan(&a.ID, &a.Title, &a.PlaceOfOrigin, &a.ArtistDisplay, &a.Inscriptions, &a.DateStart, &a.DateEnd); err != nil {
			return nil, fmt.Errorf("failed to scan selection item: %w", err)
		}
		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return items, nil
}

func insertItems(tx *sql.Tx, selectionID string, items []models.Artwork) error {
	stmt, err := tx.Prepare(`
		INSERT INTO selection_items (selection_id, position, artwork_id, title, place_of_origin, artist_display, inscriptions, date_start, date_end)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare item insert: %w", err)
	}
	defer stmt.Close()

	for i, a := range items {
		if _, err := stmt.Exec(selectionID, i, a.ID, a.Title, a.PlaceOfOrigin, a.ArtistDisplay, a.Inscriptions, a.DateStart, a.DateEnd); err != nil {
			return fmt.Errorf("failed to insert item %d (artwork %d): %w", i, a.ID, err)
		}
	}

	return nil
}

// scanner is satisfied by both [sql.Row] and [sql.Rows]
type scanner interface {
	Scan(dest ...any) error
}

// scanSelection scans a selection row into a [models.SavedSelection] without its items
func scanSelection(row scanner) (*models.SavedSelection, error) {
	var (
		id        string
		sequence  int
		name      string
		requested int
		pageSize  int
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := row.Scan(&id, &sequence, &name, &requested, &pageSize, &createdAt, &updatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrSelectionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan selection: %w", err)
	}

	selection := models.NewSavedSelection(sequence, name, requested, pageSize, nil)
	selection.SetID(id)
	selection.SetCreatedAt(createdAt)
	selection.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		selection.SetDeletedAt(&deletedAt.Time)
	}

	return selection, nil
}
