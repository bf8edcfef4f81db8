package models

import (
	"errors"
	"strings"
	"time"
)

var _ Model = (*SavedSelection)(nil)

// SavedSelection is a named, persisted snapshot of selected artworks.
//
// Items keep the order in which they were selected. Saved selections are
// soft-deleted and excluded from lookups once deleted.
type SavedSelection struct {
	id        string
	sequence  int
	name      string
	requested int
	pageSize  int
	items     []Artwork
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewSavedSelection creates a selection snapshot with creation timestamps set to now.
//
// requested is the row count the user asked for; it may exceed len(items) when
// the collection ran short or a page failed to load.
func NewSavedSelection(sequence int, name string, requested, pageSize int, items []Artwork) *SavedSelection {
	now := time.Now()
	copied := make([]Artwork, len(items))
	copy(copied, items)

	return &SavedSelection{
		sequence:  sequence,
		name:      strings.TrimSpace(name),
		requested: requested,
		pageSize:  pageSize,
		items:     copied,
		createdAt: now,
		updatedAt: now,
	}
}

func (s *SavedSelection) ID() string            { return s.id }
func (s *SavedSelection) Sequence() int         { return s.sequence }
func (s *SavedSelection) Name() string          { return s.name }
func (s *SavedSelection) Requested() int        { return s.requested }
func (s *SavedSelection) PageSize() int         { return s.pageSize }
func (s *SavedSelection) Items() []Artwork      { return s.items }
func (s *SavedSelection) Count() int            { return len(s.items) }
func (s *SavedSelection) CreatedAt() time.Time  { return s.createdAt }
func (s *SavedSelection) UpdatedAt() time.Time  { return s.updatedAt }
func (s *SavedSelection) DeletedAt() *time.Time { return s.deletedAt }

func (s *SavedSelection) SetID(id string)           { s.id = id }
func (s *SavedSelection) SetSequence(seq int)       { s.sequence = seq }
func (s *SavedSelection) SetName(name string)       { s.name = strings.TrimSpace(name) }
func (s *SavedSelection) SetCreatedAt(t time.Time)  { s.createdAt = t }
func (s *SavedSelection) SetUpdatedAt(t time.Time)  { s.updatedAt = t }
func (s *SavedSelection) SetDeletedAt(t *time.Time) { s.deletedAt = t }
func (s *SavedSelection) SetItems(items []Artwork)  { s.items = items }

// Validate checks that the selection has a name and a sane row count.
func (s *SavedSelection) Validate() error {
	if s.name == "" {
		return errors.New("selection name is required")
	}
	if s.requested <= 0 {
		return errors.New("requested count must be positive")
	}
	if len(s.items) > s.requested {
		return errors.New("selection holds more items than requested")
	}
	return nil
}
