package gallery

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/artx/internal/models"
	"github.com/desertthunder/artx/internal/services"
	"github.com/desertthunder/artx/internal/shared"
	"github.com/desertthunder/artx/internal/tasks"
)

// DefaultPageSize is the number of rows shown per page.
const DefaultPageSize = 12

// ErrStale is returned by Apply methods when a newer request for the same slot has been issued.
var ErrStale = errors.New("stale response")

// Options configures a [Controller].
type Options struct {
	PageSize        int         // Rows per page; defaults to [DefaultPageSize]
	ClampToLastPage bool        // Stop NextPage at the last page the API reports
	Logger          *log.Logger // Defaults to [shared.NewLogger] on stderr
}

// Controller mediates between paging/selection intents and an [services.ArtworkSource].
//
// All state lives behind one mutex. Network calls never hold it.
type Controller struct {
	mu         sync.Mutex
	source     services.ArtworkSource
	aggregator *tasks.Aggregator
	logger     *log.Logger
	pageSize   int
	clamp      bool

	currentPage int
	totalPages  int
	records     []models.Artwork
	selection   []models.Artwork
	aggregate   []models.Artwork
	panelOpen   bool

	pageSeq     uint64
	pageCancel  context.CancelFunc
	pageLoading bool

	bulkSeq     uint64
	bulkCancel  context.CancelFunc
	bulkLoading bool
}

// NewController creates a Controller positioned on page 1 with no records loaded.
func NewController(source services.ArtworkSource, opts Options) *Controller {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	logger := shared.WithLogger(opts.Logger, "component", "gallery")

	return &Controller{
		source:      source,
		aggregator:  tasks.NewAggregator(source, logger),
		logger:      logger,
		pageSize:    opts.PageSize,
		clamp:       opts.ClampToLastPage,
		currentPage: 1,
		records:     []models.Artwork{},
		selection:   []models.Artwork{},
	}
}

// PageSize returns the fixed number of rows per page.
func (c *Controller) PageSize() int { return c.pageSize }

// Snapshot is a point-in-time copy of the controller state for rendering.
type Snapshot struct {
	CurrentPage   int
	PageSize      int
	TotalPages    int // 0 when the source has not reported it
	Records       []models.Artwork
	Selection     []models.Artwork
	AggregateSize int
	PanelOpen     bool
	PageLoading   bool
	BulkLoading   bool
}

// HasPrevious reports whether the previous-page control should be enabled.
func (s Snapshot) HasPrevious() bool { return s.CurrentPage > 1 }

// IsSelected reports whether the record with id is part of the selection.
func (s Snapshot) IsSelected(id int) bool {
	for _, r := range s.Selection {
		if r.ID == id {
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		CurrentPage:   c.currentPage,
		PageSize:      c.pageSize,
		TotalPages:    c.totalPages,
		Records:       clone(c.records),
		Selection:     clone(c.selection),
		AggregateSize: len(c.aggregate),
		PanelOpen:     c.panelOpen,
		PageLoading:   c.pageLoading,
		BulkLoading:   c.bulkLoading,
	}
}

// CurrentPage returns the page the user is on.
func (c *Controller) CurrentPage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentPage
}

// Records returns the rows of the current page, at most PageSize of them.
func (c *Controller) Records() []models.Artwork {
	c.mu.Lock()
	defer c.mu.Unlock()
	return clone(c.records)
}

// Selection returns the selected rows in selection order.
func (c *Controller) Selection() []models.Artwork {
	c.mu.Lock()
	defer c.mu.Unlock()
	return clone(c.selection)
}

// AggregateRecords returns the rows gathered by the last multi-page bulk selection.
func (c *Controller) AggregateRecords() []models.Artwork {
	c.mu.Lock()
	defer c.mu.Unlock()
	return clone(c.aggregate)
}

// SetSelection replaces the selection directly, as when the user toggles rows by hand.
//
// It supersedes any bulk selection still in flight.
func (c *Controller) SetSelection(records []models.Artwork) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.supersedeBulkLocked()
	c.selection = clone(records)
}

// ToggleSelected adds record to the selection, or removes it if already selected.
//
// Returns true when the record is selected afterwards.
func (c *Controller) ToggleSelected(record models.Artwork) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.supersedeBulkLocked()

	for i, r := range c.selection {
		if r.ID == record.ID {
			next := make([]models.Artwork, 0, len(c.selection)-1)
			next = append(next, c.selection[:i]...)
			next = append(next, c.selection[i+1:]...)
			c.selection = next
			return false
		}
	}

	c.selection = append(clone(c.selection), record)
	return true
}

// ClearSelection empties the selection.
func (c *Controller) ClearSelection() {
	c.SetSelection(nil)
}

// OpenSelectionPanel marks the bulk-selection input as visible.
func (c *Controller) OpenSelectionPanel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.panelOpen = true
}

// CloseSelectionPanel hides the bulk-selection input.
//
// Callers close the panel once either bulk-selection branch has completed.
func (c *Controller) CloseSelectionPanel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.panelOpen = false
}

// ToggleSelectionPanel flips panel visibility and returns the new state.
func (c *Controller) ToggleSelectionPanel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.panelOpen = !c.panelOpen
	return c.panelOpen
}

// SelectionPanelOpen reports whether the bulk-selection input is visible.
func (c *Controller) SelectionPanelOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panelOpen
}

// Close cancels any in-flight requests.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pageCancel != nil {
		c.pageCancel()
		c.pageCancel = nil
	}
	c.supersedeBulkLocked()
}

// supersedeBulkLocked invalidates the in-flight bulk request, if any. c.mu must be held.
func (c *Controller) supersedeBulkLocked() {
	c.bulkSeq++
	if c.bulkCancel != nil {
		c.bulkCancel()
		c.bulkCancel = nil
	}
	c.bulkLoading = false
}

func clone(records []models.Artwork) []models.Artwork {
	out := make([]models.Artwork, len(records))
	copy(out, records)
	return out
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
