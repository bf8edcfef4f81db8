package gallery

import (
	"context"

	"github.com/desertthunder/artx/internal/shared"
	"github.com/desertthunder/artx/internal/tasks"
)

// BulkMode tells the caller which branch a bulk selection took.
type BulkMode int

const (
	// BulkIgnored means the count was not positive and nothing changed.
	BulkIgnored BulkMode = iota
	// BulkCurrentPage means the selection was taken from the current page and is already applied.
	BulkCurrentPage
	// BulkAggregate means pages must be fetched; run Aggregate then ApplyBulk.
	BulkAggregate
)

func (m BulkMode) String() string {
	switch m {
	case BulkIgnored:
		return "ignored"
	case BulkCurrentPage:
		return "current_page"
	case BulkAggregate:
		return "aggregate"
	default:
		return ""
	}
}

// BulkRequest identifies one issued multi-page bulk selection.
type BulkRequest struct {
	Desired int
	Seq     uint64
	ctx     context.Context
}

// BulkResult is the outcome of running a [BulkRequest].
type BulkResult struct {
	Request BulkRequest
	Result  *tasks.AggregateResult
	Err     error
}

// BeginBulk starts a bulk selection of the first desired rows.
//
// Counts of zero or less are ignored. Counts up to the page size select from the current page only and
// are applied before BeginBulk returns, even if the page holds fewer rows than asked. Larger counts
// return a request for [Controller.Aggregate]. Either applied branch supersedes an older bulk request.
func (c *Controller) BeginBulk(ctx context.Context, desired int) (BulkRequest, BulkMode) {
	if desired <= 0 {
		return BulkRequest{}, BulkIgnored
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.supersedeBulkLocked()

	if desired <= c.pageSize {
		n := min(desired, len(c.records))
		c.selection = clone(c.records[:n])
		c.logger.Debug("selected rows from current page", "requested", desired, "selected", n)
		return BulkRequest{}, BulkCurrentPage
	}

	reqCtx, cancel := context.WithCancel(ctx)
	c.bulkCancel = cancel
	c.bulkLoading = true

	return BulkRequest{Desired: desired, Seq: c.bulkSeq, ctx: reqCtx}, BulkAggregate
}

// Aggregate fetches pages 1..ceil(Desired/pageSize) in order. It does not touch controller state.
func (c *Controller) Aggregate(req BulkRequest, progress chan<- tasks.ProgressUpdate) BulkResult {
	ctx := req.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := c.aggregator.Collect(ctx, req.Desired, c.pageSize, progress)
	return BulkResult{Request: req, Result: result, Err: err}
}

// ApplyBulk commits an aggregate if it answers the most recent bulk request.
//
// The concatenated rows replace the aggregate and the first Desired of them become the selection.
func (c *Controller) ApplyBulk(res BulkResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if res.Request.Seq != c.bulkSeq {
		c.logger.Debug("dropping stale bulk selection", "requested", res.Request.Desired, "seq", res.Request.Seq, "latest", c.bulkSeq)
		return ErrStale
	}

	c.bulkLoading = false
	if c.bulkCancel != nil {
		c.bulkCancel()
		c.bulkCancel = nil
	}

	if res.Err != nil {
		c.logger.Error("bulk selection failed", "requested", res.Request.Desired, "err", res.Err)
		return res.Err
	}
	if res.Result == nil || res.Result.Canceled {
		return ErrStale
	}

	c.aggregate = clone(res.Result.Records)
	c.selection = res.Result.Selected()

	c.logger.Info("bulk selection applied",
		"requested", res.Request.Desired,
		"selected", len(c.selection),
		"pages", res.Result.PagesNeeded,
		"failed_pages", len(res.Result.Failures),
	)
	return nil
}

// RequestBulkSelection selects the first desired rows and returns how many were selected.
//
// See [Controller.BeginBulk] for the branch rules. Page failures during aggregation shrink the
// selection rather than failing it.
func (c *Controller) RequestBulkSelection(ctx context.Context, desired int) (int, error) {
	return c.RequestBulkSelectionWithProgress(ctx, desired, nil)
}

// RequestBulkSelectionWithProgress is [Controller.RequestBulkSelection] with aggregation progress reporting.
func (c *Controller) RequestBulkSelectionWithProgress(ctx context.Context, desired int, progress chan<- tasks.ProgressUpdate) (int, error) {
	req, mode := c.BeginBulk(ctx, desired)
	switch mode {
	case BulkIgnored:
		return 0, shared.ErrInvalidCount
	case BulkCurrentPage:
		return len(c.Selection()), nil
	}

	if err := c.ApplyBulk(c.Aggregate(req, progress)); err != nil {
		return 0, err
	}
	return len(c.Selection()), nil
}
