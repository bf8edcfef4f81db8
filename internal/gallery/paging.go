package gallery

import (
	"context"
	"fmt"

	"github.com/desertthunder/artx/internal/models"
	"github.com/desertthunder/artx/internal/shared"
)

// PageRequest identifies one issued page fetch.
type PageRequest struct {
	Page int
	Seq  uint64
	ctx  context.Context
}

// PageResult is the outcome of fetching a [PageRequest].
type PageResult struct {
	Request PageRequest
	Page    *models.ArtworkPage
	Err     error
}

// BeginLoad issues a request for page without changing the current page.
//
// Any earlier page request still in flight is canceled.
func (c *Controller) BeginLoad(ctx context.Context, page int) (PageRequest, error) {
	if page < 1 {
		return PageRequest{}, fmt.Errorf("%w: %d", shared.ErrInvalidPage, page)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.beginPageLocked(ctx, page), nil
}

// BeginReload issues a request for the current page, as done once at startup.
func (c *Controller) BeginReload(ctx context.Context) PageRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.beginPageLocked(ctx, c.currentPage)
}

// BeginNext advances the current page by one and issues a request for it.
//
// Returns false without advancing only when clamping is enabled and the last reported page is current.
func (c *Controller) BeginNext(ctx context.Context) (PageRequest, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.clamp && c.totalPages > 0 && c.currentPage >= c.totalPages {
		return PageRequest{}, false
	}

	c.currentPage++
	return c.beginPageLocked(ctx, c.currentPage), true
}

// BeginPrevious moves back one page and issues a request for it.
//
// Returns false and issues nothing on page 1.
func (c *Controller) BeginPrevious(ctx context.Context) (PageRequest, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.currentPage <= 1 {
		return PageRequest{}, false
	}

	c.currentPage--
	return c.beginPageLocked(ctx, c.currentPage), true
}

func (c *Controller) beginPageLocked(ctx context.Context, page int) PageRequest {
	if c.pageCancel != nil {
		c.pageCancel()
	}

	reqCtx, cancel := context.WithCancel(ctx)
	c.pageSeq++
	c.pageCancel = cancel
	c.pageLoading = true

	return PageRequest{Page: page, Seq: c.pageSeq, ctx: reqCtx}
}

// Fetch performs the network call for req. It does not touch controller state.
func (c *Controller) Fetch(req PageRequest) PageResult {
	ctx := req.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	if c.source == nil {
		return PageResult{Request: req, Err: shared.ErrServiceUnavailable}
	}

	page, err := c.source.FetchPage(ctx, req.Page, c.pageSize)
	return PageResult{Request: req, Page: page, Err: err}
}

// ApplyPage commits res if it answers the most recent page request.
//
// On success the page's records (capped at the page size) replace the current rows and the current page
// becomes res.Request.Page. On failure the error is logged and the rows and page number stay as they were.
// A result for a superseded request returns [ErrStale].
func (c *Controller) ApplyPage(res PageResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if res.Request.Seq != c.pageSeq {
		c.logger.Debug("dropping stale page response", "page", res.Request.Page, "seq", res.Request.Seq, "latest", c.pageSeq)
		return ErrStale
	}

	c.pageLoading = false
	if c.pageCancel != nil {
		c.pageCancel()
		c.pageCancel = nil
	}

	if res.Err != nil {
		if isCanceled(res.Err) {
			c.logger.Debug("page fetch canceled", "page", res.Request.Page)
		} else {
			c.logger.Error("fetch failed", "page", res.Request.Page, "err", res.Err)
		}
		return res.Err
	}

	if res.Page == nil {
		return nil
	}

	records := res.Page.Records
	if len(records) > c.pageSize {
		records = records[:c.pageSize]
	}

	c.records = clone(records)
	c.currentPage = res.Request.Page
	if res.Page.Pagination.TotalPages > 0 {
		c.totalPages = res.Page.Pagination.TotalPages
	}

	c.logger.Debug("page loaded", "page", c.currentPage, "rows", len(c.records))
	return nil
}

// LoadPage fetches page and commits it on success.
//
// On failure the error is logged and returned; the current rows and page number are left untouched.
func (c *Controller) LoadPage(ctx context.Context, page int) error {
	req, err := c.BeginLoad(ctx, page)
	if err != nil {
		return err
	}
	return c.ApplyPage(c.Fetch(req))
}

// Reload fetches the current page again.
func (c *Controller) Reload(ctx context.Context) error {
	return c.ApplyPage(c.Fetch(c.BeginReload(ctx)))
}

// NextPage advances one page and loads it. The bool is false when nothing was requested.
func (c *Controller) NextPage(ctx context.Context) (bool, error) {
	req, ok := c.BeginNext(ctx)
	if !ok {
		return false, nil
	}
	return true, c.ApplyPage(c.Fetch(req))
}

// PreviousPage moves back one page and loads it. On page 1 it does nothing and returns false.
func (c *Controller) PreviousPage(ctx context.Context) (bool, error) {
	req, ok := c.BeginPrevious(ctx)
	if !ok {
		return false, nil
	}
	return true, c.ApplyPage(c.Fetch(req))
}
