// package tasks implements multi-page operations against the art collection API.
//
// The core abstraction is Aggregator, which walks pages 1..N in order and concatenates their records.
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/artx/internal/models"
	"github.com/desertthunder/artx/internal/services"
	"github.com/desertthunder/artx/internal/shared"
)

// PageFailure records a page that could not be fetched during aggregation.
type PageFailure struct {
	Page  int   // Page number that failed
	Error error // Error returned by the source
}

// AggregateResult contains all data from one aggregate fetch.
type AggregateResult struct {
	Desired      int              // Row count the caller asked for
	PagesNeeded  int              // ceil(Desired / page size)
	PagesFetched int              // Pages that returned successfully
	Failures     []PageFailure    // Pages omitted from Records
	Records      []models.Artwork // Concatenation of every successful page, in page order
	Canceled     bool             // True when ctx ended before every page was attempted
}

// Selected returns the first Desired records, or all of them if fewer were collected.
func (r *AggregateResult) Selected() []models.Artwork {
	n := min(r.Desired, len(r.Records))
	if n < 0 {
		n = 0
	}
	out := make([]models.Artwork, n)
	copy(out, r.Records[:n])
	return out
}

// Aggregator fetches consecutive pages from an [services.ArtworkSource].
type Aggregator struct {
	source services.ArtworkSource
	logger *log.Logger
}

// NewAggregator creates a new Aggregator; a nil logger discards output.
func NewAggregator(source services.ArtworkSource, logger *log.Logger) *Aggregator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Aggregator{source: source, logger: logger}
}

// PagesNeeded returns how many pages of pageSize hold desired rows.
func PagesNeeded(desired, pageSize int) int {
	return shared.CeilDiv(desired, pageSize)
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Collect fetches pages 1..PagesNeeded(desired, pageSize) one after another and concatenates their records.
//
// Page k+1 is requested only after page k has returned. A failed page is logged and
// left out of the result; the remaining pages are still fetched. Collect stops early
// only when ctx is done, in which case Canceled is set.
func (a *Aggregator) Collect(ctx context.Context, desired, pageSize int, progress chan<- ProgressUpdate) (*AggregateResult, error) {
	if a.source == nil {
		return nil, shared.ErrServiceUnavailable
	}
	if desired <= 0 {
		return nil, shared.ErrInvalidCount
	}
	if pageSize <= 0 {
		return nil, shared.ErrInvalidArgument
	}

	total := PagesNeeded(desired, pageSize)
	result := &AggregateResult{
		Desired:     desired,
		PagesNeeded: total,
		Records:     make([]models.Artwork, 0, total*pageSize),
	}

	sendProgress(progress, aggregateStartUpdate(total, desired))

	for page := 1; page <= total; page++ {
		if ctx.Err() != nil {
			result.Canceled = true
			break
		}

		sendProgress(progress, fetchPageUpdate(page, total))

		fetched, err := a.source.FetchPage(ctx, page, pageSize)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				result.Canceled = true
				break
			}
			a.logger.Error("fetch failed", "page", page, "err", err)
			result.Failures = append(result.Failures, PageFailure{Page: page, Error: err})
			sendProgress(progress, pageFailedUpdate(page, total, err))
			continue
		}

		records := fetched.Records
		if len(records) > pageSize {
			records = records[:pageSize]
		}
		result.Records = append(result.Records, records...)
		result.PagesFetched++
	}

	sendProgress(progress, selectRowsUpdate(total, len(result.Selected()), desired))

	return result, nil
}
