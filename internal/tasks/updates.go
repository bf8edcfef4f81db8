package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	AggregatePages Phase = iota
	FetchPage
	PageFailed
	SelectRows
)

func (p Phase) String() string {
	switch p {
	case AggregatePages:
		return "aggregate_pages"
	case FetchPage:
		return "fetch_page"
	case PageFailed:
		return "page_failed"
	case SelectRows:
		return "select_rows"
	default:
		return ""
	}
}

func aggregateStartUpdate(total, desired int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AggregatePages,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Collecting %d rows across %d pages...", desired, total),
	}
}

func fetchPageUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPage,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetching page %d...", step, total, step),
	}
}

func pageFailedUpdate(step, total int, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PageFailed,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ page %d skipped: %v", step, total, step, err),
	}
}

func selectRowsUpdate(total, selected, desired int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SelectRows,
		Step:    total,
		Total:   total,
		Message: fmt.Sprintf("Selected %d of %d requested rows", selected, desired),
	}
}
