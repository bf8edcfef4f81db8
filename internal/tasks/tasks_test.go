package tasks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/artx/internal/services"
	"github.com/desertthunder/artx/internal/shared"
	tu "github.com/desertthunder/artx/internal/testing"
)

func TestPagesNeeded(t *testing.T) {
	tc := []struct {
		desired, pageSize, want int
	}{
		{20, 12, 2},
		{12, 12, 1},
		{13, 12, 2},
		{36, 12, 3},
		{100, 12, 9},
		{0, 12, 0},
	}

	for _, tt := range tc {
		if got := PagesNeeded(tt.desired, tt.pageSize); got != tt.want {
			t.Errorf("PagesNeeded(%d, %d) = %d, want %d", tt.desired, tt.pageSize, got, tt.want)
		}
	}
}

func TestAggregator(t *testing.T) {
	t.Run("Collect", func(t *testing.T) {
		t.Run("Fetches Pages In Order And Truncates", func(t *testing.T) {
			src := tu.NewMockSource(100)
			agg := NewAggregator(src, nil)

			result, err := agg.Collect(context.Background(), 20, 12, nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if !tu.EqualInts(src.Calls(), []int{1, 2}) {
				t.Errorf("expected pages [1 2], got %v", src.Calls())
			}
			if len(result.Records) != 24 {
				t.Errorf("expected 24 aggregated records, got %d", len(result.Records))
			}

			selected := result.Selected()
			if len(selected) != 20 {
				t.Fatalf("expected 20 selected, got %d", len(selected))
			}
			for i, rec := range selected {
				if rec.ID != i+1 {
					t.Errorf("selected[%d].ID = %d, want %d", i, rec.ID, i+1)
				}
			}
			if result.PagesNeeded != 2 || result.PagesFetched != 2 {
				t.Errorf("unexpected page counts %d/%d", result.PagesFetched, result.PagesNeeded)
			}
		})

		t.Run("Short Collection Yields Fewer Rows", func(t *testing.T) {
			src := tu.NewMockSource(15)
			result, err := NewAggregator(src, nil).Collect(context.Background(), 30, 12, nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if !tu.EqualInts(src.Calls(), []int{1, 2, 3}) {
				t.Errorf("expected pages [1 2 3], got %v", src.Calls())
			}
			if got := len(result.Selected()); got != 15 {
				t.Errorf("expected 15 selected, got %d", got)
			}
		})

		t.Run("Failed Page Is Omitted", func(t *testing.T) {
			var logs bytes.Buffer
			src := tu.NewMockSource(100)
			src.Fail(2, errors.New("upstream 503"))

			result, err := NewAggregator(src, shared.NewLogger(&logs)).Collect(context.Background(), 30, 12, nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if !tu.EqualInts(src.Calls(), []int{1, 2, 3}) {
				t.Errorf("expected every page attempted, got %v", src.Calls())
			}

			wantIDs := append(tu.IDs(tu.MakeArtworks(1, 12)), tu.IDs(tu.MakeArtworks(25, 12))...)
			if !tu.EqualInts(tu.IDs(result.Records), wantIDs) {
				t.Errorf("expected pages 1 and 3 concatenated, got %v", tu.IDs(result.Records))
			}
			if len(result.Selected()) != 24 {
				t.Errorf("expected aggregate to shrink to 24, got %d", len(result.Selected()))
			}
			if len(result.Failures) != 1 || result.Failures[0].Page != 2 {
				t.Errorf("expected failure for page 2, got %+v", result.Failures)
			}
			if !strings.Contains(logs.String(), "fetch failed") {
				t.Errorf("expected failure to be logged, got %q", logs.String())
			}
		})

		t.Run("Canceled Context Stops Loop", func(t *testing.T) {
			src := tu.NewMockSource(100)
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			result, err := NewAggregator(src, nil).Collect(ctx, 40, 12, nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !result.Canceled {
				t.Error("expected result to be marked canceled")
			}
			if len(src.Calls()) != 0 {
				t.Errorf("expected no fetches, got %v", src.Calls())
			}
		})

		t.Run("Canceled Mid Fetch", func(t *testing.T) {
			src := tu.NewMockSource(100)
			release := src.Block(2)
			defer release()

			ctx, cancel := context.WithCancel(context.Background())
			src.Received = make(chan int, 4)

			done := make(chan *AggregateResult)
			go func() {
				r, _ := NewAggregator(src, nil).Collect(ctx, 40, 12, nil)
				done <- r
			}()

			<-src.Received
			<-src.Received
			cancel()

			result := <-done
			if !result.Canceled {
				t.Error("expected result to be marked canceled")
			}
			if len(result.Failures) != 0 {
				t.Errorf("cancellation should not count as a page failure, got %+v", result.Failures)
			}
			if !tu.EqualInts(src.Calls(), []int{1, 2}) {
				t.Errorf("expected pages [1 2], got %v", src.Calls())
			}
		})

		t.Run("Canceled HTTP Fetch On Last Page", func(t *testing.T) {
			blocked := make(chan struct{})
			release := make(chan struct{})
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Query().Get("page") == "1" {
					fmt.Fprint(w, `{"data": [{"id": 1, "title": "First"}], "pagination": {"total_pages": 2}}`)
					return
				}
				close(blocked)
				select {
				case <-r.Context().Done():
				case <-release:
				}
			}))
			defer server.Close()
			defer close(release)

			src := services.NewArticService(services.NewAPIService(server.URL, nil), nil)
			ctx, cancel := context.WithCancel(context.Background())
			go func() {
				<-blocked
				cancel()
			}()

			result, err := NewAggregator(src, nil).Collect(ctx, 24, 12, nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !result.Canceled {
				t.Error("expected result to be marked canceled")
			}
			if len(result.Failures) != 0 {
				t.Errorf("cancellation should not count as a page failure, got %+v", result.Failures)
			}
			if result.PagesFetched != 1 || len(result.Records) != 1 {
				t.Errorf("expected page 1 only, got fetched=%d records=%d", result.PagesFetched, len(result.Records))
			}
		})

		t.Run("Reports Progress", func(t *testing.T) {
			src := tu.NewMockSource(100)
			progress := make(chan ProgressUpdate, 10)

			if _, err := NewAggregator(src, nil).Collect(context.Background(), 25, 12, progress); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			close(progress)

			var phases []Phase
			for u := range progress {
				phases = append(phases, u.Phase)
			}

			want := []Phase{AggregatePages, FetchPage, FetchPage, FetchPage, SelectRows}
			if len(phases) != len(want) {
				t.Fatalf("expected %d updates, got %v", len(want), phases)
			}
			for i := range want {
				if phases[i] != want[i] {
					t.Errorf("update %d: got %v, want %v", i, phases[i], want[i])
				}
			}
		})

		t.Run("Full Progress Channel Does Not Block", func(t *testing.T) {
			src := tu.NewMockSource(100)
			progress := make(chan ProgressUpdate)

			if _, err := NewAggregator(src, nil).Collect(context.Background(), 48, 12, progress); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})

		t.Run("Invalid Input", func(t *testing.T) {
			agg := NewAggregator(tu.NewMockSource(10), nil)

			if _, err := agg.Collect(context.Background(), 0, 12, nil); !errors.Is(err, shared.ErrInvalidCount) {
				t.Errorf("expected ErrInvalidCount, got %v", err)
			}
			if _, err := agg.Collect(context.Background(), 5, 0, nil); !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
			if _, err := NewAggregator(nil, nil).Collect(context.Background(), 5, 12, nil); !errors.Is(err, shared.ErrServiceUnavailable) {
				t.Errorf("expected ErrServiceUnavailable, got %v", err)
			}
		})
	})
}

func TestPhaseString(t *testing.T) {
	if FetchPage.String() != "fetch_page" {
		t.Errorf("unexpected string %q", FetchPage.String())
	}
	if Phase(99).String() != "" {
		t.Error("expected unknown phase to be empty")
	}
}
