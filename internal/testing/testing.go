// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/artx/internal/models"
)

// MockSource is an in-memory test double for [services.ArtworkSource].
//
// Pages are served from a fixed collection of records; pages listed in Fail return an error.
// Every call is recorded in order.
type MockSource struct {
	mu       sync.Mutex
	records  []models.Artwork
	fail     map[int]error
	calls    []int
	gates    map[int]chan struct{}
	Received chan int
}

// NewMockSource creates a MockSource over n generated artworks with IDs 1..n.
func NewMockSource(n int) *MockSource {
	return &MockSource{records: MakeArtworks(1, n), fail: map[int]error{}, gates: map[int]chan struct{}{}}
}

// Fail makes every fetch of page return err.
func (m *MockSource) Fail(page int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		err = errors.New("mock fetch failure")
	}
	m.fail[page] = err
}

// Block makes fetches of page wait until the returned release func is called or ctx ends.
func (m *MockSource) Block(page int) (release func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan struct{})
	m.gates[page] = ch
	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

// Calls returns the pages requested so far, in order.
func (m *MockSource) Calls() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]int, len(m.calls))
	copy(out, m.calls)
	return out
}

// Records returns the full backing collection.
func (m *MockSource) Records() []models.Artwork {
	return m.records
}

func (m *MockSource) FetchPage(ctx context.Context, page, limit int) (*models.ArtworkPage, error) {
	m.mu.Lock()
	m.calls = append(m.calls, page)
	gate := m.gates[page]
	failErr := m.fail[page]
	received := m.Received
	m.mu.Unlock()

	if received != nil {
		received <- page
	}

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if failErr != nil {
		return nil, fmt.Errorf("page %d: %w", page, failErr)
	}

	start := (page - 1) * limit
	if start > len(m.records) {
		start = len(m.records)
	}
	end := start + limit
	if end > len(m.records) {
		end = len(m.records)
	}

	out := make([]models.Artwork, end-start)
	copy(out, m.records[start:end])

	totalPages := 0
	if limit > 0 {
		totalPages = (len(m.records) + limit - 1) / limit
	}

	return &models.ArtworkPage{
		Records: out,
		Pagination: models.Pagination{
			Total:       len(m.records),
			Limit:       limit,
			Offset:      start,
			TotalPages:  totalPages,
			CurrentPage: page,
		},
	}, nil
}

// MakeArtworks generates count artworks with sequential IDs starting at first.
func MakeArtworks(first, count int) []models.Artwork {
	out := make([]models.Artwork, 0, count)
	for i := 0; i < count; i++ {
		id := first + i
		out = append(out, models.Artwork{
			ID:            id,
			Title:         fmt.Sprintf("Artwork %d", id),
			PlaceOfOrigin: "Chicago",
			ArtistDisplay: fmt.Sprintf("Artist %d", id),
			DateStart:     "1900",
			DateEnd:       "1901",
		})
	}
	return out
}

// IDs returns the IDs of records in order.
func IDs(records []models.Artwork) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// EqualInts reports whether two int slices hold the same values in the same order.
func EqualInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
