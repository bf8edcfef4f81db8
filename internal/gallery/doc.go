// Package gallery implements the controller behind the paginated artwork table.
//
// A [Controller] owns all browsing state for one session: the current page number, the records on that
// page, the selected records, the rows gathered by the last multi-page bulk selection, and whether the
// bulk-selection panel is open. Presentation layers (the TUI and CLI commands) read a [Snapshot] and call
// the controller's operations; they never mutate state directly.
//
// # Paging
//
//   - [Controller.LoadPage] fetches one page and commits it only on success
//   - [Controller.NextPage] always advances (unless clamping to the last reported page is enabled)
//   - [Controller.PreviousPage] is a no-op on page 1
//
// # Bulk Selection
//
// [Controller.RequestBulkSelection] selects the first N rows. When N fits in one page the rows come from
// the current page only; otherwise pages 1..ceil(N/pageSize) are fetched in order through a [tasks.Aggregator]
// and the first N rows of the concatenation become the selection.
//
// # Request Ordering
//
// Every operation is split into Begin, Fetch/Aggregate, and Apply steps so UIs can run network I/O off their
// event loop. Each Begin call takes a new sequence number for its slot (page or selection) and cancels the
// previous in-flight request for that slot. Apply commits a result only when its sequence number is still the
// latest; otherwise it returns [ErrStale] and leaves state untouched.
//
// # Errors
//
// Fetch failures are logged and otherwise leave prior state in place. No retries are attempted.
package gallery
