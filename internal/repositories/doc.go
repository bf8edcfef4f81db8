// Package repositories implements SQLite persistence for saved selections.
//
// Repositories handle CRUD operations with atomic sequence generation for human-readable ordering.
// Saved selections are soft-deleted via deleted_at timestamps and excluded from queries by default.
//
// Key Implementations:
//   - [SelectionRepository] : Named selection snapshots with their ordered artwork items
//
// Sequence numbers provide stable, human-readable ordering (e.g., selection #3) independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
