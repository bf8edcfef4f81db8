// Package models defines domain entities and persistence interfaces for the artx gallery browser.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight values decoded from the artwork API
//   - [Artwork] : A single collection record (title, origin, artist, inscriptions, dates)
//   - [Pagination] : Paging metadata reported alongside each page
//   - [ArtworkPage] : One fetched page of records plus its metadata
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [SavedSelection] : A named snapshot of selected artworks, stored in order
//
// Persistent entities implement the [Model] interface providing ID, timestamps, and validation.
// The [Repository] interface defines standard CRUD operations for database access.
package models
