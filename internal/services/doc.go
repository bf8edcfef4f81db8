// Package services implements access to the public art collection API.
//
// # Artwork Source
//
// The [ArtworkSource] interface is the only thing the gallery controller knows about the remote service:
// fetch page N with a given limit, get back an ordered slice of [models.Artwork] plus paging metadata.
//
// # Collection API Implementation
//
// [ArticService] implements ArtworkSource against GET /artworks?page=N&limit=M.
// Responses carry a data array and a pagination object; extra fields are ignored.
// Text fields that arrive as null or as numbers (date_start, date_end) are decoded to strings.
//
// # Raw Access
//
// [APIService] is the underlying GET client. It is also used directly by the "api get" CLI command
// for debugging. An optional [rate.Limiter] paces requests when requests_per_second is configured.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrAPIRequest] : transport failure or non-2xx status
//   - [shared.ErrDecodeResponse] : body was not the expected JSON envelope
//   - [shared.ErrInvalidPage] : page number below 1
//
// No retries are attempted; callers decide whether a failure matters.
package services
