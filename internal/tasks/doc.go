// Package tasks runs multi-page fetches against the art collection with real-time progress reporting.
//
// # Aggregate Fetch
//
// [Aggregator.Collect] backs bulk selection when the requested row count exceeds one page:
//
//  1. Computes the page count with [PagesNeeded] (ceil of rows over page size)
//  2. Fetches pages 1..N strictly in order; page k+1 starts after page k returns
//  3. Concatenates records in page order
//  4. Logs and skips any page that fails, so the result may hold fewer rows than asked
//
// # Progress Reporting
//
// Collect accepts an optional channel of [ProgressUpdate]. Sends use select with default, so a slow
// or absent reader never stalls the fetch loop.
//
// # Cancellation
//
// A done context stops the loop before the next page and marks the result Canceled.
// The gallery controller uses this to drop an aggregation that a newer request superseded.
package tasks
