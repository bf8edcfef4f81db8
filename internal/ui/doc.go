// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI is a single table view over a [gallery.Controller]:
//   - The table shows the current page with a checkbox column for selected rows
//   - ←/→ page through the collection; the page number updates before the fetch returns
//   - v opens the bulk-selection panel, a text input for "select the first N rows"
//   - s saves the current selection under a name when a [SelectionSaver] is configured
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Fetches run as commands; their results go back through the controller's Apply methods, which drop stale responses.
// Aggregation progress flows through a channel, providing non-blocking status while pages 1..N are fetched.
//
// Fetch failures are logged by the controller and never shown in the view.
package ui
