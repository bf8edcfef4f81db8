package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/artx/internal/gallery"
	"github.com/desertthunder/artx/internal/models"
	"github.com/desertthunder/artx/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgPageLoaded MsgKind = iota
	MsgBulkProgress
	MsgBulkDone
	MsgSelectionSaved
)

// bulkRun carries the channels of one in-flight aggregation so late messages can be told apart.
type bulkRun struct {
	progress <-chan tasks.ProgressUpdate
	done     <-chan gallery.BulkResult
}

type bulkProgress struct {
	update tasks.ProgressUpdate
	run    bulkRun
}

type selectionSaved struct {
	selection *models.SavedSelection
	err       error
}

// pageLoadedMsg is the constructor for [MsgPageLoaded]
func pageLoadedMsg(res gallery.PageResult) Msg {
	return Msg{kind: MsgPageLoaded, data: res}
}

// bulkProgressMsg is the constructor for [MsgBulkProgress]
func bulkProgressMsg(update tasks.ProgressUpdate, run bulkRun) Msg {
	return Msg{kind: MsgBulkProgress, data: bulkProgress{update: update, run: run}}
}

// bulkDoneMsg is the constructor for [MsgBulkDone]
func bulkDoneMsg(res gallery.BulkResult) Msg {
	return Msg{kind: MsgBulkDone, data: res}
}

// selectionSavedMsg is the constructor for [MsgSelectionSaved]
func selectionSavedMsg(selection *models.SavedSelection, err error) Msg {
	return Msg{kind: MsgSelectionSaved, data: selectionSaved{selection: selection, err: err}}
}
