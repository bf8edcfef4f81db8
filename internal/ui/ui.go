package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/artx/internal/formatter"
	"github.com/desertthunder/artx/internal/gallery"
	"github.com/desertthunder/artx/internal/models"
	"github.com/desertthunder/artx/internal/tasks"
)

// SelectionSaver persists a selection snapshot; [repositories.SelectionRepository] satisfies it.
type SelectionSaver interface {
	Create(selection *models.SavedSelection) error
}

// InputMode is the text input currently capturing keys, if any.
type InputMode int

const (
	BrowseMode InputMode = iota
	BulkMode
	SaveMode
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
)

// columnWidths matches [formatter.TableColumns].
var columnWidths = []int{3, 7, 32, 14, 28, 18, 6, 6}

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	gallery    *gallery.Controller
	saver      SelectionSaver
	mode       InputMode
	table      table.Model
	countInput textinput.Model
	nameInput  textinput.Model
	spinner    spinner.Model
	help       help.Model
	keys       keyMap
	snapshot   gallery.Snapshot
	startPage  int
	bulk       *bulkRun
	progress   tasks.ProgressUpdate
	requested  int
	status     string
	statusKind statusKind
	width      int
	height     int
}

// NewModel creates a new TUI model over controller. saver may be nil, which disables saving.
func NewModel(ctx context.Context, controller *gallery.Controller, saver SelectionSaver) *Model {
	columns := make([]table.Column, len(formatter.TableColumns))
	for i, title := range formatter.TableColumns {
		columns[i] = table.Column{Title: title, Width: columnWidths[i]}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(controller.PageSize()+2),
	)
	t.SetStyles(tableStyles("#7D56F4"))

	count := textinput.New()
	count.Placeholder = "number of rows"
	count.CharLimit = 6
	count.Width = 16
	count.Validate = func(s string) error {
		if s == "" {
			return nil
		}
		_, err := strconv.Atoi(s)
		return err
	}

	name := textinput.New()
	name.Placeholder = "selection name"
	name.CharLimit = 80
	name.Width = 32

	s := spinner.New()
	s.Spinner = spinner.Dot

	m := &Model{
		ctx:        ctx,
		gallery:    controller,
		saver:      saver,
		table:      t,
		countInput: count,
		nameInput:  name,
		spinner:    s,
		help:       help.New(),
		keys:       newKeyMap(),
	}
	m.refresh()
	return m
}

// StartAt makes Init load page instead of the controller's current page. Values below 2 are ignored.
func (m *Model) StartAt(page int) {
	if page > 1 {
		m.startPage = page
	}
}

// Init loads the start page (page 1 unless [Model.StartAt] was called).
func (m *Model) Init() tea.Cmd {
	var req gallery.PageRequest
	if m.startPage > 1 {
		req, _ = m.gallery.BeginLoad(m.ctx, m.startPage)
	} else {
		req = m.gallery.BeginReload(m.ctx)
	}
	m.refresh()
	return tea.Batch(m.spinner.Tick, m.fetchPage(req))
}

// Mode returns the active input mode.
func (m *Model) Mode() InputMode { return m.mode }

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case BulkMode:
			return m.handleBulkKeys(msg)
		case SaveMode:
			return m.handleSaveKeys(msg)
		default:
			return m.handleBrowseKeys(msg)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		return m.handleMsg(msg)
	}

	return m, nil
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgPageLoaded:
		res := msg.data.(gallery.PageResult)
		// Failures are logged by the controller; the view keeps the previous rows.
		_ = m.gallery.ApplyPage(res)
		m.refresh()
		return m, nil

	case MsgBulkProgress:
		p := msg.data.(bulkProgress)
		if m.bulk == nil || p.run.progress != m.bulk.progress {
			return m, nil
		}
		m.progress = p.update
		return m, waitForBulk(p.run)

	case MsgBulkDone:
		res := msg.data.(gallery.BulkResult)
		err := m.gallery.ApplyBulk(res)
		if errors.Is(err, gallery.ErrStale) {
			if !m.gallery.Snapshot().BulkLoading {
				m.bulk = nil
				m.refresh()
			}
			return m, nil
		}
		m.bulk = nil
		m.progress = tasks.ProgressUpdate{}
		m.gallery.CloseSelectionPanel()
		m.leaveInput()
		if err == nil {
			m.requested = res.Request.Desired
			m.setStatus(statusOK, fmt.Sprintf("Selected %d of %d requested rows", len(m.gallery.Selection()), res.Request.Desired))
		}
		m.refresh()
		return m, nil

	case MsgSelectionSaved:
		saved := msg.data.(selectionSaved)
		if saved.err != nil {
			m.setStatus(statusWarn, fmt.Sprintf("Save failed: %v", saved.err))
		} else {
			m.setStatus(statusOK, fmt.Sprintf("Saved %q (#%d, %d rows)", saved.selection.Name(), saved.selection.Sequence(), saved.selection.Count()))
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.gallery.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.prev):
		req, ok := m.gallery.BeginPrevious(m.ctx)
		if !ok {
			return m, nil
		}
		m.refresh()
		return m, m.fetchPage(req)

	case key.Matches(msg, m.keys.next):
		req, ok := m.gallery.BeginNext(m.ctx)
		if !ok {
			m.setStatus(statusInfo, "Already on the last page")
			return m, nil
		}
		m.refresh()
		return m, m.fetchPage(req)

	case key.Matches(msg, m.keys.reload):
		req := m.gallery.BeginReload(m.ctx)
		m.refresh()
		return m, m.fetchPage(req)

	case key.Matches(msg, m.keys.toggle):
		records := m.snapshot.Records
		cursor := m.table.Cursor()
		if cursor < 0 || cursor >= len(records) {
			return m, nil
		}
		m.gallery.ToggleSelected(records[cursor])
		m.requested = 0
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.clear):
		m.gallery.ClearSelection()
		m.requested = 0
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.bulk):
		m.gallery.OpenSelectionPanel()
		m.mode = BulkMode
		m.countInput.SetValue("")
		m.refresh()
		return m, m.countInput.Focus()

	case key.Matches(msg, m.keys.save):
		if m.saver == nil {
			m.setStatus(statusWarn, "Saving is not configured")
			return m, nil
		}
		if len(m.snapshot.Selection) == 0 {
			m.setStatus(statusWarn, "Nothing selected")
			return m, nil
		}
		m.mode = SaveMode
		m.nameInput.SetValue("")
		return m, m.nameInput.Focus()

	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) handleBulkKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.gallery.CloseSelectionPanel()
		m.leaveInput()
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.enter):
		return m.submitBulk()
	}

	var cmd tea.Cmd
	m.countInput, cmd = m.countInput.Update(msg)
	return m, cmd
}

// submitBulk runs the bulk selection for the number in the panel. Non-positive or unparsable input is ignored.
func (m *Model) submitBulk() (tea.Model, tea.Cmd) {
	n, err := strconv.Atoi(strings.TrimSpace(m.countInput.Value()))
	if err != nil || n <= 0 {
		m.setStatus(statusWarn, "Enter a positive number of rows")
		return m, nil
	}

	req, mode := m.gallery.BeginBulk(m.ctx, n)
	switch mode {
	case gallery.BulkCurrentPage:
		m.bulk = nil
		m.requested = n
		m.gallery.CloseSelectionPanel()
		m.leaveInput()
		m.setStatus(statusOK, fmt.Sprintf("Selected %d rows from page %d", len(m.gallery.Selection()), m.gallery.CurrentPage()))
		m.refresh()
		return m, nil
	case gallery.BulkAggregate:
		m.countInput.Blur()
		m.setStatus(statusInfo, fmt.Sprintf("Collecting the first %d rows", n))
		cmd := m.startBulk(req)
		m.refresh()
		return m, tea.Batch(m.spinner.Tick, cmd)
	}

	return m, nil
}

func (m *Model) handleSaveKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.leaveInput()
		return m, nil

	case key.Matches(msg, m.keys.enter):
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			m.setStatus(statusWarn, "Enter a name for the selection")
			return m, nil
		}
		m.leaveInput()
		return m, m.saveSelection(name)
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// View renders the table, the optional input panel, status and help.
func (m *Model) View() string {
	var b strings.Builder

	header := styles.title.Render("Art Collection") + "  " + formatter.PageLabel(m.snapshot.CurrentPage, m.snapshot.TotalPages)
	if m.snapshot.PageLoading {
		header += " " + m.spinner.View()
	}
	b.WriteString(header + "\n\n")
	b.WriteString(m.table.View() + "\n\n")

	b.WriteString(fmt.Sprintf("%d selected", len(m.snapshot.Selection)))
	if !m.snapshot.HasPrevious() {
		b.WriteString(styles.help.Render("  (first page)"))
	}
	b.WriteString("\n")

	switch m.mode {
	case BulkMode:
		b.WriteString(styles.panel.Render(m.renderBulkPanel()) + "\n")
	case SaveMode:
		b.WriteString(styles.panel.Render("Save selection as\n"+m.nameInput.View()) + "\n")
	}

	if m.status != "" {
		b.WriteString(m.renderStatus() + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderBulkPanel() string {
	body := "Select the first N rows\n" + m.countInput.View()
	if m.snapshot.BulkLoading {
		line := m.spinner.View() + " "
		switch m.progress.Phase {
		case tasks.FetchPage:
			line += fmt.Sprintf("Fetching page %d/%d", m.progress.Step, m.progress.Total)
		case tasks.PageFailed:
			line += styles.warn.Render(m.progress.Message)
		default:
			line += "Working..."
		}
		body += "\n" + line
	}
	return body
}

func (m *Model) renderStatus() string {
	switch m.statusKind {
	case statusOK:
		return styles.ok.Render(m.status)
	case statusWarn:
		return styles.warn.Render(m.status)
	default:
		return styles.help.Render(m.status)
	}
}

func (m *Model) setStatus(kind statusKind, status string) {
	m.statusKind = kind
	m.status = status
}

func (m *Model) leaveInput() {
	m.mode = BrowseMode
	m.countInput.Blur()
	m.nameInput.Blur()
}

// refresh copies controller state into the view and rebuilds table rows.
func (m *Model) refresh() {
	m.snapshot = m.gallery.Snapshot()

	rows := make([]table.Row, len(m.snapshot.Records))
	for i, a := range m.snapshot.Records {
		rows[i] = table.Row(formatter.Row(a, m.snapshot.IsSelected(a.ID), 0))
	}
	m.table.SetRows(rows)

	if c := m.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m *Model) fetchPage(req gallery.PageRequest) tea.Cmd {
	return func() tea.Msg {
		return pageLoadedMsg(m.gallery.Fetch(req))
	}
}

// startBulk runs the aggregation on a goroutine and returns a command that relays its progress.
func (m *Model) startBulk(req gallery.BulkRequest) tea.Cmd {
	progress := make(chan tasks.ProgressUpdate, 32)
	done := make(chan gallery.BulkResult, 1)

	go func() {
		res := m.gallery.Aggregate(req, progress)
		done <- res
		close(progress)
	}()

	run := bulkRun{progress: progress, done: done}
	m.bulk = &run
	m.progress = tasks.ProgressUpdate{}
	return waitForBulk(run)
}

func waitForBulk(run bulkRun) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-run.progress
		if !ok {
			return bulkDoneMsg(<-run.done)
		}
		return bulkProgressMsg(update, run)
	}
}

func (m *Model) saveSelection(name string) tea.Cmd {
	selection := m.snapshot.Selection
	requested := max(m.requested, len(selection))
	saved := models.NewSavedSelection(0, name, requested, m.snapshot.PageSize, selection)

	return func() tea.Msg {
		err := m.saver.Create(saved)
		return selectionSavedMsg(saved, err)
	}
}
