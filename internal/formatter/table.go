package formatter

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/desertthunder/artx/internal/models"
)

// TableColumns are the headers shared by the CLI table and the TUI.
var TableColumns = []string{"", "ID", "Title", "Origin", "Artist", "Inscriptions", "Start", "End"}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	selectedStyle = cellStyle.Foreground(lipgloss.Color("#a6e3a1"))
)

// Checkbox renders the selection marker for a row.
func Checkbox(selected bool) string {
	if selected {
		return "[x]"
	}
	return "[ ]"
}

// Row flattens an artwork into table cells, truncating long text to maxWidth runes (0 keeps it whole).
func Row(a models.Artwork, selected bool, maxWidth int) []string {
	return []string{
		Checkbox(selected),
		strconv.Itoa(a.ID),
		Truncate(firstLine(a.Title), maxWidth),
		Truncate(firstLine(a.PlaceOfOrigin), maxWidth),
		Truncate(firstLine(a.ArtistDisplay), maxWidth),
		Truncate(firstLine(a.Inscriptions), maxWidth),
		a.DateStart,
		a.DateEnd,
	}
}

// RenderTable draws records as a bordered table; isSelected may be nil.
func RenderTable(records []models.Artwork, isSelected func(id int) bool, maxWidth int) string {
	rows := make([][]string, 0, len(records))
	selected := make([]bool, len(records))
	for i, a := range records {
		selected[i] = isSelected != nil && isSelected(a.ID)
		rows = append(rows, Row(a, selected[i], maxWidth))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(TableColumns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row >= 0 && row < len(selected) && selected[row]:
				return selectedStyle
			default:
				return cellStyle
			}
		})

	return t.String()
}

// PageLabel renders "Page N" or "Page N of M" when the total is known.
func PageLabel(page, totalPages int) string {
	if totalPages > 0 {
		return fmt.Sprintf("Page %d of %d", page, totalPages)
	}
	return fmt.Sprintf("Page %d", page)
}

// Truncate shortens s to at most width runes, ending with an ellipsis when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
