// package formatter renders artwork selections and pages to export formats (CSV, Markdown, JSON, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/artx/internal/models"
	"github.com/desertthunder/artx/internal/shared"
)

// Format names an export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatText     Format = "txt"
)

// Formats lists the supported export formats in display order.
var Formats = []Format{FormatCSV, FormatMarkdown, FormatJSON, FormatText}

// ParseFormat maps a user supplied format name (case-insensitive, "md" and "text" accepted) to a [Format].
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "txt", "text", "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q (expected one of csv, markdown, json, txt)", shared.ErrInvalidFormat, s)
	}
}

// Export is a named list of artworks ready to be rendered.
type Export struct {
	Name      string           `json:"name"`
	Requested int              `json:"requested"`
	PageSize  int              `json:"page_size"`
	CreatedAt time.Time        `json:"created_at"`
	Items     []models.Artwork `json:"items"`
}

// Metadata describes an export without its items.
type Metadata struct {
	Name      string    `json:"name"`
	Requested int       `json:"requested"`
	Selected  int       `json:"selected"`
	PageSize  int       `json:"page_size"`
	CreatedAt time.Time `json:"created_at"`
}

// NewExport builds an Export from an in-memory selection.
func NewExport(name string, requested, pageSize int, items []models.Artwork) *Export {
	return &Export{
		Name:      name,
		Requested: requested,
		PageSize:  pageSize,
		CreatedAt: time.Now(),
		Items:     items,
	}
}

// FromSelection builds an Export from a saved selection.
func FromSelection(s *models.SavedSelection) *Export {
	return &Export{
		Name:      s.Name(),
		Requested: s.Requested(),
		PageSize:  s.PageSize(),
		CreatedAt: s.CreatedAt(),
		Items:     s.Items(),
	}
}

// Metadata returns the export's metadata.
func (e *Export) Metadata() Metadata {
	return Metadata{
		Name:      e.Name,
		Requested: e.Requested,
		Selected:  len(e.Items),
		PageSize:  e.PageSize,
		CreatedAt: e.CreatedAt,
	}
}

// Slug returns a filesystem friendly version of the export name.
func (e *Export) Slug() string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(e.Name) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "selection"
	}
	return slug
}

// csvHeaders are the columns written by [ExportToCSV].
var csvHeaders = []string{"ID", "Title", "Place of Origin", "Artist", "Inscriptions", "Start Date", "End Date"}

// ExportToCSV converts an Export to CSV format with one row per artwork
func ExportToCSV(export *Export) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, a := range export.Items {
		record := []string{
			strconv.Itoa(a.ID),
			a.Title,
			a.PlaceOfOrigin,
			a.ArtistDisplay,
			a.Inscriptions,
			a.DateStart,
			a.DateEnd,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts an Export to a Markdown document with a summary and an artwork table
func ExportToMarkdown(export *Export) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", export.Name))
	buf.WriteString(fmt.Sprintf("**Selected**: %d of %d requested\n", len(export.Items), export.Requested))
	if export.PageSize > 0 {
		buf.WriteString(fmt.Sprintf("**Page size**: %d\n", export.PageSize))
	}
	buf.WriteString("\n## Artworks\n\n")

	if len(export.Items) == 0 {
		buf.WriteString("_No artworks selected._\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("| # | ID | Title | Artist | Origin | Dates |\n")
	buf.WriteString("| --- | --- | --- | --- | --- | --- |\n")
	for i, a := range export.Items {
		buf.WriteString(fmt.Sprintf("| %d | %d | %s | %s | %s | %s |\n",
			i+1,
			a.ID,
			escapeCell(a.Title),
			escapeCell(a.ArtistDisplay),
			escapeCell(a.PlaceOfOrigin),
			escapeCell(DateRange(a)),
		))
	}

	return buf.Bytes(), nil
}

// ExportToText converts an Export to plain text format
func ExportToText(export *Export) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Selection: %s\n", export.Name))
	buf.WriteString(fmt.Sprintf("Artworks: %d of %d requested\n\n", len(export.Items), export.Requested))

	for i, a := range export.Items {
		buf.WriteString(fmt.Sprintf("%d. [%d] %s", i+1, a.ID, fallback(a.Title, "Untitled")))
		if artist := firstLine(a.ArtistDisplay); artist != "" {
			buf.WriteString(" - " + artist)
		}
		if dates := DateRange(a); dates != "" {
			buf.WriteString(fmt.Sprintf(" (%s)", dates))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts an Export, metadata and items, to indented JSON
func ExportToJSON(export *Export) ([]byte, error) {
	return shared.MarshalJSON(export, true)
}

// ToMetadataJSON generates a JSON representation of export metadata (without items)
func ToMetadataJSON(export *Export) ([]byte, error) {
	return shared.MarshalJSON(export.Metadata(), true)
}

// Render converts export to the given format.
func Render(export *Export, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(export)
	case FormatMarkdown:
		return ExportToMarkdown(export)
	case FormatJSON:
		return ExportToJSON(export)
	case FormatText:
		return ExportToText(export)
	default:
		return nil, fmt.Errorf("%w: %q", shared.ErrInvalidFormat, format)
	}
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	ItemsFile    string
	MetadataFile string
}

// WriteCSVExport exports a selection to CSV format with accompanying metadata JSON file.
//
// Defaults to the export slug as the base filename & creates {base}_artworks.csv and {base}_metadata.json
func WriteCSVExport(export *Export, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = export.Slug()
	}
	baseFilepath = strings.TrimSuffix(baseFilepath, ".csv")

	csvData, err := ExportToCSV(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	itemsFile := baseFilepath + "_artworks.csv"
	if err := os.WriteFile(itemsFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		ItemsFile:    itemsFile,
		MetadataFile: metadataFile,
	}, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory string
	Files     []string
}

// WriteMarkdownExport exports a selection to Markdown format in a dedicated directory.
//
// Directory name defaults to the export slug.
// Creates a directory structure: {dir}/README.md and {dir}/metadata.json
func WriteMarkdownExport(export *Export, outputDir string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = export.Slug()
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	mdData, err := ExportToMarkdown(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}
	result.Files = append(result.Files, mdFile)

	metadataJSON, err := ToMetadataJSON(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := filepath.Join(outputDir, "metadata.json")
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}
	result.Files = append(result.Files, metadataFile)

	return result, nil
}

// WriteTextExport exports a selection to plain text format.
//
// Defaults to {slug}_artworks.txt as the filename.
func WriteTextExport(export *Export, path string) (string, error) {
	if path == "" {
		path = export.Slug() + "_artworks.txt"
	}

	textData, err := ExportToText(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(path, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return path, nil
}

// WriteJSONExport exports a selection to a JSON file.
//
// Defaults to {slug}.json as the filename.
func WriteJSONExport(export *Export, path string) (string, error) {
	if path == "" {
		path = export.Slug() + ".json"
	}

	data, err := ExportToJSON(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate JSON: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write JSON file: %w", err)
	}

	return path, nil
}

// WriteExport writes export in format at path (or the format's default location) and returns the files created.
func WriteExport(export *Export, format Format, path string) ([]string, error) {
	switch format {
	case FormatCSV:
		res, err := WriteCSVExport(export, path)
		if err != nil {
			return nil, err
		}
		return []string{res.ItemsFile, res.MetadataFile}, nil
	case FormatMarkdown:
		res, err := WriteMarkdownExport(export, path)
		if err != nil {
			return nil, err
		}
		return res.Files, nil
	case FormatJSON:
		file, err := WriteJSONExport(export, path)
		if err != nil {
			return nil, err
		}
		return []string{file}, nil
	case FormatText:
		file, err := WriteTextExport(export, path)
		if err != nil {
			return nil, err
		}
		return []string{file}, nil
	default:
		return nil, fmt.Errorf("%w: %q", shared.ErrInvalidFormat, format)
	}
}

// DateRange renders an artwork's start and end dates as "start-end", a single year, or "".
func DateRange(a models.Artwork) string {
	switch {
	case a.DateStart == "" && a.DateEnd == "":
		return ""
	case a.DateStart == a.DateEnd || a.DateEnd == "":
		return a.DateStart
	case a.DateStart == "":
		return a.DateEnd
	default:
		return a.DateStart + "-" + a.DateEnd
	}
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", "<br>")
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}

func fallback(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
