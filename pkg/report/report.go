// Package report renders comparison results for people and tools.
//
// A Report bundles the section and metadata rows of one comparison with
// their summary. It can be rendered as indented JSON, terminal text with
// optional color, a self-contained HTML page, or a two-column side-by-side
// terminal view.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/coolbeans/nofodiff/pkg/compare"
)

// ErrNilReport is returned when rendering a nil report.
var ErrNilReport = errors.New("report is nil")

// Report is the rendered unit of one comparison.
type Report struct {
	Old      string                 `json:"old"`
	New      string                 `json:"new"`
	Summary  compare.Summary        `json:"summary"`
	Sections []compare.SectionDiff  `json:"sections"`
	Metadata []compare.MetadataDiff `json:"metadata,omitempty"`
}

// New builds a report and computes its summary. oldID and newID identify
// the compared documents, typically their file paths.
func New(oldID, newID string, sections []compare.SectionDiff, metadata []compare.MetadataDiff) *Report {
	if sections == nil {
		sections = []compare.SectionDiff{}
	}
	return &Report{
		Old:      oldID,
		New:      newID,
		Summary:  compare.Summarize(sections, metadata),
		Sections: sections,
		Metadata: metadata,
	}
}

// Format selects a renderer.
type Format string

const (
	FormatText       Format = "text"
	FormatJSON       Format = "json"
	FormatHTML       Format = "html"
	FormatSideBySide Format = "side-by-side"
)

// Formats lists the supported output formats.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatHTML, FormatSideBySide}
}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	normalized := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, format := range Formats() {
		if normalized == format {
			return format, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (expected text, json, html or side-by-side)", name)
}

// Options tune the terminal renderers.
type Options struct {
	// Color enables ANSI styling. Without it changes are marked [-old-]
	// and {+new+}.
	Color bool

	// Width is the total width of the side-by-side view.
	Width int
}

// DefaultWidth is used when Options.Width is not positive.
const DefaultWidth = 120

// Render renders r in the given format.
func Render(r *Report, format Format, opts Options) (string, error) {
	switch format {
	case FormatText, "":
		return RenderText(r, opts.Color)
	case FormatJSON:
		return RenderJSON(r)
	case FormatHTML:
		return RenderHTML(r)
	case FormatSideBySide:
		return RenderSideBySide(r, opts)
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
}

// RenderJSON converts a report into an indented JSON string.
func RenderJSON(r *Report) (string, error) {
	if r == nil {
		return "", ErrNilReport
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report to JSON: %w", err)
	}

	return string(data), nil
}

// displayName returns the subsection heading shown in reports.
func displayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "(unnamed)"
	}
	return name
}

// rowChange returns the markup shown for a row: the diff when there is one,
// otherwise the whole body wrapped as an insertion or a deletion.
func rowChange(status compare.Status, oldValue, newValue, diff string) string {
	if diff != "" {
		return diff
	}
	switch status {
	case compare.StatusAdd:
		if strings.TrimSpace(newValue) != "" {
			return "<ins>" + newValue + "</ins>"
		}
	case compare.StatusDelete:
		if strings.TrimSpace(oldValue) != "" {
			return "<del>" + oldValue + "</del>"
		}
	}
	return ""
}

// summaryLine describes the summary in one sentence.
func summaryLine(s compare.Summary) string {
	changed := s.Subsections.Changed()
	line := fmt.Sprintf("%d changed %s in %d %s (%d updated, %d added, %d deleted)",
		changed, plural(changed, "subsection", "subsections"),
		s.Sections, plural(s.Sections, "section", "sections"),
		s.Subsections.Update, s.Subsections.Add, s.Subsections.Delete)
	if s.Metadata.Total() > 0 {
		metadataChanged := s.Metadata.Changed()
		line += fmt.Sprintf("; %d changed metadata %s", metadataChanged, plural(metadataChanged, "field", "fields"))
	}
	return line
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
