package report

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/coolbeans/nofodiff/pkg/compare"
)

// minSideBySideWidth keeps both columns readable.
const minSideBySideWidth = 40

// RenderSideBySide renders each changed row as two bordered columns: the
// old rendering of the diff on the left and the new rendering on the right.
// MATCH rows without a diff are listed by name only.
func RenderSideBySide(r *Report, opts Options) (string, error) {
	if r == nil {
		return "", ErrNilReport
	}

	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	width = max(width, minSideBySideWidth)

	p := newPalette(opts.Color)
	column := width/2 - 2
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Width(column)
	line := lipgloss.NewStyle().Width(width)
	heading := line.Bold(true).Foreground(lipgloss.Color("#5B8DEF"))

	blocks := []string{
		heading.Render(fmt.Sprintf("Comparing %s -> %s", r.Old, r.New)),
		line.Render(summaryLine(r.Summary)),
	}

	pair := func(oldText, newText string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top,
			box.Render(p.changes(oldText)),
			box.Render(p.changes(newText)))
	}

	for _, section := range compare.AnnotateSections(r.Sections) {
		blocks = append(blocks, "", heading.Render("## "+section.Name))
		for _, row := range section.Subsections {
			blocks = append(blocks, line.Render(fmt.Sprintf("%s %s", p.status(row.Status), p.changes(displayName(row.Name)))))
			if row.Status == compare.StatusMatch && row.Diff == "" {
				continue
			}
			oldText, newText := sides(row.Status, row.OldValue, row.NewValue, row.OldDiff, row.NewDiff)
			blocks = append(blocks, pair(oldText, newText))
		}
	}

	if len(r.Metadata) > 0 {
		blocks = append(blocks, "", heading.Render("## Metadata"))
		for _, row := range compare.AnnotateMetadata(r.Metadata) {
			blocks = append(blocks, line.Render(fmt.Sprintf("%s %s", p.status(row.Status), row.Name)))
			if row.Status == compare.StatusMatch {
				continue
			}
			oldText, newText := sides(row.Status, row.OldValue, row.NewValue, row.OldDiff, row.NewDiff)
			blocks = append(blocks, pair(oldText, newText))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, blocks...) + "\n", nil
}

// sides picks the text for each column, falling back to the raw values of
// added and deleted rows that carry no diff.
func sides(status compare.Status, oldValue, newValue, oldDiff, newDiff string) (string, string) {
	if oldDiff != "" || newDiff != "" {
		return oldDiff, newDiff
	}
	switch status {
	case compare.StatusAdd:
		return "", newValue
	case compare.StatusDelete:
		return oldValue, ""
	}
	return oldValue, newValue
}
