package report

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/coolbeans/nofodiff/pkg/compare"
	"github.com/coolbeans/nofodiff/pkg/markup"
)

// statusWidth pads status labels so names line up.
const statusWidth = 8

// palette styles terminal output. Each color is toggled per instance so
// rendering does not depend on the global color.NoColor setting.
type palette struct {
	enabled  bool
	del      *color.Color
	ins      *color.Color
	heading  *color.Color
	muted    *color.Color
	statuses map[compare.Status]*color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		enabled: enabled,
		del:     color.New(color.FgRed, color.CrossedOut),
		ins:     color.New(color.FgGreen, color.Underline),
		heading: color.New(color.Bold, color.FgCyan),
		muted:   color.New(color.Faint),
		statuses: map[compare.Status]*color.Color{
			compare.StatusMatch:  color.New(color.Faint),
			compare.StatusUpdate: color.New(color.FgYellow, color.Bold),
			compare.StatusAdd:    color.New(color.FgGreen, color.Bold),
			compare.StatusDelete: color.New(color.FgRed, color.Bold),
		},
	}
	all := []*color.Color{p.del, p.ins, p.heading, p.muted}
	for _, c := range p.statuses {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// changes renders <ins>/<del> markup for a terminal.
func (p palette) changes(diff string) string {
	var sb strings.Builder
	for _, span := range markup.Spans(diff) {
		switch span.Kind {
		case markup.SpanDelete:
			if span.Text == "" {
				continue
			}
			if p.enabled {
				sb.WriteString(p.del.Sprint(span.Text))
			} else {
				sb.WriteString("[-" + span.Text + "-]")
			}
		case markup.SpanInsert:
			if span.Text == "" {
				continue
			}
			if p.enabled {
				sb.WriteString(p.ins.Sprint(span.Text))
			} else {
				sb.WriteString("{+" + span.Text + "+}")
			}
		default:
			sb.WriteString(span.Text)
		}
	}
	return sb.String()
}

func (p palette) status(s compare.Status) string {
	label := fmt.Sprintf("%-*s", statusWidth, s.String())
	if c, ok := p.statuses[s]; ok {
		return c.Sprint(label)
	}
	return label
}

// RenderText renders a report as indented terminal text.
func RenderText(r *Report, useColor bool) (string, error) {
	if r == nil {
		return "", ErrNilReport
	}

	p := newPalette(useColor)
	var sb strings.Builder

	sb.WriteString(p.heading.Sprintf("Comparing %s -> %s", r.Old, r.New))
	sb.WriteString("\n")
	sb.WriteString(summaryLine(r.Summary))
	sb.WriteString("\n")

	if len(r.Sections) == 0 {
		sb.WriteString("\nNo subsection changes.\n")
	}

	for _, section := range r.Sections {
		sb.WriteString("\n")
		sb.WriteString(p.heading.Sprintf("## %s", section.Name))
		sb.WriteString("\n")
		for _, row := range section.Subsections {
			sb.WriteString(fmt.Sprintf("  %s %s\n", p.status(row.Status), p.changes(displayName(row.Name))))
			if row.Status == compare.StatusMatch && row.Diff == "" {
				continue
			}
			change := rowChange(row.Status, row.OldValue, row.NewValue, row.Diff)
			if change != "" {
				sb.WriteString(indent(p.changes(change), strings.Repeat(" ", statusWidth+3)))
				sb.WriteString("\n")
			}
		}
	}

	if len(r.Metadata) > 0 {
		sb.WriteString("\n")
		sb.WriteString(p.heading.Sprint("## Metadata"))
		sb.WriteString("\n")
		for _, row := range r.Metadata {
			value := p.muted.Sprint(row.NewValue)
			if row.Status != compare.StatusMatch {
				value = p.changes(row.Diff)
			}
			sb.WriteString(fmt.Sprintf("  %s %s: %s\n", p.status(row.Status), row.Name, value))
		}
	}

	return sb.String(), nil
}

// indent prefixes every line of text.
func indent(text, prefix string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
