package report

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/coolbeans/nofodiff/pkg/compare"
	"github.com/coolbeans/nofodiff/pkg/markup"
)

// RenderHTML converts a report into a self-contained HTML document with
// inline CSS. Subsection bodies are document markup and are embedded as-is
// so the <ins>/<del> changes display inline; names and labels are escaped.
func RenderHTML(r *Report) (string, error) {
	if r == nil {
		return "", ErrNilReport
	}

	var sb strings.Builder

	sb.WriteString(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>NOFO Comparison</title>
<style>
:root {
  --status-update: #b26b00;
  --status-add: #1a7f37;
  --status-delete: #cf222e;
  --bg-light: #f6f8fa;
  --border-color: #d0d7de;
  --text-color: #1f2328;
  --text-muted: #656d76;
}
* { box-sizing: border-box; }
body {
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
  line-height: 1.5;
  color: var(--text-color);
  max-width: 1200px;
  margin: 0 auto;
  padding: 20px;
}
h1 { border-bottom: 2px solid var(--border-color); padding-bottom: 0.3em; }
h2 { border-bottom: 1px solid var(--border-color); padding-bottom: 0.2em; margin-top: 2em; }
.summary-grid {
  display: grid;
  grid-template-columns: repeat(auto-fit, minmax(160px, 1fr));
  gap: 12px;
  margin: 1em 0;
}
.summary-card {
  background: var(--bg-light);
  border: 1px solid var(--border-color);
  border-radius: 6px;
  padding: 12px;
}
.summary-card h4 {
  margin: 0 0 6px 0;
  color: var(--text-muted);
  font-size: 0.8em;
  text-transform: uppercase;
}
.summary-card .value { font-size: 1.6em; font-weight: bold; }
table { width: 100%; border-collapse: collapse; margin: 1em 0; }
th, td {
  padding: 8px 10px;
  text-align: left;
  vertical-align: top;
  border-bottom: 1px solid var(--border-color);
}
th { background: var(--bg-light); font-weight: 600; }
td.name { width: 22%; }
td.status { width: 8%; font-weight: bold; font-size: 0.85em; }
.status-match { color: var(--text-muted); }
.status-update { color: var(--status-update); }
.status-add { color: var(--status-add); }
.status-delete { color: var(--status-delete); }
ins { background: #dafbe1; text-decoration: none; }
del { background: #ffebe9; }
.footer {
  margin-top: 3em;
  padding-top: 1em;
  border-top: 1px solid var(--border-color);
  color: var(--text-muted);
  font-size: 0.9em;
}
</style>
</head>
<body>
`)

	sb.WriteString(fmt.Sprintf("<h1>NOFO Comparison: %s &rarr; %s</h1>\n", html.EscapeString(r.Old), html.EscapeString(r.New)))
	sb.WriteString(fmt.Sprintf("<p>%s</p>\n", html.EscapeString(summaryLine(r.Summary))))

	sb.WriteString("<div class=\"summary-grid\">\n")
	writeHTMLSummaryCard(&sb, "Sections", strconv.Itoa(r.Summary.Sections))
	writeHTMLSummaryCard(&sb, "Updated", strconv.Itoa(r.Summary.Subsections.Update))
	writeHTMLSummaryCard(&sb, "Added", strconv.Itoa(r.Summary.Subsections.Add))
	writeHTMLSummaryCard(&sb, "Deleted", strconv.Itoa(r.Summary.Subsections.Delete))
	writeHTMLSummaryCard(&sb, "Metadata changes", strconv.Itoa(r.Summary.Metadata.Changed()))
	sb.WriteString("</div>\n")

	if len(r.Metadata) > 0 {
		sb.WriteString("<h2>Metadata</h2>\n")
		sb.WriteString("<table>\n<thead><tr><th>Field</th><th>Status</th><th>Change</th></tr></thead>\n<tbody>\n")
		for _, row := range r.Metadata {
			change := html.EscapeString(row.NewValue)
			if row.Status != compare.StatusMatch {
				change = escapeChanges(row.Diff)
			}
			writeHTMLRow(&sb, html.EscapeString(row.Name), row.Status, change)
		}
		sb.WriteString("</tbody>\n</table>\n")
	}

	if len(r.Sections) == 0 {
		sb.WriteString("<p>No subsection changes.</p>\n")
	}

	for _, section := range r.Sections {
		sb.WriteString(fmt.Sprintf("<h2>%s</h2>\n", html.EscapeString(section.Name)))
		sb.WriteString("<table>\n<thead><tr><th>Subsection</th><th>Status</th><th>Change</th></tr></thead>\n<tbody>\n")
		for _, row := range section.Subsections {
			change := rowChange(row.Status, row.OldValue, row.NewValue, row.Diff)
			if change == "" && row.Status == compare.StatusMatch {
				change = row.NewValue
			}
			writeHTMLRow(&sb, escapeChanges(displayName(row.Name)), row.Status, change)
		}
		sb.WriteString("</tbody>\n</table>\n")
	}

	sb.WriteString("<div class=\"footer\">Generated by nofodiff.</div>\n")
	sb.WriteString("</body>\n</html>\n")

	return sb.String(), nil
}

// writeHTMLSummaryCard writes a summary card div.
func writeHTMLSummaryCard(sb *strings.Builder, title, value string) {
	sb.WriteString("<div class=\"summary-card\">\n")
	sb.WriteString(fmt.Sprintf("  <h4>%s</h4>\n", html.EscapeString(title)))
	sb.WriteString(fmt.Sprintf("  <div class=\"value\">%s</div>\n", html.EscapeString(value)))
	sb.WriteString("</div>\n")
}

// writeHTMLRow writes one table row. name and change must already be safe
// HTML.
func writeHTMLRow(sb *strings.Builder, name string, status compare.Status, change string) {
	sb.WriteString(fmt.Sprintf("<tr><td class=\"name\">%s</td><td class=\"status status-%s\">%s</td><td>%s</td></tr>\n",
		name,
		strings.ToLower(status.String()),
		status.String(),
		change))
}

// escapeChanges escapes plain text that may carry <ins>/<del> markup,
// keeping the change tags.
func escapeChanges(s string) string {
	var sb strings.Builder
	for _, span := range markup.Spans(s) {
		text := html.EscapeString(span.Text)
		switch span.Kind {
		case markup.SpanInsert:
			sb.WriteString("<ins>" + text + "</ins>")
		case markup.SpanDelete:
			sb.WriteString("<del>" + text + "</del>")
		default:
			sb.WriteString(text)
		}
	}
	return sb.String()
}
