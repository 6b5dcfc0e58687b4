package compare

import (
	"html"
	"strings"

	"github.com/coolbeans/nofodiff/pkg/markup"
	"github.com/coolbeans/nofodiff/pkg/nofo"
)

// PolicyPlaceholder replaces the diff of rows whose comparison policy
// suppresses the body diff.
const PolicyPlaceholder = "—"

// ApplyComparisonTypes applies each row's comparison policy:
//
//   - unset: the row is unchanged
//   - none: the row is dropped whatever its status
//   - name: an UPDATE whose name carries no change markup becomes MATCH,
//     and every UPDATE gets PolicyPlaceholder as its diff
//   - diff_strings: an UPDATE whose new body contains all required strings
//     becomes MATCH with PolicyPlaceholder; otherwise its diff lists the
//     missing strings
//   - body or anything else: the full body diff stands
//
// Rows other than UPDATE are only affected by none.
func ApplyComparisonTypes(diffs []SubsectionDiff) []SubsectionDiff {
	out := make([]SubsectionDiff, 0, len(diffs))
	for _, row := range diffs {
		switch {
		case row.ComparisonType == nofo.ComparisonNone:
			continue
		case row.ComparisonType == nofo.ComparisonDefault, row.Status != StatusUpdate:
			out = append(out, row)
		default:
			out = append(out, applyPolicy(row))
		}
	}
	return out
}

func applyPolicy(row SubsectionDiff) SubsectionDiff {
	switch row.ComparisonType {
	case nofo.ComparisonName:
		if !markup.HasChanges(row.Name) {
			row.Status = StatusMatch
		}
		row.Diff = PolicyPlaceholder
	case nofo.ComparisonDiffStrings:
		missing := MissingDiffStrings(row.NewValue, row.DiffStrings)
		if len(missing) == 0 {
			row.Status = StatusMatch
			row.Diff = PolicyPlaceholder
		} else {
			row.Diff = missingList(missing)
		}
	}
	return row
}

// MissingDiffStrings returns the required strings that do not occur in
// body. Both sides are compared after collapsing whitespace and lowercasing.
func MissingDiffStrings(body string, required []string) []string {
	haystack := markup.Normalize(body)
	var missing []string
	for _, s := range required {
		if !strings.Contains(haystack, markup.Normalize(s)) {
			missing = append(missing, s)
		}
	}
	return missing
}

func missingList(missing []string) string {
	var sb strings.Builder
	sb.WriteString("<ul>")
	for _, s := range missing {
		sb.WriteString("<li><del>")
		sb.WriteString(html.EscapeString(s))
		sb.WriteString("</del></li>")
	}
	sb.WriteString("</ul>")
	return sb.String()
}
