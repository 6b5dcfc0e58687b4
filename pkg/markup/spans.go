package markup

import "regexp"

// SpanKind classifies a piece of a rendered diff.
type SpanKind int

const (
	// SpanEqual is text common to both versions.
	SpanEqual SpanKind = iota
	// SpanInsert is text wrapped in <ins>.
	SpanInsert
	// SpanDelete is text wrapped in <del>.
	SpanDelete
)

// Span is a run of diff text with its change kind; Text excludes the tags.
type Span struct {
	Kind SpanKind
	Text string
}

var spanPattern = regexp.MustCompile(`(?s)<del>(.*?)</del>|<ins>(.*?)</ins>`)

// Spans splits a diff into equal, inserted and deleted runs in order.
// Empty equal runs are omitted; empty change spans are kept.
func Spans(diff string) []Span {
	var spans []Span
	last := 0
	for _, loc := range spanPattern.FindAllStringSubmatchIndex(diff, -1) {
		if loc[0] > last {
			spans = append(spans, Span{Kind: SpanEqual, Text: diff[last:loc[0]]})
		}
		if loc[2] >= 0 {
			spans = append(spans, Span{Kind: SpanDelete, Text: diff[loc[2]:loc[3]]})
		} else {
			spans = append(spans, Span{Kind: SpanInsert, Text: diff[loc[4]:loc[5]]})
		}
		last = loc[1]
	}
	if last < len(diff) {
		spans = append(spans, Span{Kind: SpanEqual, Text: diff[last:]})
	}
	return spans
}
