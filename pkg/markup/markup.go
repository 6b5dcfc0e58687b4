// Package markup provides the small amount of HTML awareness the comparison
// engine needs: stripping tags from headings, recognising and removing the
// <ins>/<del> change spans produced by worddiff, splitting a change diff into
// its old and new renderings, and normalizing text for substring checks.
//
// Bodies are never parsed as documents; change spans are located textually
// because worddiff emits them with exact, attribute-free tags.
package markup

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	insSpan    = regexp.MustCompile(`(?s)<ins>(.*?)</ins>`)
	delSpan    = regexp.MustCompile(`(?s)<del>(.*?)</del>`)
	changeSpan = regexp.MustCompile(`(?s)<del>.*?</del>|<ins>.*?</ins>`)
)

// HasChanges reports whether s contains an <ins> or <del> change tag.
func HasChanges(s string) bool {
	return strings.Contains(s, "<del>") || strings.Contains(s, "<ins>")
}

// StripChanges removes every <del>...</del> and <ins>...</ins> span,
// leaving only the text common to both sides of a diff.
func StripChanges(s string) string {
	return changeSpan.ReplaceAllString(s, "")
}

// OldSide returns the "old" rendering of a diff: <del> spans are kept and
// the content of <ins> spans is emptied.
func OldSide(diff string) string {
	return insSpan.ReplaceAllString(diff, "<ins></ins>")
}

// NewSide returns the "new" rendering of a diff: <ins> spans are kept and
// the content of <del> spans is emptied.
func NewSide(diff string) string {
	return delSpan.ReplaceAllString(diff, "<del></del>")
}

// StripTags removes all markup tags from s and keeps the text between them.
// Character references are left as written so the result can be diffed
// against other raw markup.
func StripTags(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return sb.String()
		case html.TextToken:
			sb.Write(z.Raw())
		}
	}
}

// CollapseWhitespace replaces every whitespace run with a single space and
// trims both ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Normalize collapses whitespace and lower-cases s so that required
// strings can be matched regardless of line wrapping or capitalisation.
func Normalize(s string) string {
	// A Caser keeps state between calls, so each call gets its own.
	return cases.Lower(language.Und).String(CollapseWhitespace(s))
}
