// Package worddiff renders word-level differences between two strings as
// HTML change markup: removed spans are wrapped in <del> and added spans in
// <ins>.
//
// Strings are split into tokens (whitespace runs, word runs, or single other
// characters) and the token sequences are aligned with difflib's
// SequenceMatcher. Span text is rebuilt from the original tokens so
// whitespace is preserved exactly. Markup in the inputs is not parsed: tag
// characters are ordinary "other" tokens.
package worddiff

import (
	"unicode"
	"unicode/utf8"
)

// Tokenize splits s into maximal runs of whitespace, maximal runs of word
// characters (letters, numbers, underscore), and single other characters.
// Concatenating the tokens always yields s; an invalid UTF-8 byte becomes
// its own single-byte token.
func Tokenize(s string) []string {
	var tokens []string
	for i := 0; i < len(s); {
		start := i
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size

		var inClass func(rune) bool
		switch {
		case isSpace(r):
			inClass = isSpace
		case isWord(r):
			inClass = isWord
		}
		for inClass != nil && i < len(s) {
			next, nextSize := utf8.DecodeRuneInString(s[i:])
			if !inClass(next) {
				break
			}
			i += nextSize
		}
		tokens = append(tokens, s[start:i])
	}
	return tokens
}

// isSpace matches the Unicode whitespace class, including the ASCII
// information separators U+001C..U+001F.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// isBlank reports whether s is empty or only whitespace.
func isBlank(s string) bool {
	for _, r := range s {
		if !isSpace(r) {
			return false
		}
	}
	return true
}
