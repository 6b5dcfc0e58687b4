package worddiff

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// OpTag classifies an Opcode.
type OpTag int

const (
	// OpEqual marks a span present in both strings.
	OpEqual OpTag = iota
	// OpReplace marks a span removed from the old string and replaced by new text.
	OpReplace
	// OpDelete marks a span only present in the old string.
	OpDelete
	// OpInsert marks a span only present in the new string.
	OpInsert
)

// String returns the lower-case opcode name.
func (t OpTag) String() string {
	switch t {
	case OpEqual:
		return "equal"
	case OpReplace:
		return "replace"
	case OpDelete:
		return "delete"
	case OpInsert:
		return "insert"
	default:
		return "unknown"
	}
}

// Opcode is one step of the edit script turning the old token sequence into
// the new one. OldText and NewText are the concatenated tokens of the span on
// each side; for OpEqual they are identical.
type Opcode struct {
	Tag     OpTag
	OldText string
	NewText string
}

// Opcodes computes the edit script between two token sequences with
// difflib's SequenceMatcher: the longest matching block is taken first,
// earliest in the old sequence on ties, and the spans on either side are
// matched recursively.
func Opcodes(oldTokens, newTokens []string) []Opcode {
	matcher := difflib.NewMatcher(oldTokens, newTokens)
	codes := matcher.GetOpCodes()
	ops := make([]Opcode, 0, len(codes))
	for _, code := range codes {
		op := Opcode{
			OldText: strings.Join(oldTokens[code.I1:code.I2], ""),
			NewText: strings.Join(newTokens[code.J1:code.J2], ""),
		}
		switch code.Tag {
		case 'e':
			op.Tag = OpEqual
		case 'r':
			op.Tag = OpReplace
		case 'd':
			op.Tag = OpDelete
		case 'i':
			op.Tag = OpInsert
		default:
			continue
		}
		ops = append(ops, op)
	}
	return ops
}

// Diff renders the word-level difference between oldText and newText.
//
// Removed spans are wrapped in <del>, added spans in <ins>, and unchanged
// spans are copied verbatim. Whitespace-only removals and insertions are not
// marked; a replacement of whitespace by whitespace keeps the new text. Diff
// returns "" when nothing was marked, that is when the strings are identical
// or differ only in whitespace.
func Diff(oldText, newText string) string {
	var sb strings.Builder
	changed := false
	for _, op := range Opcodes(Tokenize(oldText), Tokenize(newText)) {
		switch op.Tag {
		case OpEqual:
			sb.WriteString(op.NewText)
		case OpReplace:
			oldBlank, newBlank := isBlank(op.OldText), isBlank(op.NewText)
			if oldBlank && newBlank {
				sb.WriteString(op.NewText)
				continue
			}
			if !oldBlank {
				writeTagged(&sb, "del", op.OldText)
				changed = true
			}
			if !newBlank {
				writeTagged(&sb, "ins", op.NewText)
				changed = true
			}
		case OpDelete:
			if !isBlank(op.OldText) {
				writeTagged(&sb, "del", op.OldText)
				changed = true
			}
		case OpInsert:
			if !isBlank(op.NewText) {
				writeTagged(&sb, "ins", op.NewText)
				changed = true
			}
		}
	}
	if !changed {
		return ""
	}
	return sb.String()
}

func writeTagged(sb *strings.Builder, tag, text string) {
	sb.WriteString("<" + tag + ">")
	sb.WriteString(text)
	sb.WriteString("</" + tag + ">")
}
