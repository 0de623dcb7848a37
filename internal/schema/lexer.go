package schema

import (
	"strings"
	"unicode"
)

// tokenize splits a definition line on whitespace and emits the
// punctuation characters '{', '}' and ',' as tokens of their own.
func tokenize(line string) []string {
	var (
		tokens []string
		cur    strings.Builder
	)

	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	for _, r := range line {
		switch {
		case unicode.IsSpace(r):
			flush()
		case r == '{' || r == '}' || r == ',':
			flush()
			tokens = append(tokens, string(r))
		default:
			cur.WriteRune(r)
		}
	}

	flush()

	return tokens
}

// isComment reports whether a trimmed line is a comment.
func isComment(trimmed string) bool {
	return strings.HasPrefix(trimmed, "#")
}

// isIdent reports whether s is a C-compatible identifier.
func isIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}

	return true
}

// isTypeName accepts ASN.1 style type references, which may contain '-'.
// The resolver maps them to C identifiers only if they name a record.
func isTypeName(s string) bool {
	return isIdent(strings.ReplaceAll(s, "-", "_"))
}
