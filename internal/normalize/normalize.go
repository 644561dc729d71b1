// Package normalize holds the pure string transforms applied to every
// field before a poem record is stored or compared.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Whitespace collapses every run of whitespace (spaces, tabs, newlines)
// to a single space and trims the result. Control characters that are
// not whitespace (NUL, etc.) are dropped. Used for author and title
// fields, where internal line structure carries no meaning.
func Whitespace(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}

// Title normalizes a poem title. Whitespace only — case and punctuation
// are left alone so titles keep their published form.
func Title(s string) string {
	return Whitespace(s)
}

// Text normalizes a poem body. Line endings become \n, trailing
// whitespace is stripped per line, and leading/trailing blank lines are
// dropped. Internal line structure is preserved. Within a line, tabs
// become single spaces and other control characters are dropped, so a
// normalized body carries no control characters besides \n.
func Text(s string) string {
	s = norm.NFC.String(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		line = strings.Map(func(r rune) rune {
			switch {
			case r == '\t':
				return ' '
			case unicode.IsControl(r):
				return -1
			}
			return r
		}, line)
		lines[i] = strings.TrimRight(line, " ")
	}

	start := 0
	end := len(lines)
	for start < end && lines[start] == "" {
		start++
	}
	for end > start && lines[end-1] == "" {
		end--
	}

	return strings.Join(lines[start:end], "\n")
}

// Fold produces the comparison form of a field for duplicate detection:
// collapsed whitespace, Unicode case-folded. Exact-match only; no
// punctuation or ellipsis stripping.
func Fold(s string) string {
	return cases.Fold().String(Whitespace(s))
}

// IsBlank reports whether a value is empty or whitespace-only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
