package cnis

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize prepares extracted text for the pattern stages.
// Decomposed accents are composed (NFC) so accented labels match, and
// non-breaking or other exotic spaces become plain spaces. Line breaks are kept.
func Normalize(text string) string {
	text = norm.NFC.String(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\n' || r == '\t':
			b.WriteRune(r)
		case r == '\r':
			b.WriteRune('\n')
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		case unicode.Is(unicode.Cf, r):
			// zero-width and BOM runes carry no text
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// collapseSpaces trims s and folds whitespace runs into single spaces.
func collapseSpaces(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}
