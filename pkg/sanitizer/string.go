package sanitizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Trim removes leading and trailing whitespace from a string.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeWhitespace collapses runs of spaces, tabs and newlines into a
// single space and trims the result.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// RemoveControlChars drops control characters, keeping newlines and tabs.
func RemoveControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// NFC composes combining sequences, so "e" followed by U+0301 becomes "é".
// Browsers on some platforms submit decomposed accents.
func NFC(s string) string {
	return norm.NFC.String(s)
}

// NormalizeName prepares a person or place name for validation and storage.
var NormalizeName = Compose(
	StripHTML,
	RemoveControlChars,
	NFC,
	NormalizeWhitespace,
)
