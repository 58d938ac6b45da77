package validator

import (
	"regexp"
	"strings"
)

var (
	// Same shape check the signup page runs in the browser.
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// Letters (including accented Latin letters) and whitespace.
	lettersRegex = regexp.MustCompile(`^[A-Za-zÀ-ÿ\s]+$`)
)

// ValidEmail validates the local@domain.tld shape of an email address.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return emailRegex.MatchString(strings.TrimSpace(value))
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid email address",
			TranslationKey: "validation.email",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// ValidLetters validates that a string holds only letters and spaces.
// Accented Latin letters (À-ÿ) are accepted; pass NFC-normalized input.
func ValidLetters(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return false
			}
			return lettersRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must contain only letters and spaces",
			TranslationKey: "validation.letters",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}
