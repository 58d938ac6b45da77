package validator

import (
	"fmt"
	"strings"

	"github.com/casadosaber/signup/pkg/mask"
)

const (
	cpfLength     = 11
	cepLength     = 8
	landlineLen   = 10
	mobileLen     = 11
	cpfBaseLength = 9
)

// IsValidCPF reports whether digits is an 11-digit CPF whose two check
// digits are correct. Sequences of one repeated digit pass the arithmetic
// but are not issued, so they are rejected.
func IsValidCPF(digits string) bool {
	if len(digits) != cpfLength || !isDigits(digits) || isRepeated(digits) {
		return false
	}

	d1, d2, ok := CPFCheckDigits(digits[:cpfBaseLength])
	if !ok {
		return false
	}
	return int(digits[9]-'0') == d1 && int(digits[10]-'0') == d2
}

// CPFCheckDigits computes both check digits for the first nine digits of a
// CPF. ok is false when first9 is not exactly nine ASCII digits.
func CPFCheckDigits(first9 string) (d1, d2 int, ok bool) {
	if len(first9) != cpfBaseLength || !isDigits(first9) {
		return 0, 0, false
	}

	d1 = cpfCheckDigit(first9, 10)
	d2 = cpfCheckDigit(first9+string(rune('0'+d1)), 11)
	return d1, d2, true
}

// cpfCheckDigit weights digits with descending weights starting at weight
// and reduces the sum modulo 11; results of 10 and 11 become 0.
func cpfCheckDigit(digits string, weight int) int {
	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * (weight - i)
	}

	d := 11 - sum%11
	if d >= 10 {
		return 0
	}
	return d
}

// IsValidBRPhone reports whether digits is a landline (10) or mobile (11)
// number including the area code.
func IsValidBRPhone(digits string) bool {
	return isDigits(digits) && (len(digits) == landlineLen || len(digits) == mobileLen)
}

// IsValidCEP reports whether digits is an 8-digit postal code.
func IsValidCEP(digits string) bool {
	return len(digits) == cepLength && isDigits(digits)
}

// ValidCPF validates the check digits of a CPF. Separators are ignored.
func ValidCPF(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return IsValidCPF(mask.ExtractDigits(value))
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid CPF",
			TranslationKey: "validation.cpf",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// ValidBRPhone validates a Brazilian phone number with area code.
// Separators are ignored.
func ValidBRPhone(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return IsValidBRPhone(mask.ExtractDigits(value))
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a phone number with area code",
			TranslationKey: "validation.phone_br",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// ValidCEP validates a Brazilian postal code. Separators are ignored.
func ValidCEP(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return IsValidCEP(mask.ExtractDigits(value))
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid CEP",
			TranslationKey: "validation.cep",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// DigitCount validates that value holds one of the allowed numbers of digits.
// Non-digit characters are ignored.
func DigitCount(field, value string, allowed ...int) Rule {
	return Rule{
		Check: func() bool {
			n := len(mask.ExtractDigits(value))
			for _, a := range allowed {
				if n == a {
					return true
				}
			}
			return false
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must have %s digits", joinInts(allowed, " or ")),
			TranslationKey: "validation.digit_count",
			TranslationValues: map[string]any{
				"field":   field,
				"allowed": allowed,
			},
		},
	}
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isRepeated(s string) bool {
	return s != "" && strings.Count(s, s[:1]) == len(s)
}

func joinInts(values []int, sep string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, sep)
}
