package mask

import (
	"fmt"
	"strings"
)

// Kind selects the mask applied to a digit string.
type Kind uint8

const (
	CPF Kind = iota + 1
	Phone
	CEP
)

const (
	cpfPattern      = "000.000.000-00"
	mobilePattern   = "(00) 00000-0000"
	landlinePattern = "(00) 0000-0000"
	cepPattern      = "00000-000"

	// placeholder marks a digit slot in a pattern.
	placeholder = '0'

	// landlineDigits is the only digit count rendered with a 4-digit first block.
	landlineDigits = 10
	// areaCodeDigits must be followed by at least one more digit before the
	// area code is wrapped in parentheses.
	areaCodeDigits = 2
)

// ParseKind maps a mask name to a Kind. Both English and Portuguese field
// names are accepted, case-insensitively.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "cpf":
		return CPF, nil
	case "phone", "telefone":
		return Phone, nil
	case "cep", "postal_code":
		return CEP, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
}

func (k Kind) String() string {
	switch k {
	case CPF:
		return "cpf"
	case Phone:
		return "phone"
	case CEP:
		return "cep"
	default:
		return "unknown"
	}
}

// MaxDigits returns the number of digits a complete value of this kind holds.
func (k Kind) MaxDigits() int {
	switch k {
	case CPF:
		return 11
	case Phone:
		return 11
	case CEP:
		return 8
	default:
		return 0
	}
}

// Pattern returns the canonical mask, with 0 standing for a digit.
// For Phone it is the mobile layout.
func (k Kind) Pattern() string {
	switch k {
	case CPF:
		return cpfPattern
	case Phone:
		return mobilePattern
	case CEP:
		return cepPattern
	default:
		return ""
	}
}

// ExtractDigits removes every character that is not an ASCII digit.
func ExtractDigits(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Apply formats digits with the mask of the given kind. Digits beyond
// kind.MaxDigits() are dropped and non-digit characters are ignored.
func Apply(digits string, kind Kind) string {
	digits = ExtractDigits(digits)
	if max := kind.MaxDigits(); len(digits) > max {
		digits = digits[:max]
	}

	switch kind {
	case CPF:
		return applyPattern(cpfPattern, digits)
	case CEP:
		return applyPattern(cepPattern, digits)
	case Phone:
		if len(digits) <= areaCodeDigits {
			return digits
		}
		if len(digits) == landlineDigits {
			return applyPattern(landlinePattern, digits)
		}
		return applyPattern(mobilePattern, digits)
	default:
		return digits
	}
}

// Format is Apply(ExtractDigits(raw), kind).
func Format(raw string, kind Kind) string {
	return Apply(ExtractDigits(raw), kind)
}

// applyPattern fills the placeholders of pattern with digits. Literals are
// written only while digits remain, so the output never ends in a separator.
func applyPattern(pattern, digits string) string {
	var b strings.Builder
	b.Grow(len(pattern))

	next := 0
	for i := 0; i < len(pattern) && next < len(digits); i++ {
		if pattern[i] != placeholder {
			b.WriteByte(pattern[i])
			continue
		}
		b.WriteByte(digits[next])
		next++
	}

	return b.String()
}
