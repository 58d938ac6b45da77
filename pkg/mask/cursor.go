package mask

import "strings"

// Separators holds every literal character a mask can insert.
const Separators = ".-() "

// IsSeparator reports whether r is one of the mask literals.
func IsSeparator(r rune) bool {
	return strings.ContainsRune(Separators, r)
}

// Edit is the result of an editing operation on a masked value.
type Edit struct {
	Value  string `json:"value"`
	Cursor int    `json:"cursor"`
}

// AdjustBackspace moves cursor back over any separators immediately before it,
// so the next deletion lands on a digit. The result is clamped to [0, len(value)].
func AdjustBackspace(value string, cursor int) int {
	cursor = clamp(cursor, 0, len(value))
	for cursor > 0 && IsSeparator(rune(value[cursor-1])) {
		cursor--
	}
	return cursor
}

// Backspace deletes the digit before cursor, re-masks the remaining digits
// and places the cursor right after the digit that preceded the deleted one.
// Separators are never deleted on their own.
func Backspace(value string, cursor int, kind Kind) Edit {
	cursor = AdjustBackspace(value, cursor)
	digits := ExtractDigits(value)

	before := len(ExtractDigits(value[:cursor]))
	if before == 0 {
		return Edit{Value: Apply(digits, kind), Cursor: 0}
	}

	digits = digits[:before-1] + digits[before:]
	masked := Apply(digits, kind)

	return Edit{Value: masked, Cursor: cursorAfterDigits(masked, before-1)}
}

// Reformat masks a freshly typed value and keeps the cursor after the same
// digit it followed in the raw input.
func Reformat(value string, cursor int, kind Kind) Edit {
	cursor = clamp(cursor, 0, len(value))
	n := min(len(ExtractDigits(value[:cursor])), kind.MaxDigits())
	masked := Format(value, kind)
	return Edit{Value: masked, Cursor: cursorAfterDigits(masked, n)}
}

// cursorAfterDigits returns the offset just past the n-th digit of masked.
func cursorAfterDigits(masked string, n int) int {
	if n <= 0 {
		return 0
	}
	seen := 0
	for i := 0; i < len(masked); i++ {
		if c := masked[i]; c >= '0' && c <= '9' {
			seen++
			if seen == n {
				return i + 1
			}
		}
	}
	return len(masked)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
