package validator

import (
	"fmt"
	"slices"
)

func InList[T comparable](field string, value T, allowedValues []T) Rule {
	return Rule{
		Check: func() bool {
			return slices.Contains(allowedValues, value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be one of: %v", allowedValues),
			TranslationKey: "validation.in_list",
			TranslationValues: map[string]any{
				"field":          field,
				"allowed_values": allowedValues,
			},
		},
	}
}

// AllInList validates that every selected value is one of allowedValues.
// An empty selection passes; pair it with RequiredSlice when needed.
func AllInList[T comparable](field string, values []T, allowedValues []T) Rule {
	return Rule{
		Check: func() bool {
			for _, v := range values {
				if !slices.Contains(allowedValues, v) {
					return false
				}
			}
			return true
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("every value must be one of: %v", allowedValues),
			TranslationKey: "validation.in_list",
			TranslationValues: map[string]any{
				"field":          field,
				"allowed_values": allowedValues,
			},
		},
	}
}
