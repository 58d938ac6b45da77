package validator

import (
	"fmt"
	"time"
)

// AgeAt returns the age in completed calendar years on the day of now.
// Someone born on 29 February turns a year older on 1 March in common years.
func AgeAt(birthdate, now time.Time) int {
	by, bm, bd := birthdate.Date()
	ny, nm, nd := now.Date()

	age := ny - by
	if nm < bm || (nm == bm && nd < bd) {
		age--
	}
	return age
}

// ValidDate validates that value parses with layout.
func ValidDate(field, value, layout string) Rule {
	return Rule{
		Check: func() bool {
			_, err := time.Parse(layout, value)
			return err == nil
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be a date in the format %s", layout),
			TranslationKey: "validation.date_format",
			TranslationValues: map[string]any{
				"field":  field,
				"layout": layout,
			},
		},
	}
}

// MinAgeAt validates that the person born on birthdate is at least minAge
// years old on the day of now.
func MinAgeAt(field string, birthdate, now time.Time, minAge int) Rule {
	return Rule{
		Check: func() bool {
			return AgeAt(birthdate, now) >= minAge
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("minimum age of %d years required", minAge),
			TranslationKey: "validation.min_age",
			TranslationValues: map[string]any{
				"field":   field,
				"min_age": minAge,
			},
		},
	}
}

func MinAge(field string, birthdate time.Time, minAge int) Rule {
	return MinAgeAt(field, birthdate, time.Now(), minAge)
}

// ValidBirthdateAt ensures the date is not after now and not more than
// 150 years before it.
func ValidBirthdateAt(field string, value, now time.Time) Rule {
	return Rule{
		Check: func() bool {
			if value.After(now) {
				return false
			}
			return value.After(now.AddDate(-150, 0, 0))
		},
		Error: ValidationError{
			Field:          field,
			Message:        "birthdate must be a valid date not in the future and not more than 150 years ago",
			TranslationKey: "validation.valid_birthdate",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}
