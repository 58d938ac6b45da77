package sanitizer

import "strings"

// Deduplicate keeps the first occurrence of every item, preserving order.
func Deduplicate[T comparable](slice []T) []T {
	seen := make(map[T]bool, len(slice))
	result := make([]T, 0, len(slice))

	for _, item := range slice {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}

	return result
}

// FilterEmpty removes empty and whitespace-only strings.
func FilterEmpty(slice []string) []string {
	result := make([]string, 0, len(slice))
	for _, item := range slice {
		if strings.TrimSpace(item) != "" {
			result = append(result, item)
		}
	}
	return result
}

func TrimStringSlice(slice []string) []string {
	result := make([]string, len(slice))
	for i, item := range slice {
		result[i] = strings.TrimSpace(item)
	}
	return result
}

// CleanStringSlice is the cleanup applied to checkbox and multi-select values.
func CleanStringSlice(slice []string) []string {
	return Apply(slice,
		TrimStringSlice,
		FilterEmpty,
		Deduplicate[string],
	)
}
