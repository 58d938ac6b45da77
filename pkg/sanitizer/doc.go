// Package sanitizer normalises user input before it is validated or stored.
//
// The helpers are small pure functions over strings and string slices:
//
//   - Strings: Trim, NormalizeWhitespace, RemoveControlChars and NFC, combined
//     into NormalizeName for person and place names.
//   - Format: NormalizeEmail, SanitizeFilename, and MaskEmail / MaskString
//     for keeping personal data out of logs.
//   - Collections: Deduplicate, FilterEmpty, TrimStringSlice and
//     CleanStringSlice for checkbox groups.
//
// Apply and Compose build pipelines out of any func(T) T:
//
//	clean := sanitizer.Compose(
//	    sanitizer.Trim,
//	    sanitizer.NFC,
//	)
//	name := clean(input)
package sanitizer
