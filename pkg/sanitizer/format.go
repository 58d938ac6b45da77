package sanitizer

import "strings"

// NormalizeEmail trims and lowercases an address and collapses repeated dots
// in the local part. Input without exactly one @ is returned trimmed and
// lowercased.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))

	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return email
	}

	local = dotRegex.ReplaceAllString(local, ".")
	local = strings.Trim(local, ".")

	return local + "@" + domain
}

// MaskEmail keeps the first letter and the domain, for log output.
func MaskEmail(email string) string {
	email = strings.TrimSpace(email)
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return email
	}

	runes := []rune(local)
	return string(runes[0]) + strings.Repeat("*", len(runes)-1) + "@" + domain
}

// MaskString keeps visibleChars runes at each end and stars the middle.
// Strings too short to keep anything are fully starred.
func MaskString(s string, visibleChars int) string {
	if visibleChars < 0 {
		visibleChars = 0
	}

	runes := []rune(s)
	length := len(runes)
	if length <= visibleChars*2 {
		return strings.Repeat("*", length)
	}

	return string(runes[:visibleChars]) +
		strings.Repeat("*", length-visibleChars*2) +
		string(runes[length-visibleChars:])
}

// SanitizeFilename replaces characters that are unsafe on common filesystems,
// trims leading and trailing dots and spaces and caps the name at 255 bytes.
func SanitizeFilename(filename string) string {
	safe := unsafeFilenameRegex.ReplaceAllString(filename, "_")
	safe = strings.Trim(safe, " .")

	if len(safe) > 255 {
		safe = strings.ToValidUTF8(safe[:255], "")
	}

	if safe == "" {
		safe = "file"
	}

	return safe
}
