package validator

import (
	"fmt"
	"mime"
	"path/filepath"
	"slices"
	"strings"
)

// Content types that carry no information about the document format.
// http.DetectContentType reports DOCX files as application/zip and DOC files
// as application/octet-stream.
var genericContentTypes = []string{
	"",
	"application/octet-stream",
	"application/zip",
	"application/x-zip-compressed",
}

// Document types recognised by extension when the content type is generic.
var documentTypesByExtension = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// MaxFileSize validates that size does not exceed max bytes.
func MaxFileSize(field string, size, max int64) Rule {
	return Rule{
		Check: func() bool {
			return size >= 0 && size <= max
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("file must be at most %d MB", max/(1<<20)),
			TranslationKey: "validation.file_size",
			TranslationValues: map[string]any{
				"field":  field,
				"max":    max,
				"max_mb": max / (1 << 20),
			},
		},
	}
}

// AllowedFileType validates the MIME type of an upload against allowed.
// When contentType is generic the extension of filename decides.
func AllowedFileType(field, contentType, filename string, allowed []string) Rule {
	return Rule{
		Check: func() bool {
			return slices.Contains(allowed, ResolveFileType(contentType, filename))
		},
		Error: ValidationError{
			Field:          field,
			Message:        "file type is not allowed",
			TranslationKey: "validation.file_type",
			TranslationValues: map[string]any{
				"field":   field,
				"allowed": allowed,
			},
		},
	}
}

// ResolveFileType returns the media type of contentType without parameters,
// falling back to the extension of filename for generic types.
func ResolveFileType(contentType, filename string) string {
	mediaType := strings.ToLower(strings.TrimSpace(contentType))
	if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
		mediaType = parsed
	}

	if !slices.Contains(genericContentTypes, mediaType) {
		return mediaType
	}

	if byExt, ok := documentTypesByExtension[strings.ToLower(filepath.Ext(filename))]; ok {
		return byExt
	}
	return mediaType
}
