package file

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/casadosaber/signup/pkg/validator"
)

// File describes a stored upload.
type File struct {
	Filename  string
	Size      int64
	MIMEType  string
	Extension string
	// Key locates the file inside the storage backend.
	Key string
}

// Storage keeps uploaded files.
type Storage interface {
	// Save stores the upload under key, replacing any file already there.
	Save(ctx context.Context, fh *multipart.FileHeader, key string) (*File, error)
	Delete(ctx context.Context, key string) error
	// URL returns the address the stored file is served from.
	URL(key string) string
}

// GetExtension returns the lower-cased extension of the upload, with its dot.
func GetExtension(fh *multipart.FileHeader) string {
	if fh == nil {
		return ""
	}
	return strings.ToLower(filepath.Ext(fh.Filename))
}

// GetMIMEType sniffs the first 512 bytes of the upload. The declared
// Content-Type of the part is never trusted.
func GetMIMEType(fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", ErrNilFileHeader
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, 512)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	return http.DetectContentType(buf[:n]), nil
}

// DetectType sniffs the upload and resolves generic results (DOCX sniffs as
// a zip archive) by extension.
func DetectType(fh *multipart.FileHeader) string {
	sniffed, err := GetMIMEType(fh)
	if err != nil {
		sniffed = ""
	}
	resolved := validator.ResolveFileType(sniffed, filenameOf(fh))
	if resolved == "" {
		return "application/octet-stream"
	}
	return resolved
}

// SanitizeFilename strips directories and NUL bytes from an uploaded name.
//
//	SanitizeFilename("../../etc/passwd") // "passwd"
//	SanitizeFilename(`C:\cv\joao.pdf`)   // "joao.pdf"
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = strings.ReplaceAll(filename, "\x00", "")
	filename = path.Base(filename)

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		return "unnamed"
	}
	return filename
}

// cleanKey normalizes a storage key and rejects keys escaping the root.
func cleanKey(key string) (string, error) {
	key = strings.TrimPrefix(filepath.ToSlash(key), "/")
	if key == "" || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, key)
	}
	return path.Clean(key), nil
}

func filenameOf(fh *multipart.FileHeader) string {
	if fh == nil {
		return ""
	}
	return fh.Filename
}

func describe(fh *multipart.FileHeader, key string, size int64) *File {
	return &File{
		Filename:  SanitizeFilename(fh.Filename),
		Size:      size,
		MIMEType:  DetectType(fh),
		Extension: GetExtension(fh),
		Key:       key,
	}
}
