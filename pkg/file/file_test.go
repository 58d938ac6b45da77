package file_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casadosaber/signup/pkg/file"
)

var (
	pdfContent  = []byte("%PDF-1.7\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")
	docxContent = []byte("PK\x03\x04\x14\x00\x06\x00\x08\x00\x00\x00!\x00word/document.xml")
)

// createFileHeader builds a real multipart.FileHeader through request parsing.
func createFileHeader(filename string, content []byte) *multipart.FileHeader {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil
	}
	if _, err := part.Write(content); err != nil {
		return nil
	}
	if err := writer.Close(); err != nil {
		return nil
	}

	req := &http.Request{
		Method: http.MethodPost,
		Header: http.Header{"Content-Type": []string{writer.FormDataContentType()}},
		Body:   io.NopCloser(body),
	}
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		return nil
	}
	if files := req.MultipartForm.File["file"]; len(files) > 0 {
		return files[0]
	}
	return nil
}

func TestGetExtension(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".pdf", file.GetExtension(createFileHeader("CV.PDF", pdfContent)))
	assert.Equal(t, ".docx", file.GetExtension(createFileHeader("cv.final.docx", docxContent)))
	assert.Equal(t, "", file.GetExtension(createFileHeader("README", []byte("x"))))
	assert.Equal(t, "", file.GetExtension(nil))
}

func TestGetMIMEType(t *testing.T) {
	t.Parallel()

	t.Run("sniffs pdf", func(t *testing.T) {
		t.Parallel()
		mimeType, err := file.GetMIMEType(createFileHeader("cv.pdf", pdfContent))
		require.NoError(t, err)
		assert.Equal(t, "application/pdf", mimeType)
	})

	t.Run("ignores extension", func(t *testing.T) {
		t.Parallel()
		mimeType, err := file.GetMIMEType(createFileHeader("cv.pdf", []byte("just some text")))
		require.NoError(t, err)
		assert.Equal(t, "text/plain; charset=utf-8", mimeType)
	})

	t.Run("nil header", func(t *testing.T) {
		t.Parallel()
		_, err := file.GetMIMEType(nil)
		assert.ErrorIs(t, err, file.ErrNilFileHeader)
	})
}

func TestDetectType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		content  []byte
		want     string
	}{
		{"pdf", "cv.pdf", pdfContent, "application/pdf"},
		{"docx sniffed as zip", "cv.docx", docxContent, "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{"legacy doc", "cv.doc", []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1, 0x00}, "application/msword"},
		{"zip stays zip", "cv.zip", docxContent, "application/zip"},
		{"text", "cv.txt", []byte("hello"), "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, file.DetectType(createFileHeader(tt.filename, tt.content)))
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"curriculo.pdf", "curriculo.pdf"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\joao\cv.docx`, "cv.docx"},
		{"cv\x00.pdf", "cv.pdf"},
		{"..", "unnamed"},
		{"", "unnamed"},
		{"/", "unnamed"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, file.SanitizeFilename(tt.in), "input %q", tt.in)
	}
}
