package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casadosaber/signup/pkg/file"
)

func TestLocalStorage(t *testing.T) {
	t.Parallel()

	newStorage := func(t *testing.T) (*file.LocalStorage, string) {
		t.Helper()
		dir := t.TempDir()
		s, err := file.NewLocalStorage(dir, "/uploads")
		require.NoError(t, err)
		return s, dir
	}

	t.Run("save and delete", func(t *testing.T) {
		t.Parallel()
		s, dir := newStorage(t)
		ctx := context.Background()

		f, err := s.Save(ctx, createFileHeader("../João CV.pdf", pdfContent), "curriculos/abc.pdf")
		require.NoError(t, err)
		assert.Equal(t, "João CV.pdf", f.Filename)
		assert.Equal(t, int64(len(pdfContent)), f.Size)
		assert.Equal(t, "application/pdf", f.MIMEType)
		assert.Equal(t, ".pdf", f.Extension)
		assert.Equal(t, "curriculos/abc.pdf", f.Key)

		data, err := os.ReadFile(filepath.Join(dir, "curriculos", "abc.pdf"))
		require.NoError(t, err)
		assert.Equal(t, pdfContent, data)

		assert.Equal(t, "/uploads/curriculos/abc.pdf", s.URL(f.Key))

		require.NoError(t, s.Delete(ctx, f.Key))
		_, err = os.Stat(filepath.Join(dir, "curriculos", "abc.pdf"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("delete missing", func(t *testing.T) {
		t.Parallel()
		s, _ := newStorage(t)
		err := s.Delete(context.Background(), "nope.pdf")
		assert.ErrorIs(t, err, file.ErrFileNotFound)
	})

	t.Run("rejects traversal", func(t *testing.T) {
		t.Parallel()
		s, _ := newStorage(t)
		ctx := context.Background()

		_, err := s.Save(ctx, createFileHeader("cv.pdf", pdfContent), "../outside.pdf")
		assert.ErrorIs(t, err, file.ErrInvalidPath)

		err = s.Delete(ctx, "a/../../b.pdf")
		assert.ErrorIs(t, err, file.ErrInvalidPath)
	})

	t.Run("nil header", func(t *testing.T) {
		t.Parallel()
		s, _ := newStorage(t)
		_, err := s.Save(context.Background(), nil, "cv.pdf")
		assert.ErrorIs(t, err, file.ErrNilFileHeader)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		s, dir := newStorage(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := s.Save(ctx, createFileHeader("cv.pdf", pdfContent), "cv.pdf")
		assert.ErrorIs(t, err, file.ErrOperationCanceled)

		_, statErr := os.Stat(filepath.Join(dir, "cv.pdf"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("empty base dir", func(t *testing.T) {
		t.Parallel()
		_, err := file.NewLocalStorage("", "")
		assert.ErrorIs(t, err, file.ErrInvalidConfig)
	})
}
