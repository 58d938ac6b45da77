package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage keeps files below a base directory. Keys can never resolve
// outside of it.
type LocalStorage struct {
	baseDir string
	baseURL string
}

// NewLocalStorage creates baseDir if needed. baseURL prefixes the URLs
// returned by URL, e.g. "/uploads/".
func NewLocalStorage(baseDir, baseURL string) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}

	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &LocalStorage{baseDir: abs, baseURL: baseURL}, nil
}

// Save copies the upload to key. Partial files are removed on failure.
func (s *LocalStorage) Save(ctx context.Context, fh *multipart.FileHeader, key string) (*File, error) {
	if fh == nil {
		return nil, ErrNilFileHeader
	}
	key, err := cleanKey(key)
	if err != nil {
		return nil, err
	}
	dst, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = src.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}

	written, err := io.Copy(out, &ctxReader{ctx: ctx, r: src})
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(dst)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errors.Join(ErrOperationCanceled, ctxErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}

	return describe(fh, key, written), nil
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(ErrOperationCanceled, err)
	}
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	p, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, key)
		}
		return fmt.Errorf("%w: %v", ErrFailedToDeleteFile, err)
	}
	return nil
}

func (s *LocalStorage) URL(key string) string {
	return s.baseURL + strings.TrimPrefix(filepath.ToSlash(filepath.Clean(key)), "/")
}

// resolve maps a clean key to an absolute path inside baseDir.
func (s *LocalStorage) resolve(key string) (string, error) {
	p := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if !strings.HasPrefix(p, s.baseDir+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, key)
	}
	return p, nil
}

// ctxReader stops a copy once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
