package file

import (
	"context"
	"fmt"
)

// Config selects and configures the storage backend for uploads.
type Config struct {
	Driver   string `env:"FILE_STORAGE_DRIVER" envDefault:"local"` // "local" or "s3"
	LocalDir string `env:"FILE_LOCAL_DIR" envDefault:"./uploads"`
	BaseURL  string `env:"FILE_BASE_URL" envDefault:"/uploads/"`

	S3Bucket         string `env:"FILE_S3_BUCKET"`
	S3Region         string `env:"FILE_S3_REGION" envDefault:"sa-east-1"`
	S3AccessKeyID    string `env:"FILE_S3_ACCESS_KEY_ID"`
	S3SecretKey      string `env:"FILE_S3_SECRET_KEY"`
	S3Endpoint       string `env:"FILE_S3_ENDPOINT"`
	S3ForcePathStyle bool   `env:"FILE_S3_FORCE_PATH_STYLE" envDefault:"false"`
	S3PublicURL      string `env:"FILE_S3_PUBLIC_URL"`
}

// New builds the backend named by cfg.Driver.
func New(ctx context.Context, cfg Config, opts ...S3Option) (Storage, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalStorage(cfg.LocalDir, cfg.BaseURL)
	case "s3":
		return NewS3Storage(ctx, S3Config{
			Bucket:         cfg.S3Bucket,
			Region:         cfg.S3Region,
			AccessKeyID:    cfg.S3AccessKeyID,
			SecretKey:      cfg.S3SecretKey,
			Endpoint:       cfg.S3Endpoint,
			BaseURL:        cfg.S3PublicURL,
			ForcePathStyle: cfg.S3ForcePathStyle,
		}, opts...)
	default:
		return nil, fmt.Errorf("%w: unknown driver %q", ErrInvalidConfig, cfg.Driver)
	}
}
