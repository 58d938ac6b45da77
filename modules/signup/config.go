package signup

import "time"

// Config holds the signup form settings.
type Config struct {
	MaxUploadSize    int64         `env:"SIGNUP_MAX_UPLOAD_SIZE" envDefault:"5242880"`
	MaxBodySize      int64         `env:"SIGNUP_MAX_BODY_SIZE" envDefault:"6291456"`
	AllowedFileTypes []string      `env:"SIGNUP_ALLOWED_FILE_TYPES" envSeparator:"," envDefault:"application/pdf,application/msword,application/vnd.openxmlformats-officedocument.wordprocessingml.document"`
	MinAge           int           `env:"SIGNUP_MIN_AGE" envDefault:"18"`
	DefaultLanguage  string        `env:"SIGNUP_DEFAULT_LANGUAGE" envDefault:"pt-BR"`
	Areas            []string      `env:"SIGNUP_AREAS" envSeparator:"," envDefault:"educacao,cultura,comunicacao,eventos,administrativo"`
	UploadPrefix     string        `env:"SIGNUP_UPLOAD_PREFIX" envDefault:"curriculos"`
	LookupTimeout    time.Duration `env:"SIGNUP_LOOKUP_TIMEOUT" envDefault:"5s"`
	EmailTimeout     time.Duration `env:"SIGNUP_EMAIL_TIMEOUT" envDefault:"30s"`
	// SessionHeader carries the per-tab form id that keys address lookups.
	SessionHeader string `env:"SIGNUP_SESSION_HEADER" envDefault:"X-Form-Session"`
}

// DefaultConfig mirrors the env defaults, for tests and embedding.
func DefaultConfig() Config {
	return Config{
		MaxUploadSize: 5 << 20,
		MaxBodySize:   6 << 20,
		AllowedFileTypes: []string{
			"application/pdf",
			"application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		},
		MinAge:          18,
		DefaultLanguage: "pt-BR",
		Areas:           []string{"educacao", "cultura", "comunicacao", "eventos", "administrativo"},
		UploadPrefix:    "curriculos",
		LookupTimeout:   5 * time.Second,
		EmailTimeout:    30 * time.Second,
		SessionHeader:   "X-Form-Session",
	}
}
