package i18n

import (
	"context"
	"net/http"
	"strings"
)

// LangExtractor determines the preferred language of a request, or "".
type LangExtractor func(r *http.Request) string

type extractorConfig struct {
	cookieName     string
	queryParamName string
	supported      []string
}

// ExtractorOption configures DefaultLangExtractor.
type ExtractorOption func(*extractorConfig)

func WithCookieName(name string) ExtractorOption {
	return func(c *extractorConfig) {
		if name != "" {
			c.cookieName = name
		}
	}
}

func WithQueryParamName(name string) ExtractorOption {
	return func(c *extractorConfig) {
		if name != "" {
			c.queryParamName = name
		}
	}
}

// WithSupportedLanguages restricts results to langs.
func WithSupportedLanguages(langs ...string) ExtractorOption {
	return func(c *extractorConfig) {
		if len(langs) > 0 {
			c.supported = langs
		}
	}
}

// DefaultLangExtractor checks, in order, the "lang" cookie, the "lang" query
// parameter and the Accept-Language header. Values that match no supported
// language are skipped.
func DefaultLangExtractor(opts ...ExtractorOption) LangExtractor {
	cfg := &extractorConfig{cookieName: "lang", queryParamName: "lang"}
	for _, opt := range opts {
		opt(cfg)
	}
	matcher := newMatcher(cfg.supported)

	validate := func(lang string) string {
		lang = strings.TrimSpace(lang)
		if len(cfg.supported) == 0 || lang == "" {
			return lang
		}
		matched, _ := matchLanguage(matcher, cfg.supported, lang)
		return matched
	}

	return func(r *http.Request) string {
		if c, err := r.Cookie(cfg.cookieName); err == nil {
			if lang := validate(c.Value); lang != "" {
				return lang
			}
		}
		if lang := validate(r.URL.Query().Get(cfg.queryParamName)); lang != "" {
			return lang
		}
		if header := r.Header.Get("Accept-Language"); header != "" && len(cfg.supported) > 0 {
			return ParseAcceptLanguage(header, cfg.supported, "")
		}
		return ""
	}
}

// Middleware stores the request language in its context; requests naming
// no language get DefaultLanguage.
func Middleware(extr LangExtractor) func(http.Handler) http.Handler {
	if extr == nil {
		extr = DefaultLangExtractor()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := extr(r)
			if lang == "" {
				lang = DefaultLanguage
			}
			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), lang)))
		})
	}
}

type localeContextKey struct{}

// SetLocale stores the locale in ctx.
func SetLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, locale)
}

// GetLocale returns the locale stored in ctx, or DefaultLanguage.
func GetLocale(ctx context.Context) string {
	locale, _ := ctx.Value(localeContextKey{}).(string)
	if locale == "" {
		return DefaultLanguage
	}
	return locale
}
