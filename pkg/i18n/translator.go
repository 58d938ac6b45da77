package i18n

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when a request names no supported language.
const DefaultLanguage = "pt-BR"

// Translator resolves dotted keys ("field.required") to messages.
// It is read-only after construction and safe for concurrent use.
type Translator struct {
	translations  map[string]map[string]any
	langs         []string
	matcher       language.Matcher
	defaultLang   string
	fallbackToKey bool
	logMissing    bool
	logger        *slog.Logger
}

// Option configures a Translator.
type Option func(*Translator)

func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = lang
		}
	}
}

// WithFallbackToKey makes T return the key itself for missing translations.
// Enabled by default.
func WithFallbackToKey(fallback bool) Option {
	return func(t *Translator) {
		t.fallbackToKey = fallback
	}
}

// WithLogger logs missing translations at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(t *Translator) {
		if l != nil {
			t.logger = l
			t.logMissing = true
		}
	}
}

// NewTranslator loads translations from adapter.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, opts ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}

	translations, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}

	langs := make([]string, 0, len(translations))
	for lang := range translations {
		if lang == "" {
			return nil, ErrInvalidLanguage
		}
		langs = append(langs, lang)
	}
	slices.Sort(langs)

	t.translations = translations
	t.langs = langs
	t.matcher = newMatcher(langs)
	return t, nil
}

// SupportedLanguages returns the loaded language codes, sorted.
func (t *Translator) SupportedLanguages() []string {
	return slices.Clone(t.langs)
}

// Match maps any language tag to the closest loaded language ("pt" and
// "pt-br" both become "pt-BR"). Unknown tags map to the default language.
func (t *Translator) Match(lang string) string {
	if _, ok := t.translations[lang]; ok {
		return lang
	}
	if matched, ok := matchLanguage(t.matcher, t.langs, lang); ok {
		return matched
	}
	return t.defaultLang
}

// HasTranslation reports whether lang itself defines key.
func (t *Translator) HasTranslation(lang, key string) bool {
	_, ok := t.lookupIn(lang, key)
	return ok
}

// T translates key into lang, substituting "%{name}" placeholders from args
// given as name, value pairs:
//
//	t.T("pt-BR", "field.file_size", "max_mb", "5")
//
// Missing keys fall back to the default language, then to the key itself
// (or "" when WithFallbackToKey(false) is set).
func (t *Translator) T(lang, key string, args ...string) string {
	if msg, ok := t.lookup(lang, key); ok {
		return Interpolate(msg, args...)
	}
	if t.fallbackToKey {
		return Interpolate(key, args...)
	}
	return ""
}

// Td is T with an explicit default message used when no language defines key.
func (t *Translator) Td(lang, key, defaultValue string, args ...string) string {
	if msg, ok := t.lookup(lang, key); ok {
		return Interpolate(msg, args...)
	}
	return Interpolate(defaultValue, args...)
}

// Tc translates key into the language stored in ctx by Middleware.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	return t.T(GetLocale(ctx), key, args...)
}

func (t *Translator) lookup(lang, key string) (string, bool) {
	resolved := t.Match(lang)
	if msg, ok := t.lookupIn(resolved, key); ok {
		return msg, true
	}
	if resolved != t.defaultLang {
		if msg, ok := t.lookupIn(t.defaultLang, key); ok {
			return msg, true
		}
	}
	if t.logMissing {
		t.logger.Debug("translation not found", slog.String("lang", resolved), slog.String("key", key))
	}
	return "", false
}

func (t *Translator) lookupIn(lang, key string) (string, bool) {
	section, ok := t.translations[lang]
	if !ok {
		return "", false
	}
	val, ok := getTranslation(section, key)
	if !ok {
		return "", false
	}
	s, ok := val.(string)
	return s, ok
}

// getTranslation walks a nested map along a dot-separated key.
func getTranslation(m map[string]any, key string) (any, bool) {
	parts := strings.Split(key, ".")
	current := m
	for i, part := range parts {
		val, ok := current[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return val, true
		}
		if current, ok = toStringMap(val); !ok {
			return nil, false
		}
	}
	return nil, false
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// Interpolate replaces "%{name}" placeholders with values from args given as
// name, value pairs. Unknown placeholders are left untouched and a trailing
// odd argument is ignored.
func Interpolate(tmpl string, args ...string) string {
	if len(args) < 2 || !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}
