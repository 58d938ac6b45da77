package i18n_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/casadosaber/signup/pkg/i18n"
)

func TestParseAcceptLanguage(t *testing.T) {
	t.Parallel()

	supported := []string{"pt-BR", "en"}
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"empty", "", "pt-BR"},
		{"exact", "en", "en"},
		{"region of supported base", "en-GB,en;q=0.9", "en"},
		{"base of supported region", "pt", "pt-BR"},
		{"q-values", "fr;q=1.0, en;q=0.5, pt-BR;q=0.8", "pt-BR"},
		{"unsupported", "de, fr", "pt-BR"},
		{"malformed", ";;;", "pt-BR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, i18n.ParseAcceptLanguage(tt.header, supported, "pt-BR"))
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	extractor := i18n.DefaultLangExtractor(i18n.WithSupportedLanguages("pt-BR", "en"))

	tests := []struct {
		name  string
		setup func(r *http.Request)
		want  string
	}{
		{"no hints", func(*http.Request) {}, "pt-BR"},
		{"query", func(r *http.Request) { r.URL.RawQuery = "lang=en" }, "en"},
		{"cookie wins over query", func(r *http.Request) {
			r.URL.RawQuery = "lang=en"
			r.AddCookie(&http.Cookie{Name: "lang", Value: "pt-br"})
		}, "pt-BR"},
		{"unsupported cookie is skipped", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "lang", Value: "de"})
			r.Header.Set("Accept-Language", "en-US")
		}, "en"},
		{"accept-language", func(r *http.Request) { r.Header.Set("Accept-Language", "en-US,en;q=0.9") }, "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got string
			h := i18n.Middleware(extractor)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = i18n.GetLocale(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(req)
			h.ServeHTTP(httptest.NewRecorder(), req)
			assert.Equal(t, tt.want, got)
		})
	}
}
