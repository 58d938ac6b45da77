package signup_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casadosaber/signup/handler"
	"github.com/casadosaber/signup/modules/signup"
	"github.com/casadosaber/signup/pkg/cep"
	"github.com/casadosaber/signup/pkg/i18n"
	"github.com/casadosaber/signup/pkg/ratelimiter"
)

func serve(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func envelope(t *testing.T, rec *httptest.ResponseRecorder) handler.JSONResponse {
	t.Helper()
	var body handler.JSONResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestHandle_Mask(t *testing.T) {
	t.Parallel()
	h := newService(t, signup.NewMemorySink()).Handle()

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		rec := serve(t, h, jsonRequest(http.MethodPost, "/api/mask", `{"kind":"cep","value":"01310100"}`))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"data":{"masked":"01310-100","digits":"01310100","cursor":9}}`, rec.Body.String())
	})

	t.Run("datastar", func(t *testing.T) {
		t.Parallel()
		req := jsonRequest(http.MethodPost, "/api/mask", `{"field":"cpf","value":"11144477735","nome":"Maria"}`)
		req.Header.Set("Datastar-Request", "true")
		rec := serve(t, h, req)

		assert.Contains(t, rec.Body.String(), "datastar-patch-signals")
		assert.Contains(t, rec.Body.String(), `"cpf":"111.444.777-35"`)
	})

	t.Run("unknown kind", func(t *testing.T) {
		t.Parallel()
		rec := serve(t, h, jsonRequest(http.MethodPost, "/api/mask", `{"kind":"rg","value":"1"}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown json field", func(t *testing.T) {
		t.Parallel()
		rec := serve(t, h, jsonRequest(http.MethodPost, "/api/mask", `{"kind":"cpf","value":"1","extra":true}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandle_Validate(t *testing.T) {
	t.Parallel()
	h := newService(t, signup.NewMemorySink()).Handle()

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		rec := serve(t, h, jsonRequest(http.MethodPost, "/api/fields/cpf/validate", `{"value":"111.444.777-36"}`))
		assert.Equal(t, http.StatusOK, rec.Code)

		data := envelope(t, rec).Data.(map[string]any)
		assert.Equal(t, "cpf", data["field"])
		assert.Equal(t, "invalid", data["status"])
		assert.Equal(t, "checksum_invalid", data["reason"])
		assert.Equal(t, "Digite um CPF válido.", data["message"])
	})

	t.Run("translated by locale", func(t *testing.T) {
		t.Parallel()
		req := jsonRequest(http.MethodPost, "/api/fields/area/validate", `{"value":""}`)
		req = req.WithContext(i18n.SetLocale(req.Context(), "en"))
		rec := serve(t, h, req)

		data := envelope(t, rec).Data.(map[string]any)
		assert.Equal(t, "Select an area of interest.", data["message"])
	})

	t.Run("datastar patches the error fragment", func(t *testing.T) {
		t.Parallel()
		req := jsonRequest(http.MethodPost, "/api/fields/cpf/validate", `{"value":"111.444.777-36","mode":"live"}`)
		req.Header.Set("Datastar-Request", "true")
		rec := serve(t, h, req)

		out := rec.Body.String()
		assert.Contains(t, out, "datastar-patch-signals")
		assert.Contains(t, out, "datastar-patch-elements")
		assert.Contains(t, out, "#cpf-error")
		assert.Contains(t, out, `<div class="error-message" role="alert">Digite um CPF válido.</div>`)
	})

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()
		rec := serve(t, h, jsonRequest(http.MethodPost, "/api/fields/rg/validate", `{"value":"1"}`))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandle_LookupCEP(t *testing.T) {
	t.Parallel()
	h := newService(t, signup.NewMemorySink()).Handle()

	tests := []struct {
		name     string
		target   string
		status   int
		contains string
	}{
		{"found", "/api/cep/01310-100", http.StatusOK, `"city":"São Paulo"`},
		{"not found", "/api/cep/99999999", http.StatusNotFound, "CEP não encontrado"},
		{"malformed", "/api/cep/0131", http.StatusUnprocessableEntity, "Digite um CEP válido no formato 00000-000."},
		{"unavailable", "/api/cep/12345678?field=cep", http.StatusNoContent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			req.Header.Set("X-Form-Session", "tab-"+tt.name)
			rec := serve(t, h, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.contains != "" {
				assert.Contains(t, rec.Body.String(), tt.contains)
			} else {
				assert.Empty(t, rec.Body.String())
			}
		})
	}

	t.Run("datastar fills city and state", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/api/cep/01310100", nil)
		req.Header.Set("Datastar-Request", "true")
		rec := serve(t, h, req)

		out := rec.Body.String()
		assert.Contains(t, out, `"cidade":"São Paulo"`)
		assert.Contains(t, out, `"estado":"SP"`)
		assert.Contains(t, out, "#cep-error")
	})
}

func TestHandle_Submit(t *testing.T) {
	t.Parallel()

	t.Run("created", func(t *testing.T) {
		t.Parallel()
		sink := signup.NewMemorySink()
		h := newService(t, sink).Handle()

		body, ct := multipartBody(t, validForm(), "", nil)
		req := httptest.NewRequest(http.MethodPost, "/signup", body)
		req.Header.Set("Content-Type", ct)
		rec := serve(t, h, req)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		data := envelope(t, rec).Data.(map[string]any)
		assert.NotEmpty(t, data["id"])
		assert.Equal(t, "Formulário enviado com sucesso! Entraremos em contato em breve.", data["message"])
		assert.Equal(t, 1, sink.Len())
		assert.Equal(t, []string{"segunda", "quarta"}, sink.List()[0].Disponibilidade)
	})

	t.Run("urlencoded", func(t *testing.T) {
		t.Parallel()
		sink := signup.NewMemorySink()
		h := newService(t, sink).Handle()

		req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(validForm().Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := serve(t, h, req)

		assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, 1, sink.Len())
	})

	t.Run("invalid fields", func(t *testing.T) {
		t.Parallel()
		h := newService(t, signup.NewMemorySink()).Handle()

		form := validForm()
		form.Del("area")
		form.Set("email", "maria")
		body, ct := multipartBody(t, form, "", nil)
		req := httptest.NewRequest(http.MethodPost, "/signup", body)
		req.Header.Set("Content-Type", ct)
		rec := serve(t, h, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		env := envelope(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, "Por favor, corrija os campos destacados antes de enviar.", env.Error.Message)
		assert.Equal(t, "email", env.Meta["first_invalid"])
		assert.Equal(t, []string{"Digite um email válido."}, env.Error.Details["email"])
		assert.Equal(t, []string{"Selecione uma área de interesse."}, env.Error.Details["area"])
	})

	t.Run("name as typed", func(t *testing.T) {
		t.Parallel()

		for _, nome := range []string{"<b>Maria</b> Silva", "Mar\x00ia Silva"} {
			sink := signup.NewMemorySink()
			h := newService(t, sink).Handle()

			form := validForm()
			form.Set("nome", nome)
			req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := serve(t, h, req)

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, nome)
			env := envelope(t, rec)
			require.NotNil(t, env.Error)
			assert.Equal(t, "nome", env.Meta["first_invalid"])
			assert.Equal(t, []string{"Nome deve conter apenas letras."}, env.Error.Details["nome"])
			assert.Equal(t, 0, sink.Len())
		}
	})

	t.Run("invalid fields over datastar", func(t *testing.T) {
		t.Parallel()
		h := newService(t, signup.NewMemorySink()).Handle()

		form := validForm()
		form.Del("disponibilidade[]")
		body, ct := multipartBody(t, form, "", nil)
		req := httptest.NewRequest(http.MethodPost, "/signup", body)
		req.Header.Set("Content-Type", ct)
		req.Header.Set("Datastar-Request", "true")
		rec := serve(t, h, req)

		out := rec.Body.String()
		assert.Contains(t, out, `"first_invalid":"disponibilidade"`)
		assert.Contains(t, out, "#disponibilidade-error")
		assert.Contains(t, out, "Selecione pelo menos um dia da semana para disponibilidade.")
		assert.Contains(t, out, "#form-alert")
	})

	t.Run("duplicate", func(t *testing.T) {
		t.Parallel()
		h := newService(t, signup.NewMemorySink()).Handle()

		for range 2 {
			body, ct := multipartBody(t, validForm(), "", nil)
			req := httptest.NewRequest(http.MethodPost, "/signup", body)
			req.Header.Set("Content-Type", ct)
			rec := serve(t, h, req)
			if rec.Code == http.StatusCreated {
				continue
			}
			assert.Equal(t, http.StatusConflict, rec.Code)
			assert.Equal(t, "Já recebemos uma inscrição com este CPF.", envelope(t, rec).Error.Message)
		}
	})

	t.Run("body too large", func(t *testing.T) {
		t.Parallel()
		cfg := signup.DefaultConfig()
		cfg.MaxBodySize = 1 << 10
		svc, err := signup.NewService(cfg, signup.NewMemorySink())
		require.NoError(t, err)

		body, ct := multipartBody(t, validForm(), "cv.pdf", bytes.Repeat([]byte("a"), 4<<10))
		req := httptest.NewRequest(http.MethodPost, "/signup", body)
		req.Header.Set("Content-Type", ct)
		rec := serve(t, svc.Handle(), req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})
}

func TestHandle_LookupCEP_Concurrent(t *testing.T) {
	t.Parallel()

	// gatedProvider holds every lookup until release is closed.
	gatedProvider := func(started chan<- struct{}, release <-chan struct{}) cep.Provider {
		return cep.ProviderFunc(func(ctx context.Context, _ string) (cep.Address, error) {
			started <- struct{}{}
			select {
			case <-release:
				return cep.Address{CEP: "01310-100", City: "São Paulo", State: "SP"}, nil
			case <-ctx.Done():
				return cep.Address{}, errors.Join(cep.ErrUnavailable, ctx.Err())
			}
		})
	}

	tests := []struct {
		name    string
		session [2]string
		status  [2]int
	}{
		{"same address without session", [2]string{"", ""}, [2]int{http.StatusOK, http.StatusOK}},
		{"different sessions", [2]string{"tab-a", "tab-b"}, [2]int{http.StatusOK, http.StatusOK}},
		{"same session", [2]string{"tab-a", "tab-a"}, [2]int{http.StatusConflict, http.StatusOK}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			started := make(chan struct{}, 2)
			release := make(chan struct{})
			h := newService(t, signup.NewMemorySink(), signup.WithLookup(gatedProvider(started, release))).Handle()

			var recs [2]*httptest.ResponseRecorder
			var wg sync.WaitGroup
			for i := range 2 {
				req := httptest.NewRequest(http.MethodGet, "/api/cep/01310100", nil)
				req.RemoteAddr = fmt.Sprintf("203.0.113.7:%d", 40000+i)
				if tt.session[i] != "" {
					req.Header.Set("X-Form-Session", tt.session[i])
				}
				wg.Add(1)
				go func() {
					defer wg.Done()
					recs[i] = serve(t, h, req)
				}()
				<-started
			}
			close(release)
			wg.Wait()

			for i := range 2 {
				assert.Equal(t, tt.status[i], recs[i].Code, "request %d: %s", i, recs[i].Body.String())
			}
		})
	}
}

func TestHandle_Throttle(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	t.Cleanup(store.Close)
	limit, err := ratelimiter.NewBucket(store, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Hour})
	require.NoError(t, err)

	h := newService(t, signup.NewMemorySink(), signup.WithSubmitLimit(limit)).Handle()
	submit := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(validForm().Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.RemoteAddr = remote
		return serve(t, h, req)
	}

	assert.Equal(t, http.StatusCreated, submit("203.0.113.7:1000").Code)

	rec := submit("203.0.113.7:1001")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	body := envelope(t, rec)
	require.NotNil(t, body.Error)
	assert.Equal(t, "errors.too_many_requests", body.Error.Code)
	assert.Equal(t, "Muitas tentativas. Aguarde um momento e tente novamente.", body.Error.Message)

	// lookups are not limited by the submit bucket
	rec = serve(t, h, httptest.NewRequest(http.MethodGet, "/api/cep/01310-100", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter(t *testing.T) {
	t.Parallel()

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	var seen []string
	trace := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = append(seen, r.URL.Path)
			next.ServeHTTP(w, r)
		})
	}

	r := signup.Router(signup.RouterOptions{
		Signup:      newService(t, signup.NewMemorySink()),
		Liveness:    ok,
		Readiness:   ok,
		Metrics:     ok,
		Middlewares: []func(http.Handler) http.Handler{trace},
	})

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		assert.Equal(t, http.StatusOK, serve(t, r, httptest.NewRequest(http.MethodGet, path, nil)).Code, path)
	}
	rec := serve(t, r, jsonRequest(http.MethodPost, "/api/mask", `{"kind":"cpf","value":"1"}`))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"/api/mask"}, seen)
}
