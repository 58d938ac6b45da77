package signup

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/casadosaber/signup/handler"
	"github.com/casadosaber/signup/pkg/binder"
	"github.com/casadosaber/signup/pkg/cep"
	"github.com/casadosaber/signup/pkg/field"
	"github.com/casadosaber/signup/pkg/logger"
	"github.com/casadosaber/signup/pkg/mask"
	"github.com/casadosaber/signup/pkg/ratelimiter"
)

// Handle returns the form endpoints:
//
//	POST /api/mask
//	POST /api/fields/{name}/validate
//	GET  /api/cep/{cep}?field=cep
//	POST /signup
//
// Every endpoint answers JSON, or DataStar patches when the request comes
// from the DataStar client.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()

	r.Post("/api/mask", handler.Wrap(s.mask,
		handler.WithBinders[handler.Context, MaskRequest](handler.JSONOrSignals()),
		handler.WithErrorHandler[handler.Context, MaskRequest](s.errorHandler),
	))

	r.Post("/api/fields/{name}/validate", handler.Wrap(s.validate,
		handler.WithBinders[handler.Context, ValidateRequest](
			binder.Path(chi.URLParam),
			handler.JSONOrSignals(),
		),
		handler.WithErrorHandler[handler.Context, ValidateRequest](s.errorHandler),
	))

	r.With(s.throttle(s.lookupLimit, "lookup")).Get("/api/cep/{cep}", handler.Wrap(s.lookup,
		handler.WithBinders[handler.Context, LookupRequest](
			binder.Path(chi.URLParam),
			binder.Query(),
		),
		handler.WithErrorHandler[handler.Context, LookupRequest](s.errorHandler),
	))

	r.With(
		s.throttle(s.submitLimit, "submit"),
		limitBody(s.cfg.MaxBodySize),
	).Post("/signup", handler.Wrap(s.submit,
		handler.WithBinders[handler.Context, SubmitRequest](binder.Form()),
		handler.WithErrorHandler[handler.Context, SubmitRequest](s.errorHandler),
	))

	return r
}

// throttle limits requests per client address within scope. A nil limiter
// disables it. Store failures let the request through.
func (s *Service) throttle(rl ratelimiter.RateLimiter, scope string) func(http.Handler) http.Handler {
	if rl == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	key := func(r *http.Request) string {
		return scope + ":" + ratelimiter.RemoteIP(r)
	}
	return ratelimiter.Middleware(rl, key,
		ratelimiter.WithLimitHandler(func(w http.ResponseWriter, r *http.Request, _ *ratelimiter.Result) {
			if scope == "submit" {
				s.metrics.IncrementSubmission("throttled")
			}
			s.errorHandler(handler.NewContext(w, r), handler.ErrTooManyRequests)
		}),
		ratelimiter.WithFailOpen(func(r *http.Request, err error) {
			s.log.WarnContext(r.Context(), "rate limit store failed", logger.Error(err))
		}),
	)
}

func limitBody(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limit > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *Service) mask(_ handler.Context, req MaskRequest) handler.Response {
	res, err := s.Mask(req)
	switch {
	case errors.Is(err, ErrUnknownField):
		return handler.Error(handler.ErrNotFound)
	case errors.Is(err, mask.ErrUnknownKind):
		return handler.Error(handler.ErrBadRequest)
	}

	return handler.SSE(func(st handler.Stream) error {
		name := req.Field
		if name == "" {
			name = req.Kind
		}
		return st.SendSignals(map[string]any{name: res.Masked})
	}, handler.JSON(res))
}

func (s *Service) validate(ctx handler.Context, req ValidateRequest) handler.Response {
	res, err := s.ValidateField(ctx, req)
	if err != nil {
		return handler.Error(handler.ErrNotFound)
	}

	return handler.SSE(func(st handler.Stream) error {
		signals := map[string]any{"validation": map[string]field.Result{res.Field: res}}
		if res.Masked != "" {
			signals[res.Field] = res.Masked
		}
		if err := st.SendSignals(signals); err != nil {
			return err
		}
		return s.sendFieldError(st, res)
	}, handler.JSON(res))
}

// LookupRequest names the postal code and the input it was typed in.
type LookupRequest struct {
	CEP   string `path:"cep"`
	Field string `query:"field"`
}

func (s *Service) lookup(ctx handler.Context, req LookupRequest) handler.Response {
	out, err := s.LookupCEP(ctx, s.lookupKey(ctx.Request(), req.Field), req.CEP)
	switch {
	case err == nil:
		return handler.SSE(func(st handler.Stream) error {
			if err := st.SendSignals(map[string]any{
				FieldCEP:    out.Result.Masked,
				FieldCidade: out.Address.City,
				FieldEstado: out.Address.State,
			}); err != nil {
				return err
			}
			return s.sendFieldError(st, out.Result)
		}, handler.JSON(out))

	case errors.Is(err, cep.ErrInvalidCEP):
		return s.fieldFailure(out.Result, handler.JSONError(
			field.Report{Results: []field.Result{out.Result}}.Errors(),
			handler.WithJSONErrorMessage(out.Result.Message),
		))

	case errors.Is(err, cep.ErrNotFound):
		return s.fieldFailure(out.Result, handler.JSONError(handler.ErrNotFound,
			handler.WithJSONErrorMessage(out.Result.Message),
			handler.WithJSONMeta(map[string]any{"result": out.Result}),
		))

	case errors.Is(err, cep.ErrSuperseded):
		// A newer lookup owns the field now.
		return handler.SSE(func(handler.Stream) error { return nil }, handler.JSONError(handler.ErrConflict))

	case errors.Is(err, cep.ErrUnavailable):
		return handler.Empty()

	default:
		return handler.Error(err)
	}
}

// lookupKey identifies the input a lookup belongs to. Without a form session
// header the key is empty and the lookup is not tracked.
func (s *Service) lookupKey(r *http.Request, name string) string {
	id := r.Header.Get(s.cfg.SessionHeader)
	if id == "" {
		return ""
	}
	if name == "" {
		name = FieldCEP
	}
	return id + ":" + name
}

func (s *Service) submit(ctx handler.Context, req SubmitRequest) handler.Response {
	out, err := s.Submit(ctx, req)
	switch {
	case errors.Is(err, ErrInvalidForm):
		return handler.SSE(func(st handler.Stream) error {
			results := make(map[string]field.Result, len(out.Report.Results))
			for _, res := range out.Report.Results {
				results[res.Field] = res
			}
			if err := st.SendSignals(map[string]any{
				"error":         out.Message,
				"first_invalid": out.FirstInvalid,
				"validation":    results,
			}); err != nil {
				return err
			}
			for _, res := range out.Report.Results {
				if err := s.sendFieldError(st, res); err != nil {
					return err
				}
			}
			return st.SendComponent(s.views.FormAlert(AlertError, out.Message),
				handler.WithTarget("#form-alert"), handler.WithPatchMode(handler.PatchInner))
		}, handler.JSONError(out.Report.Errors(),
			handler.WithJSONErrorMessage(out.Message),
			handler.WithJSONMeta(map[string]any{"first_invalid": out.FirstInvalid}),
		))

	case errors.Is(err, ErrSubmissionExists):
		return handler.Error(errDuplicate)

	case err != nil:
		return handler.Error(err)
	}

	return handler.SSE(func(st handler.Stream) error {
		if err := st.SendSignals(map[string]any{
			"error":         "",
			"submitted":     true,
			"submission_id": out.ID.String(),
		}); err != nil {
			return err
		}
		return st.SendComponent(s.views.FormAlert(AlertSuccess, out.Message),
			handler.WithTarget("#form-alert"), handler.WithPatchMode(handler.PatchInner))
	}, handler.JSON(out, handler.WithJSONStatus(http.StatusCreated)))
}

var errDuplicate = handler.NewHTTPError(http.StatusConflict, "errors.duplicate")

// fieldFailure patches the field's error fragment for DataStar requests and
// renders fallback for the rest.
func (s *Service) fieldFailure(res field.Result, fallback handler.Response) handler.Response {
	return handler.SSE(func(st handler.Stream) error {
		return s.sendFieldError(st, res)
	}, fallback)
}

func (s *Service) sendFieldError(st handler.Stream, res field.Result) error {
	return st.SendComponent(s.views.FieldError(res),
		handler.WithTarget("#"+res.Field+"-error"),
		handler.WithPatchMode(handler.PatchInner),
	)
}
