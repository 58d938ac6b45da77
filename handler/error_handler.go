package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/casadosaber/signup/pkg/binder"
	"github.com/casadosaber/signup/pkg/environment"
	"github.com/casadosaber/signup/pkg/i18n"
	"github.com/casadosaber/signup/pkg/logger"
	"github.com/casadosaber/signup/pkg/validator"
)

// StatusClientClosedRequest is logged when the client went away mid request.
const StatusClientClosedRequest = 499

// Translator resolves message keys; *i18n.Translator satisfies it.
type Translator interface {
	Td(lang, key, defaultValue string, args ...string) string
}

// ErrorHandlerConfig configures NewErrorHandler.
type ErrorHandlerConfig struct {
	// Translator localizes messages. Nil uses the built-in pt-BR texts.
	Translator Translator

	// ErrorToast renders the message for DataStar requests. When nil the
	// message is sent as the "error" signal only.
	ErrorToast func(message string) templ.Component

	// ToastTarget defaults to "#form-alert".
	ToastTarget string
	ToastMode   datastar.ElementPatchMode
}

// errorInfo is an error classified for the client.
type errorInfo struct {
	StatusCode int
	Code       string
	Message    string
	Details    map[string][]string
	validation validator.ValidationErrors
}

var defaultMessages = map[string]string{
	"errors.bad_request":            "Requisição inválida.",
	"errors.not_found":              "Recurso não encontrado.",
	"errors.conflict":               "A requisição foi substituída por outra mais recente.",
	"errors.request_too_large":      "O envio excede o tamanho máximo permitido.",
	"errors.unsupported_media_type": "Formato de requisição não suportado.",
	"errors.unprocessable_entity":   "Por favor, corrija os campos destacados antes de enviar.",
	"errors.validation":             "Por favor, corrija os campos destacados antes de enviar.",
	"errors.too_many_requests":      "Muitas tentativas. Aguarde um momento e tente novamente.",
	"errors.internal":               "Ocorreu um erro inesperado. Tente novamente em instantes.",
	"errors.service_unavailable":    "Serviço temporariamente indisponível.",
	"errors.cancelled":              "Requisição cancelada.",
}

func classify(err error) errorInfo {
	var (
		httpErr HTTPError
		ve      validator.ValidationErrors
	)
	switch {
	case errors.As(err, &ve):
		return errorInfo{
			StatusCode: http.StatusUnprocessableEntity,
			Code:       "errors.validation",
			Message:    defaultMessages["errors.validation"],
			Details:    ve.Messages(),
			validation: ve,
		}
	case errors.As(err, &httpErr):
		return info(httpErr.Code, httpErr.Key)
	case errors.Is(err, binder.ErrRequestTooLarge):
		return info(http.StatusRequestEntityTooLarge, ErrRequestEntityTooLarge.Key)
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		return info(http.StatusUnsupportedMediaType, ErrUnsupportedMediaType.Key)
	case errors.Is(err, binder.ErrFailedToParseJSON), errors.Is(err, binder.ErrFailedToParseForm),
		errors.Is(err, binder.ErrFailedToParseQuery), errors.Is(err, binder.ErrFailedToParsePath),
		errors.Is(err, binder.ErrInvalidTarget):
		return info(http.StatusBadRequest, ErrBadRequest.Key)
	case errors.Is(err, context.Canceled):
		return info(StatusClientClosedRequest, "errors.cancelled")
	default:
		return info(http.StatusInternalServerError, ErrInternalServerError.Key)
	}
}

func info(status int, key string) errorInfo {
	msg, ok := defaultMessages[key]
	if !ok {
		msg = http.StatusText(status)
	}
	return errorInfo{StatusCode: status, Code: key, Message: msg}
}

// translate localizes the message and the per-field details.
func (e errorInfo) translate(t Translator, lang string) errorInfo {
	if t == nil {
		return e
	}
	e.Message = t.Td(lang, e.Code, e.Message)
	if len(e.validation) > 0 {
		details := make(map[string][]string, len(e.Details))
		for _, ve := range e.validation {
			msg := ve.Message
			if ve.TranslationKey != "" {
				msg = t.Td(lang, ve.TranslationKey, ve.Message, flatten(ve.TranslationValues)...)
			}
			details[ve.Field] = append(details[ve.Field], msg)
		}
		e.Details = details
	}
	return e
}

// flatten turns placeholder values into name, value pairs in key order.
func flatten(values map[string]any) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(values)*2)
	for _, k := range keys {
		out = append(out, k, fmt.Sprint(values[k]))
	}
	return out
}

// writeError answers a DataStar request with signal and toast patches and
// any other request with the JSON error envelope.
func writeError(ctx Context, info errorInfo, debug string) error {
	w, r := ctx.ResponseWriter(), ctx.Request()
	if sse := ctx.SSE(); sse != nil {
		return patchSignals(sse, map[string]any{
			"error":   info.Message,
			"details": info.Details,
		})
	}

	status := info.StatusCode
	if status == StatusClientClosedRequest {
		return nil
	}
	body := JSONResponse{Error: &ErrorDetail{Code: info.Code, Message: info.Message, Details: info.Details}}
	if debug != "" {
		body.Meta = map[string]any{"debug": debug}
	}
	return jsonResponse{status: status, body: body}.Render(w, r)
}

// NewErrorHandler logs the error and answers in the client's language. 4xx
// errors are logged at warn, 5xx at error. Outside production the JSON body
// carries the raw error under meta.debug.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#form-alert"
	}
	if cfg.ToastMode == "" {
		cfg.ToastMode = PatchInner
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		info := classify(err).translate(cfg.Translator, i18n.GetLocale(r.Context()))

		level := slog.LevelError
		if info.StatusCode < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.LogAttrs(r.Context(), level, "request failed",
			logger.Component("handler"),
			logger.Error(err),
			slog.Int("status", info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Bool("datastar", IsDataStar(r)),
		)

		if IsDataStar(r) && cfg.ErrorToast != nil {
			sse := ctx.SSE()
			_ = patchSignals(sse, map[string]any{"error": info.Message, "details": info.Details})
			if rerr := sse.PatchElementTempl(cfg.ErrorToast(info.Message),
				datastar.WithSelector(cfg.ToastTarget), datastar.WithMode(cfg.ToastMode)); rerr != nil {
				log.ErrorContext(r.Context(), "failed to render error toast", logger.Error(rerr), logger.Event("render_error_toast"))
			}
			return
		}

		debug := ""
		if !environment.IsProduction(r.Context()) {
			debug = err.Error()
		}
		if werr := writeError(ctx, info, debug); werr != nil {
			log.ErrorContext(r.Context(), "failed to write error response", logger.Error(werr))
		}
	}
}
