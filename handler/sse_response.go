package handler

import (
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// Stream sends DataStar patches over an open SSE response.
type Stream interface {
	SendComponent(component templ.Component, opts ...TemplOption) error
	SendSignals(signals any) error
}

type stream struct {
	sse *datastar.ServerSentEventGenerator
}

func (s stream) SendComponent(component templ.Component, opts ...TemplOption) error {
	return s.sse.PatchElementTempl(component, opts...)
}

func (s stream) SendSignals(signals any) error {
	return patchSignals(s.sse, signals)
}

func patchSignals(sse *datastar.ServerSentEventGenerator, signals any) error {
	data, err := json.Marshal(signals)
	if err != nil {
		return err
	}
	return sse.PatchSignals(data)
}

type sseResponse struct {
	fn       func(Stream) error
	fallback Response
}

func (s sseResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		if s.fallback != nil {
			return s.fallback.Render(w, r)
		}
		return NewHTTPError(http.StatusBadRequest, "errors.bad_request")
	}
	return s.fn(stream{sse: datastar.NewSSE(w, r)})
}

// SSE runs fn with a stream for DataStar requests and renders fallback for
// everything else, so one handler serves both the live UI and JSON clients.
//
//	return handler.SSE(func(s handler.Stream) error {
//		if err := s.SendSignals(map[string]any{"cpf": res.Masked}); err != nil {
//			return err
//		}
//		return s.SendComponent(views.FieldError(res), handler.WithTarget("#cpf-error"))
//	}, handler.JSON(res))
func SSE(fn func(Stream) error, fallback Response) Response {
	return sseResponse{fn: fn, fallback: fallback}
}
