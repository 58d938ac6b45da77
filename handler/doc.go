// Package handler adapts typed request handlers to net/http.
//
// A HandlerFunc receives a Context and a request value filled by binders
// from pkg/binder, and returns a Response:
//
//	type MaskRequest struct {
//		Kind  string `json:"kind"`
//		Value string `json:"value"`
//	}
//
//	r.Post("/api/mask", handler.Wrap(
//		handler.HandlerFunc[handler.Context, MaskRequest](mask),
//		handler.WithBinders[handler.Context, MaskRequest](binder.JSON()),
//		handler.WithErrorHandler[handler.Context, MaskRequest](errHandler),
//	))
//
// Responses adapt to the client. JSON and JSONError use a
// {"data","meta","error"} envelope. Templ renders templ components as HTML,
// or as DataStar element patches when the request comes from DataStar. SSE
// streams signal and element patches with a fallback for plain clients, and
// Empty answers 204.
//
// NewErrorHandler maps errors to status codes: HTTPError keeps its code,
// validator.ValidationErrors become 422 with per-field details, binder
// errors become 400, 413 or 415, and anything else is a 500. Messages are
// translated into the locale stored by the i18n middleware.
package handler
