package handler

import (
	"encoding/json"
	"net/http"
)

// JSONResponse is the envelope of every JSON body.
type JSONResponse struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail describes a failure. Details maps field names to messages.
type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details map[string][]string `json:"details,omitempty"`
}

type jsonResponse struct {
	status int
	body   JSONResponse
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

type JSONOption func(*jsonResponse)

func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) { r.status = status }
}

func WithJSONMeta(meta map[string]any) JSONOption {
	return func(r *jsonResponse) { r.body.Meta = meta }
}

// JSON wraps v in the data envelope with status 200.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: JSONResponse{Data: v}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONError renders err in the error envelope. The status follows the error
// (HTTPError code, 422 for validation errors, 500 otherwise) unless
// overridden.
func JSONError(err error, opts ...JSONOption) Response {
	info := classify(err)
	r := &jsonResponse{
		status: info.StatusCode,
		body:   JSONResponse{Error: &ErrorDetail{Code: info.Code, Message: info.Message, Details: info.Details}},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithJSONErrorMessage replaces the error message, usually with one that is
// already localized.
func WithJSONErrorMessage(msg string) JSONOption {
	return func(r *jsonResponse) {
		if r.body.Error != nil && msg != "" {
			r.body.Error.Message = msg
		}
	}
}
