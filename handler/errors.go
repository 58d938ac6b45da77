package handler

import (
	"errors"
	"net/http"
)

// HTTPError is an error with a status code. Key doubles as the translation
// key of the user facing message.
type HTTPError struct {
	Code int
	Key  string
}

func (e HTTPError) Error() string {
	return e.Key
}

func NewHTTPError(code int, key string) HTTPError {
	return HTTPError{Code: code, Key: key}
}

var (
	ErrBadRequest            = HTTPError{Code: http.StatusBadRequest, Key: "errors.bad_request"}
	ErrNotFound              = HTTPError{Code: http.StatusNotFound, Key: "errors.not_found"}
	ErrConflict              = HTTPError{Code: http.StatusConflict, Key: "errors.conflict"}
	ErrRequestEntityTooLarge = HTTPError{Code: http.StatusRequestEntityTooLarge, Key: "errors.request_too_large"}
	ErrUnsupportedMediaType  = HTTPError{Code: http.StatusUnsupportedMediaType, Key: "errors.unsupported_media_type"}
	ErrTooManyRequests       = HTTPError{Code: http.StatusTooManyRequests, Key: "errors.too_many_requests"}
	ErrUnprocessableEntity   = HTTPError{Code: http.StatusUnprocessableEntity, Key: "errors.unprocessable_entity"}
	ErrInternalServerError   = HTTPError{Code: http.StatusInternalServerError, Key: "errors.internal"}
	ErrServiceUnavailable    = HTTPError{Code: http.StatusServiceUnavailable, Key: "errors.service_unavailable"}
)

var (
	ErrNilResponse       = errors.New("handler returned nil response")
	ErrSSENotInitialized = errors.New("SSE not initialized for this request")
)
