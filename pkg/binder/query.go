package binder

import (
	"net/http"
)

// Query binds URL query parameters to fields tagged `query:"name"`.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		rv, err := structValue(v)
		if err != nil {
			return err
		}
		return bindValues(rv, "query", r.URL.Query(), ErrFailedToParseQuery)
	}
}
