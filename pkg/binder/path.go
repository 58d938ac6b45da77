package binder

import (
	"fmt"
	"net/http"
)

// Path binds route parameters to fields tagged `path:"name"`. extractor is
// usually chi.URLParam.
func Path(extractor func(r *http.Request, key string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: nil extractor", ErrFailedToParsePath)
		}
		rv, err := structValue(v)
		if err != nil {
			return err
		}

		values := make(map[string][]string)
		rt := rv.Type()
		for i := range rt.NumField() {
			if name, ok := tagParam(rt.Field(i), "path"); ok {
				if val := extractor(r, name); val != "" {
					values[name] = []string{val}
				}
			}
		}
		return bindValues(rv, "path", values, ErrFailedToParsePath)
	}
}
