// Package binder populates request structs from HTTP requests.
//
// Each binder reads one source, selected by struct tags:
//
//	type ValidateRequest struct {
//		Name     string   `path:"name"`
//		Value    string   `json:"value"`
//		Selected []string `json:"selected"`
//	}
//
// JSON decodes strictly (unknown fields fail) under a size cap. Form handles
// urlencoded and multipart bodies including uploads. Query and Path read URL
// parameters; Path takes an extractor such as chi.URLParam. Bound strings
// are NFC composed and otherwise kept as sent.
//
// Errors wrap the package sentinels, e.g. ErrUnsupportedMediaType or
// ErrRequestTooLarge, so handlers can map them to status codes.
package binder
