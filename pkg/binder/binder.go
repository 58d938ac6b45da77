package binder

import (
	"mime"
	"net/http"
	"strings"

	"github.com/casadosaber/signup/pkg/sanitizer"
)

// cleanString composes decomposed accents. Other characters are left for the
// validators to judge.
var cleanString = sanitizer.NFC

// mediaType returns the lower-cased media type of the request.
func mediaType(r *http.Request) (string, map[string]string, error) {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return "", nil, ErrMissingContentType
	}
	mt, params, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(strings.Split(ct, ";")[0])), nil, err
	}
	return mt, params, nil
}
