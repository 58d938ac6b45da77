package handler

import (
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/casadosaber/signup/pkg/binder"
)

const (
	// DataStarRequestHeader is sent by the DataStar client on every fetch.
	DataStarRequestHeader = "Datastar-Request"
	DataStarQueryParam    = "datastar"
)

const (
	PatchOuter   = datastar.ElementPatchModeOuter
	PatchInner   = datastar.ElementPatchModeInner
	PatchReplace = datastar.ElementPatchModeReplace
	PatchRemove  = datastar.ElementPatchModeRemove
	PatchAppend  = datastar.ElementPatchModeAppend
	PatchPrepend = datastar.ElementPatchModePrepend
)

// IsDataStar reports whether r comes from the DataStar client and expects
// an SSE response.
func IsDataStar(r *http.Request) bool {
	if r.Header.Get(DataStarRequestHeader) == "true" {
		return true
	}
	if strings.Contains(r.Header.Get("Accept"), "text/event-stream") {
		return true
	}
	return r.URL.Query().Has(DataStarQueryParam)
}

// Signals binds DataStar signals. Unknown signals are ignored since the
// client sends every signal on the page.
func Signals() Bind {
	return func(r *http.Request, v any) error {
		if err := datastar.ReadSignals(r, v); err != nil {
			return NewHTTPError(http.StatusBadRequest, "errors.bad_request")
		}
		return nil
	}
}

// JSONOrSignals reads DataStar signals for DataStar requests and strict JSON
// otherwise.
func JSONOrSignals() Bind {
	signals, strict := Signals(), binder.JSON()
	return func(r *http.Request, v any) error {
		if IsDataStar(r) {
			return signals(r, v)
		}
		return strict(r, v)
	}
}
