package handler

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

type TemplOption = datastar.PatchElementOption

// WithTarget sets the CSS selector the fragment is patched into.
func WithTarget(selector string) TemplOption {
	return datastar.WithSelector(selector)
}

func WithPatchMode(mode datastar.ElementPatchMode) TemplOption {
	return datastar.WithMode(mode)
}

// TemplPatch is a component with its own patch options.
type TemplPatch struct {
	Component templ.Component
	Options   []TemplOption
}

func Patch(component templ.Component, opts ...TemplOption) TemplPatch {
	return TemplPatch{Component: component, Options: opts}
}

type templResponse struct {
	status  int
	patches []TemplPatch
}

// Render patches each component over SSE for DataStar requests and writes
// the concatenated HTML otherwise.
func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		sse := datastar.NewSSE(w, r)
		for _, p := range t.patches {
			if err := sse.PatchElementTempl(p.Component, p.Options...); err != nil {
				return err
			}
		}
		return nil
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(t.status)
	for _, p := range t.patches {
		if err := p.Component.Render(r.Context(), w); err != nil {
			return err
		}
	}
	return nil
}

// Templ renders a single component.
//
//	return handler.Templ(views.FieldError(res.Message), handler.WithTarget("#cpf-error"))
func Templ(component templ.Component, opts ...TemplOption) Response {
	return templResponse{status: http.StatusOK, patches: []TemplPatch{Patch(component, opts...)}}
}

// TemplWithStatus is Templ with a status code for plain HTML responses.
// SSE responses are always 200.
func TemplWithStatus(status int, component templ.Component, opts ...TemplOption) Response {
	return templResponse{status: status, patches: []TemplPatch{Patch(component, opts...)}}
}

// TemplMulti renders several components, each to its own target.
func TemplMulti(patches ...TemplPatch) Response {
	return templResponse{status: http.StatusOK, patches: patches}
}
