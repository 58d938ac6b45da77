package signup

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/casadosaber/signup/pkg/field"
)

// Alert kinds for the form-level message.
const (
	AlertError   = "error"
	AlertSuccess = "success"
)

// Views renders the HTML fragments the form patches in. Any nil view falls
// back to DefaultViews.
type Views struct {
	// FieldError is patched into "#<field>-error". It renders nothing for
	// valid and incomplete results.
	FieldError func(res field.Result) templ.Component
	// FormAlert is patched into "#form-alert".
	FormAlert func(kind, message string) templ.Component
	// ConfirmationEmail is the body of the e-mail sent after a submission.
	ConfirmationEmail func(ConfirmationEmailParams) templ.Component
}

type ConfirmationEmailParams struct {
	Lang      string
	Nome      string
	Greeting  string
	Body      string
	Signature string
}

// DefaultViews returns the built-in fragments.
func DefaultViews() *Views {
	return &Views{
		FieldError:        fieldError,
		FormAlert:         formAlert,
		ConfirmationEmail: confirmationEmail,
	}
}

func (v *Views) withDefaults() *Views {
	d := DefaultViews()
	if v == nil {
		return d
	}
	out := *v
	if out.FieldError == nil {
		out.FieldError = d.FieldError
	}
	if out.FormAlert == nil {
		out.FormAlert = d.FormAlert
	}
	if out.ConfirmationEmail == nil {
		out.ConfirmationEmail = d.ConfirmationEmail
	}
	return &out
}

func fieldError(res field.Result) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if res.Status != field.StatusInvalid {
			return nil
		}
		_, err := io.WriteString(w, `<div class="error-message" role="alert">`+templ.EscapeString(res.Message)+`</div>`)
		return err
	})
}

func formAlert(kind, message string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div class="form-alert form-alert--`+templ.EscapeString(kind)+`" role="alert">`+
			templ.EscapeString(message)+`</div>`)
		return err
	})
}

func confirmationEmail(p ConfirmationEmailParams) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<!DOCTYPE html><html lang="`+templ.EscapeString(p.Lang)+`"><body>`+
			`<p>`+templ.EscapeString(p.Greeting)+`</p>`+
			`<p>`+templ.EscapeString(p.Body)+`</p>`+
			`<p>`+templ.EscapeString(p.Signature)+`</p>`+
			`</body></html>`)
		return err
	})
}
