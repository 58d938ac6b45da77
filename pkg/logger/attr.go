package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under the key "request_id".
// If id is nil, it returns an empty Attr.
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

// Field records the form field name under the key "field".
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// FieldKind records the field kind under the key "field_kind".
func FieldKind(kind any) slog.Attr {
	return slog.Any("field_kind", kind)
}

// CEP records a postal code under the key "cep". Eight-digit codes are
// logged in their masked form.
func CEP(cep string) slog.Attr {
	if len(cep) == 8 {
		cep = cep[:5] + "-" + cep[5:]
	}
	return slog.String("cep", cep)
}

// SubmissionID records the stored submission identifier under the key "submission_id".
// If id is nil, it returns an empty Attr.
func SubmissionID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("submission_id", id)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}
