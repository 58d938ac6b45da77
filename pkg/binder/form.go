package binder

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"reflect"
	"strings"

	"github.com/casadosaber/signup/pkg/file"
)

// DefaultMaxMemory is the part of a multipart body kept in memory; the
// rest spills to temporary files.
const DefaultMaxMemory = 10 << 20

var fileHeaderType = reflect.TypeFor[*multipart.FileHeader]()

// Form binds application/x-www-form-urlencoded and multipart/form-data
// bodies. Fields use `form:"name"` for values and `file:"name"` for uploads
// (*multipart.FileHeader or a slice of them). Upload filenames are stripped
// of directory components.
//
//	type SignupForm struct {
//		Nome      string                `form:"nome"`
//		Dias      []string              `form:"disponibilidade"` // also matches disponibilidade[]
//		Curriculo *multipart.FileHeader `file:"curriculo"`
//	}
func Form() func(r *http.Request, v any) error {
	return FormWithMaxMemory(DefaultMaxMemory)
}

// FormWithMaxMemory is Form with a custom in-memory multipart limit. The
// total body size should be capped with http.MaxBytesReader upstream.
func FormWithMaxMemory(maxMemory int64) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		rv, err := structValue(v)
		if err != nil {
			return err
		}

		mt, params, err := mediaType(r)
		if err != nil && mt == "" {
			return fmt.Errorf("%w: expected a form body", ErrMissingContentType)
		}

		var files map[string][]*multipart.FileHeader
		switch mt {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
			}
		case "multipart/form-data":
			if params["boundary"] == "" {
				return fmt.Errorf("%w: missing boundary", ErrFailedToParseForm)
			}
			if err := r.ParseMultipartForm(maxMemory); err != nil {
				var maxErr *http.MaxBytesError
				if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
					return fmt.Errorf("%w: %v", ErrRequestTooLarge, err)
				}
				return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
			}
			files = r.MultipartForm.File
		default:
			return fmt.Errorf("%w: got %s, expected a form body", ErrUnsupportedMediaType, mt)
		}

		if err := bindValues(rv, "form", r.PostForm, ErrFailedToParseForm); err != nil {
			return err
		}
		return bindFiles(rv, files)
	}
}

func bindFiles(rv reflect.Value, files map[string][]*multipart.FileHeader) error {
	if len(files) == 0 {
		return nil
	}
	rt := rv.Type()
	for i := range rv.NumField() {
		field := rv.Field(i)
		sf := rt.Field(i)
		name, ok := tagParam(sf, "file")
		if !ok || !field.CanSet() {
			continue
		}

		headers := files[name]
		if len(headers) == 0 {
			continue
		}
		for _, fh := range headers {
			fh.Filename = file.SanitizeFilename(fh.Filename)
		}

		switch {
		case sf.Type == fileHeaderType:
			field.Set(reflect.ValueOf(headers[0]))
		case sf.Type.Kind() == reflect.Slice && sf.Type.Elem() == fileHeaderType:
			field.Set(reflect.ValueOf(headers))
		default:
			return fmt.Errorf("%w: field %s: unsupported file field type %s", ErrFailedToParseForm, sf.Name, sf.Type)
		}
	}
	return nil
}
