package binder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// structValue returns the settable struct v points to.
func structValue(v any) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return reflect.Value{}, ErrInvalidTarget
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, ErrInvalidTarget
	}
	return rv, nil
}

// bindValues fills fields tagged with tagName from values. Untagged fields
// are left alone. A field tagged "name" also matches the "name[]" key
// browsers send for multi-value inputs.
func bindValues(rv reflect.Value, tagName string, values map[string][]string, bindErr error) error {
	rt := rv.Type()
	for i := range rv.NumField() {
		field := rv.Field(i)
		sf := rt.Field(i)
		if !field.CanSet() {
			continue
		}

		name, ok := tagParam(sf, tagName)
		if !ok {
			continue
		}

		vals := values[name]
		if len(vals) == 0 {
			vals = values[name+"[]"]
		}
		if len(vals) == 0 {
			continue
		}

		if err := setFieldValue(field, sf.Type, vals); err != nil {
			return fmt.Errorf("%w: field %s: %v", bindErr, sf.Name, err)
		}
	}
	return nil
}

// tagParam returns the parameter name from the tag, without options.
func tagParam(sf reflect.StructField, tagName string) (string, bool) {
	tag := sf.Tag.Get(tagName)
	if tag == "" || tag == "-" {
		return "", false
	}
	name, _, _ := strings.Cut(tag, ",")
	return name, name != ""
}

func setFieldValue(field reflect.Value, typ reflect.Type, values []string) error {
	if typ.Kind() == reflect.Pointer {
		if field.IsNil() {
			field.Set(reflect.New(typ.Elem()))
		}
		return setFieldValue(field.Elem(), typ.Elem(), values)
	}

	if typ.Kind() == reflect.Slice {
		slice := reflect.MakeSlice(typ, len(values), len(values))
		for i, v := range values {
			if err := setFieldValue(slice.Index(i), typ.Elem(), []string{v}); err != nil {
				return err
			}
		}
		field.Set(slice)
		return nil
	}

	value := values[0]
	switch typ.Kind() {
	case reflect.String:
		field.SetString(cleanString(value))

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", value)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(strings.TrimSpace(value), 10, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", value)
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(strings.TrimSpace(value), typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q", value)
		}
		field.SetFloat(n)

	case reflect.Bool:
		b, err := parseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported type %s", typ.Kind())
	}
	return nil
}

// parseBool also accepts the "on" an unchecked-value checkbox submits.
func parseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "t", "true", "on", "yes", "sim":
		return true, nil
	case "", "0", "f", "false", "off", "no", "nao", "não":
		return false, nil
	}
	return false, fmt.Errorf("invalid bool value %q", value)
}
