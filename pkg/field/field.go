package field

import (
	"strings"

	"github.com/casadosaber/signup/pkg/sanitizer"
)

// Field describes one input of the form.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	// Options restricts radio, checkbox and select values when non-empty.
	Options []string
	// RequiredKey replaces the generic "required" message key.
	RequiredKey string
}

// Upload is the metadata of a submitted file.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
}

// Value is what the user entered for a field. Text is used by every kind
// except CheckboxGroup (Selected) and File (File).
type Value struct {
	Text     string
	Selected []string
	File     *Upload
}

// Text is a shorthand for a text value.
func Text(s string) Value {
	return Value{Text: s}
}

// Selected is a shorthand for a checkbox group value.
func Selected(values ...string) Value {
	return Value{Selected: values}
}

func (v Value) isEmpty(kind Kind) bool {
	switch {
	case kind == File:
		return v.File == nil || v.File.Filename == ""
	case kind.isGroup():
		return len(sanitizer.CleanStringSlice(v.Selected)) == 0
	default:
		return strings.TrimSpace(v.Text) == ""
	}
}

// Mode selects how strictly partially typed values are judged.
type Mode uint8

const (
	// Commit is used on blur and submit: a short value is invalid.
	Commit Mode = iota
	// Live is used while typing: a short CPF, phone or CEP is incomplete.
	Live
)

func (m Mode) String() string {
	if m == Live {
		return "live"
	}
	return "commit"
}

// ParseMode maps "live" to Live; anything else is Commit.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), "live") {
		return Live
	}
	return Commit
}
