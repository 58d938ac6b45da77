package field

import (
	"fmt"
	"strings"

	"github.com/casadosaber/signup/pkg/mask"
)

// Kind is the closed set of input kinds the signup form uses.
type Kind uint8

const (
	RequiredText Kind = iota + 1
	Email
	Phone
	BirthDate
	CPF
	CEP
	Name
	City
	File
	RadioGroup
	CheckboxGroup
	Select
)

var kindNames = map[Kind]string{
	RequiredText:  "text",
	Email:         "email",
	Phone:         "phone",
	BirthDate:     "birth_date",
	CPF:           "cpf",
	CEP:           "cep",
	Name:          "name",
	City:          "city",
	File:          "file",
	RadioGroup:    "radio",
	CheckboxGroup: "checkbox",
	Select:        "select",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, k)
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	name := strings.ToLower(string(text))
	for kind, n := range kindNames {
		if n == name {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownKind, text)
}

// Mask returns the input mask for kinds that have one.
func (k Kind) Mask() (mask.Kind, bool) {
	switch k {
	case CPF:
		return mask.CPF, true
	case Phone:
		return mask.Phone, true
	case CEP:
		return mask.CEP, true
	default:
		return 0, false
	}
}

func (k Kind) isGroup() bool {
	return k == CheckboxGroup
}
