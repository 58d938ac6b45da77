package cep

import (
	"context"

	"github.com/casadosaber/signup/pkg/mask"
)

// Address is the result of a successful postal code lookup.
type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"street,omitempty"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	IBGE         string `json:"ibge,omitempty"`
}

// Provider resolves a postal code to an address.
// Implementations return ErrInvalidCEP, ErrNotFound or ErrUnavailable.
type Provider interface {
	Lookup(ctx context.Context, cep string) (Address, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, cep string) (Address, error)

func (f ProviderFunc) Lookup(ctx context.Context, cep string) (Address, error) {
	return f(ctx, cep)
}

// Normalize returns the eight digits of cep, or ErrInvalidCEP.
// Separators are ignored; any other digit count is rejected.
func Normalize(cep string) (string, error) {
	digits := mask.ExtractDigits(cep)
	if len(digits) != mask.CEP.MaxDigits() {
		return "", ErrInvalidCEP
	}
	return digits, nil
}
