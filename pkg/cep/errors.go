package cep

import (
	"errors"

	"github.com/casadosaber/signup/pkg/async"
)

var (
	ErrInvalidCEP  = errors.New("cep: must have 8 digits")
	ErrNotFound    = errors.New("cep: address not found")
	ErrUnavailable = errors.New("cep: lookup service unavailable")
	ErrCircuitOpen = errors.New("cep: circuit open")

	// ErrSuperseded is returned by Tracker when a newer lookup for the same
	// key replaced the one being awaited.
	ErrSuperseded = async.ErrSuperseded
)
