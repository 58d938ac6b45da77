package mask

import "errors"

// ErrUnknownKind is returned by ParseKind for names that do not map to a mask.
var ErrUnknownKind = errors.New("mask: unknown kind")
