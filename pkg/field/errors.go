package field

import "errors"

var ErrUnknownKind = errors.New("field: unknown kind")
