package signup

import "errors"

var (
	ErrUnknownField     = errors.New("signup: unknown field")
	ErrInvalidForm      = errors.New("signup: form has invalid fields")
	ErrFailedToStore    = errors.New("signup: failed to store submission")
	ErrFailedToUpload   = errors.New("signup: failed to store resume")
	ErrSubmissionExists = errors.New("signup: a submission with this CPF already exists")
)
