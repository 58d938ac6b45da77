package i18n

import "errors"

var (
	ErrNilAdapter         = errors.New("i18n: translation adapter is nil")
	ErrNoTranslations     = errors.New("i18n: no translations found")
	ErrInvalidLanguage    = errors.New("i18n: invalid language code")
	ErrFailedToParseYAML  = errors.New("i18n: failed to parse YAML content")
	ErrFailedToReadFile   = errors.New("i18n: failed to read translation file")
	ErrFailedToReadDir    = errors.New("i18n: failed to read translation directory")
	ErrLoadingCancelled   = errors.New("i18n: loading translations cancelled")
	ErrInvalidYAMLSection = errors.New("i18n: top-level YAML entries must be maps keyed by language")
)
