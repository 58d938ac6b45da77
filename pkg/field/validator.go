package field

import (
	"strings"
	"time"

	"github.com/casadosaber/signup/pkg/mask"
	"github.com/casadosaber/signup/pkg/sanitizer"
	"github.com/casadosaber/signup/pkg/validator"
)

const (
	DefaultMaxFileSize int64 = 5 << 20
	DefaultMinAge            = 18
	DefaultLanguage          = "pt-BR"

	minNameLength = 2
)

// DefaultAllowedFileTypes are PDF, DOC and DOCX.
var DefaultAllowedFileTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// typedName normalizes only accents and spacing. Markup and control
// characters survive and fail the letters rule.
var typedName = sanitizer.Compose(sanitizer.NFC, sanitizer.NormalizeWhitespace)

// Validator turns (field, value) pairs into Results. It holds no per-call
// state and is safe for concurrent use.
type Validator struct {
	now          func() time.Time
	maxFileSize  int64
	allowedTypes []string
	minAge       int
	translator   Translator
	lang         string
	observers    []func(Result)
}

// Option configures a Validator.
type Option func(*Validator)

// WithClock sets the source of "today" for age checks.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

func WithMaxFileSize(size int64) Option {
	return func(v *Validator) {
		if size > 0 {
			v.maxFileSize = size
		}
	}
}

func WithAllowedFileTypes(types ...string) Option {
	return func(v *Validator) {
		if len(types) > 0 {
			v.allowedTypes = types
		}
	}
}

func WithMinAge(age int) Option {
	return func(v *Validator) {
		if age > 0 {
			v.minAge = age
		}
	}
}

func WithTranslator(tr Translator) Option {
	return func(v *Validator) {
		v.translator = tr
	}
}

// WithLanguage sets the language messages are rendered in by default.
func WithLanguage(lang string) Option {
	return func(v *Validator) {
		if lang != "" {
			v.lang = lang
		}
	}
}

// WithObserver registers fn to be called with every produced Result.
func WithObserver(fn func(Result)) Option {
	return func(v *Validator) {
		if fn != nil {
			v.observers = append(v.observers, fn)
		}
	}
}

// New creates a Validator with a 5 MiB upload limit, PDF/DOC/DOCX uploads,
// a minimum age of 18 and pt-BR messages.
func New(opts ...Option) *Validator {
	v := &Validator{
		now:          time.Now,
		maxFileSize:  DefaultMaxFileSize,
		allowedTypes: DefaultAllowedFileTypes,
		minAge:       DefaultMinAge,
		lang:         DefaultLanguage,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Lang returns a copy of v that renders messages in lang.
func (v *Validator) Lang(lang string) *Validator {
	c := *v
	if lang != "" {
		c.lang = lang
	}
	return &c
}

// Message renders a message key in the validator's language.
func (v *Validator) Message(key string, args ...string) string {
	params := make(map[string]any, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return message(v.translator, v.lang, key, params)
}

// Validate judges a committed value (blur or submit).
func (v *Validator) Validate(f Field, val Value) Result {
	return v.ValidateMode(f, val, Commit)
}

// ValidateLive judges a value that is still being typed.
func (v *Validator) ValidateLive(f Field, val Value) Result {
	return v.ValidateMode(f, val, Live)
}

// ValidateMode applies, in order: the required check, the empty-optional
// short circuit, the live completeness check and the kind's rules. The first
// failing step decides the result.
func (v *Validator) ValidateMode(f Field, val Value, mode Mode) Result {
	res := Result{Field: f.Name, Kind: f.Kind, Status: StatusValid}
	if mk, ok := f.Kind.Mask(); ok {
		res.Masked = mask.Format(val.Text, mk)
	}

	switch {
	case val.isEmpty(f.Kind):
		if f.Required {
			key := f.RequiredKey
			if key == "" {
				key = requiredKey(f.Kind)
			}
			res = v.fail(res, ReasonRequiredMissing, key, validator.RequiredString(f.Name, "").Error)
		}
	case mode == Live && incomplete(f.Kind, val.Text):
		res.Status = StatusIncomplete
	default:
		for _, c := range v.checks(f, val) {
			if !c.rule.Check() {
				res = v.fail(res, c.reason, c.key, c.rule.Error)
				break
			}
		}
	}

	for _, observe := range v.observers {
		observe(res)
	}
	return res
}

// ValidateForm validates every field in order against values, in Commit mode.
// Missing values are treated as empty.
func (v *Validator) ValidateForm(fields []Field, values map[string]Value) Report {
	report := Report{Results: make([]Result, 0, len(fields))}
	for _, f := range fields {
		report.Results = append(report.Results, v.Validate(f, values[f.Name]))
	}
	return report
}

// Fail builds an invalid result for failures detected outside the
// validator, such as an address lookup that found nothing.
func (v *Validator) Fail(f Field, val Value, reason Reason, key string) Result {
	res := Result{Field: f.Name, Kind: f.Kind}
	if mk, ok := f.Kind.Mask(); ok {
		res.Masked = mask.Format(val.Text, mk)
	}
	res = v.fail(res, reason, key, validator.ValidationError{Field: f.Name, Message: key})

	for _, observe := range v.observers {
		observe(res)
	}
	return res
}

func (v *Validator) fail(res Result, reason Reason, key string, verr validator.ValidationError) Result {
	res.Status = StatusInvalid
	res.Reason = reason
	res.Key = key
	res.params = verr.TranslationValues
	res.Message = message(v.translator, v.lang, key, verr.TranslationValues)
	return res
}

type check struct {
	rule   validator.Rule
	reason Reason
	key    string
}

func (v *Validator) checks(f Field, val Value) []check {
	name := f.Name
	text := strings.TrimSpace(val.Text)

	switch f.Kind {
	case Email:
		return []check{
			{validator.ValidEmail(name, text), ReasonStructuralInvalid, KeyEmail},
		}

	case Phone:
		return []check{
			{validator.ValidBRPhone(name, text), ReasonStructuralInvalid, KeyPhone},
		}

	case CPF:
		return []check{
			{validator.DigitCount(name, text, mask.CPF.MaxDigits()), ReasonStructuralInvalid, KeyCPF},
			{validator.ValidCPF(name, text), ReasonChecksumInvalid, KeyCPF},
		}

	case CEP:
		return []check{
			{validator.ValidCEP(name, text), ReasonStructuralInvalid, KeyCEP},
		}

	case BirthDate:
		birth, _ := time.Parse(time.DateOnly, text)
		now := v.now()
		return []check{
			{validator.ValidDate(name, text, time.DateOnly), ReasonStructuralInvalid, KeyDate},
			{validator.ValidBirthdateAt(name, birth, now), ReasonOutOfRange, KeyBirthDate},
			{validator.MinAgeAt(name, birth, now, v.minAge), ReasonOutOfRange, KeyMinAge},
		}

	case Name:
		typed := typedName(text)
		return []check{
			{validator.MinLenString(name, typed, minNameLength), ReasonStructuralInvalid, KeyNameMin},
			{validator.ValidLetters(name, typed), ReasonStructuralInvalid, KeyNameLetters},
		}

	case City:
		return []check{
			{validator.ValidLetters(name, typedName(text)), ReasonStructuralInvalid, KeyCityLetters},
		}

	case File:
		return []check{
			{validator.MaxFileSize(name, val.File.Size, v.maxFileSize), ReasonOutOfRange, KeyFileSize},
			{validator.AllowedFileType(name, val.File.ContentType, val.File.Filename, v.allowedTypes), ReasonStructuralInvalid, KeyFileType},
		}

	case RadioGroup, Select:
		if len(f.Options) == 0 {
			return nil
		}
		return []check{
			{validator.InList(name, text, f.Options), ReasonStructuralInvalid, KeyOption},
		}

	case CheckboxGroup:
		if len(f.Options) == 0 {
			return nil
		}
		return []check{
			{validator.AllInList(name, sanitizer.CleanStringSlice(val.Selected), f.Options), ReasonStructuralInvalid, KeyOption},
		}

	default:
		return nil
	}
}

// incomplete reports whether a maskable value is still too short to judge.
func incomplete(kind Kind, text string) bool {
	n := len(mask.ExtractDigits(text))
	switch kind {
	case CPF:
		return n < mask.CPF.MaxDigits()
	case Phone:
		return n < 10
	case CEP:
		return n < mask.CEP.MaxDigits()
	default:
		return false
	}
}
