package field

import "github.com/casadosaber/signup/pkg/validator"

// Status is the outcome of validating one field.
type Status string

const (
	StatusValid      Status = "valid"
	StatusInvalid    Status = "invalid"
	StatusIncomplete Status = "incomplete"
)

// Reason classifies why a field is not valid.
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonRequiredMissing   Reason = "required_missing"
	ReasonStructuralInvalid Reason = "structural_invalid"
	ReasonChecksumInvalid   Reason = "checksum_invalid"
	ReasonOutOfRange        Reason = "out_of_range"
	ReasonLookupNotFound    Reason = "lookup_not_found"
	ReasonLookupUnavailable Reason = "lookup_unavailable"
)

// Result is the validation state of a single field, ready to be rendered.
type Result struct {
	Field   string `json:"field"`
	Kind    Kind   `json:"kind"`
	Status  Status `json:"status"`
	Reason  Reason `json:"reason,omitempty"`
	Key     string `json:"key,omitempty"`
	Message string `json:"message,omitempty"`
	// Masked is the canonical display value for CPF, phone and CEP fields.
	Masked string `json:"masked,omitempty"`

	params map[string]any
}

func (r Result) Valid() bool {
	return r.Status == StatusValid
}

// ValidationError converts a non-valid result into a validator.ValidationError.
func (r Result) ValidationError() validator.ValidationError {
	return validator.ValidationError{
		Field:             r.Field,
		Message:           r.Message,
		TranslationKey:    r.Key,
		TranslationValues: r.params,
	}
}

// Report holds the results of a whole form, in field order.
type Report struct {
	Results []Result `json:"results"`
}

// Valid reports whether every field is valid. Incomplete fields are not.
func (r Report) Valid() bool {
	for _, res := range r.Results {
		if !res.Valid() {
			return false
		}
	}
	return true
}

// FirstInvalid returns the first field, in form order, that is not valid.
func (r Report) FirstInvalid() (Result, bool) {
	for _, res := range r.Results {
		if !res.Valid() {
			return res, true
		}
	}
	return Result{}, false
}

// Get returns the result for the named field.
func (r Report) Get(name string) (Result, bool) {
	for _, res := range r.Results {
		if res.Field == name {
			return res, true
		}
	}
	return Result{}, false
}

// Errors returns one validation error per field that is not valid, or nil.
func (r Report) Errors() validator.ValidationErrors {
	var errs validator.ValidationErrors
	for _, res := range r.Results {
		if !res.Valid() {
			errs.Add(res.ValidationError())
		}
	}
	return errs
}
