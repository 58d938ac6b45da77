// Package validator provides small, composable validation rules for the
// values collected by the signup form: strings, selections, dates, uploaded
// files and Brazilian identifiers (CPF, phone, CEP).
//
// A Rule pairs a boolean Check with translation-friendly error metadata.
// Apply evaluates every rule and aggregates the failures into
// ValidationErrors; ApplyFirst stops at the first failure, which suits
// checks that depend on each other (digit count before checksum).
//
// # Brazilian identifiers
//
// IsValidCPF implements the two-pass modulo-11 check: the first check digit
// weights the first nine digits 10..2, the second weights the first ten
// digits 11..2; a result of 10 or 11 counts as 0. CPFCheckDigits exposes the
// computation. Phone and CEP checks are length-only (10 or 11 digits and
// exactly 8 digits). The rule forms strip separators before checking, so
// masked and unmasked input validate the same way.
//
// # Usage
//
//	err := validator.Apply(
//	    validator.RequiredString("nome", name),
//	    validator.ValidEmail("email", email),
//	    validator.ValidCPF("cpf", cpf),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    for field, msgs := range verrs.Messages() {
//	        // ...
//	    }
//	}
//
// ValidationErrors matches ErrValidationFailed with errors.Is.
package validator
