// Package field validates the inputs of the volunteer signup form.
//
// Every input has a Kind from a closed set (text, email, phone, birth date,
// CPF, CEP, name, city, file, radio group, checkbox group, select). A
// Validator maps a Field and its Value to a Result with a Status (valid,
// invalid, incomplete), a Reason, a translation key, a rendered message and,
// for CPF, phone and CEP, the masked display value.
//
// Rules run in order and the first failure wins:
//
//  1. a required field with an empty value is invalid (ReasonRequiredMissing);
//  2. an optional empty field is valid;
//  3. in Live mode, a CPF, phone or CEP with too few digits is incomplete;
//  4. the kind's own rules run (format, checksum, range);
//  5. otherwise the field is valid.
//
// Messages default to pt-BR and can be translated by any Translator, such as
// *i18n.Translator. Today's date for the age check comes from WithClock.
//
//	v := field.New(field.WithClock(clock.Now))
//	res := v.ValidateLive(field.Field{Name: "cpf", Kind: field.CPF, Required: true}, field.Text("111.444"))
//	// res.Status == field.StatusIncomplete, res.Masked == "111.444"
package field
