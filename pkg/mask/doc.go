// Package mask formats Brazilian document numbers and contact fields as the
// user types them.
//
// Three mask kinds are supported: CPF (000.000.000-00), phone
// ((00) 00000-0000 or (00) 0000-0000) and CEP (00000-000). Every function in
// the package is pure: the masked output depends only on the digits of the
// input and the kind, never on a previously masked value, so masking is
// idempotent.
//
// # Usage
//
//	digits := mask.ExtractDigits("123.456.789-09") // "12345678909"
//	masked := mask.Apply(digits, mask.CPF)         // "123.456.789-09"
//	partial := mask.Format("1234", mask.CPF)       // "123.4"
//
// Masking is progressive: a separator is written only when a digit follows
// it, so a partially typed value never ends with a dangling ".", "-" or ") ".
//
// # Backspace handling
//
// AdjustBackspace and Backspace keep the caret on digits. When the character
// before the caret is a separator the caret is moved behind it first, so a
// backspace always removes a digit and the separators are rebuilt by the next
// Apply call. Cursor positions are byte offsets; masked values are ASCII.
package mask
