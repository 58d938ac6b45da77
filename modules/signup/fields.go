package signup

import "github.com/casadosaber/signup/pkg/field"

// Form field names, as sent by the browser.
const (
	FieldNome            = "nome"
	FieldEmail           = "email"
	FieldTelefone        = "telefone"
	FieldNascimento      = "nascimento"
	FieldCPF             = "cpf"
	FieldCEP             = "cep"
	FieldCidade          = "cidade"
	FieldEstado          = "estado"
	FieldArea            = "area"
	FieldPeriodo         = "periodo"
	FieldDisponibilidade = "disponibilidade"
	FieldCurriculo       = "curriculo"
)

// Message keys specific to this form.
const (
	KeyAreaRequired         = "signup.area_required"
	KeyAvailabilityRequired = "signup.availability_required"
	KeyFormInvalid          = "signup.form_invalid"
	KeySubmitted            = "signup.submitted"
	KeyEmailSubject         = "signup.email_subject"
)

var (
	periods = []string{"manha", "tarde", "noite"}
	days    = []string{"segunda", "terca", "quarta", "quinta", "sexta", "sabado", "domingo"}
)

// Fields returns the form definition in display order. Areas restricts
// the interest area select; an empty list accepts any value.
func Fields(areas []string) []field.Field {
	return []field.Field{
		{Name: FieldNome, Kind: field.Name, Required: true},
		{Name: FieldEmail, Kind: field.Email, Required: true},
		{Name: FieldTelefone, Kind: field.Phone, Required: true},
		{Name: FieldNascimento, Kind: field.BirthDate, Required: true},
		{Name: FieldCPF, Kind: field.CPF, Required: true},
		{Name: FieldCEP, Kind: field.CEP},
		{Name: FieldCidade, Kind: field.City},
		{Name: FieldEstado, Kind: field.RequiredText},
		{Name: FieldArea, Kind: field.Select, Required: true, Options: areas, RequiredKey: KeyAreaRequired},
		{Name: FieldPeriodo, Kind: field.RadioGroup, Required: true, Options: periods},
		{Name: FieldDisponibilidade, Kind: field.CheckboxGroup, Required: true, Options: days, RequiredKey: KeyAvailabilityRequired},
		{Name: FieldCurriculo, Kind: field.File},
	}
}

func lookupField(fields []field.Field, name string) (field.Field, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return field.Field{}, false
}
