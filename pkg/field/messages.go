package field

import (
	"fmt"
	"sort"
	"strings"
)

// Message keys produced by the validator.
const (
	KeyRequired         = "field.required"
	KeyEmail            = "field.email"
	KeyPhone            = "field.phone"
	KeyDate             = "field.date"
	KeyBirthDate        = "field.birth_date"
	KeyMinAge           = "field.min_age"
	KeyCPF              = "field.cpf"
	KeyCEP              = "field.cep"
	KeyCEPNotFound      = "field.cep_not_found"
	KeyNameMin          = "field.name_min"
	KeyNameLetters      = "field.name_letters"
	KeyCityLetters      = "field.city_letters"
	KeyFileSize         = "field.file_size"
	KeyFileType         = "field.file_type"
	KeyOption           = "field.option"
	KeyOptionRequired   = "field.option_required"
	KeySelectRequired   = "field.select_required"
	KeyCheckboxRequired = "field.checkbox_required"
)

// Translator resolves message keys. *i18n.Translator satisfies it.
type Translator interface {
	Td(lang, key, defaultValue string, args ...string) string
}

// Built-in pt-BR messages, used when no translator is configured or the
// translator has no entry for the key.
var defaultMessages = map[string]string{
	KeyRequired:         "Este campo é obrigatório.",
	KeyEmail:            "Digite um email válido.",
	KeyPhone:            "Digite um telefone válido no formato (11) 99999-9999.",
	KeyDate:             "Digite uma data válida.",
	KeyBirthDate:        "Digite uma data de nascimento válida.",
	KeyMinAge:           "Você deve ter pelo menos %{min_age} anos para se voluntariar.",
	KeyCPF:              "Digite um CPF válido.",
	KeyCEP:              "Digite um CEP válido no formato 00000-000.",
	KeyCEPNotFound:      "CEP não encontrado",
	KeyNameMin:          "Nome deve ter pelo menos %{min} caracteres.",
	KeyNameLetters:      "Nome deve conter apenas letras.",
	KeyCityLetters:      "Nome da cidade deve conter apenas letras.",
	KeyFileSize:         "Arquivo muito grande. Máximo permitido: %{max_mb}MB.",
	KeyFileType:         "Formato não suportado. Use PDF, DOC ou DOCX.",
	KeyOption:           "Selecione uma opção válida.",
	KeyOptionRequired:   "Selecione uma opção.",
	KeySelectRequired:   "Selecione uma opção da lista.",
	KeyCheckboxRequired: "Selecione pelo menos uma opção.",
}

func requiredKey(kind Kind) string {
	switch kind {
	case RadioGroup:
		return KeyOptionRequired
	case Select:
		return KeySelectRequired
	case CheckboxGroup:
		return KeyCheckboxRequired
	default:
		return KeyRequired
	}
}

// message renders key in lang. Keys without a built-in message fall back to
// the key itself.
func message(tr Translator, lang, key string, params map[string]any) string {
	def, ok := defaultMessages[key]
	if !ok {
		def = key
	}

	args := translationArgs(params)
	if tr != nil {
		return tr.Td(lang, key, def, args...)
	}
	return interpolate(def, args)
}

// translationArgs flattens scalar params into sorted key/value pairs.
func translationArgs(params map[string]any) []string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		switch v.(type) {
		case string, int, int64, float64, bool:
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	args := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		args = append(args, k, fmt.Sprint(params[k]))
	}
	return args
}

func interpolate(tmpl string, args []string) string {
	if !strings.Contains(tmpl, "%{") {
		return tmpl
	}
	pairs := make([]string, 0, len(args))
	for i := 0; i+1 < len(args); i += 2 {
		pairs = append(pairs, "%{"+args[i]+"}", args[i+1])
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
