package signup

import (
	"time"

	"github.com/google/uuid"
)

// Volunteer is a validated submission. Phone, CPF and CEP hold digits only.
type Volunteer struct {
	ID              uuid.UUID `json:"id"`
	Nome            string    `json:"nome"`
	Email           string    `json:"email"`
	Telefone        string    `json:"telefone"`
	Nascimento      time.Time `json:"nascimento"`
	CPF             string    `json:"cpf"`
	CEP             string    `json:"cep,omitempty"`
	Cidade          string    `json:"cidade,omitempty"`
	Estado          string    `json:"estado,omitempty"`
	Area            string    `json:"area"`
	Periodo         string    `json:"periodo"`
	Disponibilidade []string  `json:"disponibilidade"`
	Curriculo       *Resume   `json:"curriculo,omitempty"`
	Language        string    `json:"language"`
	CreatedAt       time.Time `json:"created_at"`
}

// Resume points to the stored résumé file.
type Resume struct {
	Key      string `json:"key"`
	Filename string `json:"filename"`
	MIMEType string `json:"mime_type"`
	Size     int64  `json:"size"`
	URL      string `json:"url"`
}
