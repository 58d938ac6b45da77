package email

import (
	"context"
	"errors"
	"strings"

	"github.com/a-h/templ"

	"github.com/casadosaber/signup/pkg/validator"
)

// Sender delivers a single message.
type Sender interface {
	SendEmail(ctx context.Context, msg Message) error
}

// Message is an outbound HTML e-mail.
type Message struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	BodyHTML string `json:"body_html"`
	Tag      string `json:"tag,omitempty"`
}

// Validate checks that the message can be handed to a provider.
func (m Message) Validate() error {
	errs := validator.Apply(
		validator.RequiredString("to", m.To),
		validator.ValidEmail("to", m.To),
		validator.RequiredString("subject", m.Subject),
		validator.RequiredString("body_html", m.BodyHTML),
	)
	if errs != nil {
		return errors.Join(ErrInvalidMessage, errs)
	}
	return nil
}

// New returns the Postmark sender when tokens are configured and a
// DevSender otherwise.
func New(cfg Config) (Sender, error) {
	if cfg.PostmarkEnabled() {
		return NewPostmarkSender(cfg)
	}
	return NewDevSender(cfg.DevDir), nil
}

// Render renders a templ component into a string body.
func Render(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
