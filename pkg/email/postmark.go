package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"

	"github.com/casadosaber/signup/pkg/validator"
)

// PostmarkAPI is the part of the Postmark client used by PostmarkSender.
type PostmarkAPI interface {
	SendEmail(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error)
}

// PostmarkSender delivers messages through Postmark's transactional API.
type PostmarkSender struct {
	client PostmarkAPI
	from   string
	reply  string
}

// NewPostmarkSender validates cfg and builds a sender backed by the real
// Postmark client.
func NewPostmarkSender(cfg Config) (*PostmarkSender, error) {
	if !cfg.PostmarkEnabled() {
		return nil, fmt.Errorf("%w: postmark server and account tokens are required", ErrInvalidConfig)
	}
	return NewPostmarkSenderWithClient(
		postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken),
		cfg.SenderEmail,
		cfg.SupportEmail,
	)
}

// NewPostmarkSenderWithClient uses client instead of the default one.
func NewPostmarkSenderWithClient(client PostmarkAPI, from, replyTo string) (*PostmarkSender, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: nil postmark client", ErrInvalidConfig)
	}
	errs := validator.Apply(
		validator.ValidEmail("sender_email", from),
		validator.ValidEmail("support_email", replyTo),
	)
	if errs != nil {
		return nil, errors.Join(ErrInvalidConfig, errs)
	}
	return &PostmarkSender{client: client, from: from, reply: replyTo}, nil
}

// SendEmail sends msg with open tracking on. Replies go to the support address.
func (s *PostmarkSender) SendEmail(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	resp, err := s.client.SendEmail(ctx, postmark.Email{
		From:       s.from,
		ReplyTo:    s.reply,
		To:         msg.To,
		Subject:    msg.Subject,
		Tag:        msg.Tag,
		HTMLBody:   msg.BodyHTML,
		TrackOpens: true,
		TrackLinks: "HtmlOnly",
	})
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			ErrFailedToSendEmail,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}
