// Package email sends the volunteer confirmation e-mail.
//
// Sender is implemented by PostmarkSender for production and DevSender for
// local development, which writes each message to disk as an .html body plus
// .json metadata. New picks Postmark when both tokens are configured.
//
//	sender, err := email.New(cfg.Email)
//	body, err := email.Render(ctx, views.ConfirmationEmail(name))
//	err = sender.SendEmail(ctx, email.Message{
//		To:       "maria@example.com",
//		Subject:  "Recebemos sua inscrição",
//		BodyHTML: body,
//		Tag:      "signup-confirmation",
//	})
//
// Messages are validated before delivery; failures wrap ErrInvalidMessage or
// ErrFailedToSendEmail.
package email
