package email_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/mrz1836/postmark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/casadosaber/signup/pkg/email"
)

type MockPostmark struct {
	mock.Mock
}

func (m *MockPostmark) SendEmail(ctx context.Context, e postmark.Email) (postmark.EmailResponse, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(postmark.EmailResponse), args.Error(1)
}

var validMessage = email.Message{
	To:       "maria@example.com",
	Subject:  "Recebemos sua inscrição",
	BodyHTML: "<p>Olá Maria</p>",
	Tag:      "signup-confirmation",
}

func TestMessage_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(m *email.Message)
		wantErr bool
	}{
		{"valid", func(*email.Message) {}, false},
		{"missing recipient", func(m *email.Message) { m.To = "" }, true},
		{"bad recipient", func(m *email.Message) { m.To = "maria@" }, true},
		{"missing subject", func(m *email.Message) { m.Subject = "" }, true},
		{"missing body", func(m *email.Message) { m.BodyHTML = "" }, true},
		{"tag optional", func(m *email.Message) { m.Tag = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			msg := validMessage
			tt.mutate(&msg)
			err := msg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, email.ErrInvalidMessage)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostmarkSender(t *testing.T) {
	t.Parallel()

	t.Run("sends with reply-to", func(t *testing.T) {
		t.Parallel()
		api := new(MockPostmark)
		api.On("SendEmail", mock.Anything, mock.MatchedBy(func(e postmark.Email) bool {
			return e.From == "voluntarios@example.org" &&
				e.ReplyTo == "contato@example.org" &&
				e.To == validMessage.To &&
				e.HTMLBody == validMessage.BodyHTML &&
				e.Tag == validMessage.Tag
		})).Return(postmark.EmailResponse{}, nil).Once()

		s, err := email.NewPostmarkSenderWithClient(api, "voluntarios@example.org", "contato@example.org")
		require.NoError(t, err)
		require.NoError(t, s.SendEmail(context.Background(), validMessage))
		api.AssertExpectations(t)
	})

	t.Run("api error code", func(t *testing.T) {
		t.Parallel()
		api := new(MockPostmark)
		api.On("SendEmail", mock.Anything, mock.Anything).
			Return(postmark.EmailResponse{ErrorCode: 300, Message: "Invalid email request"}, nil).Once()

		s, err := email.NewPostmarkSenderWithClient(api, "voluntarios@example.org", "contato@example.org")
		require.NoError(t, err)
		err = s.SendEmail(context.Background(), validMessage)
		assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
		assert.Contains(t, err.Error(), "300")
	})

	t.Run("transport error", func(t *testing.T) {
		t.Parallel()
		api := new(MockPostmark)
		api.On("SendEmail", mock.Anything, mock.Anything).
			Return(postmark.EmailResponse{}, errors.New("dial tcp: timeout")).Once()

		s, err := email.NewPostmarkSenderWithClient(api, "voluntarios@example.org", "contato@example.org")
		require.NoError(t, err)
		assert.ErrorIs(t, s.SendEmail(context.Background(), validMessage), email.ErrFailedToSendEmail)
	})

	t.Run("invalid message never reaches api", func(t *testing.T) {
		t.Parallel()
		api := new(MockPostmark)
		s, err := email.NewPostmarkSenderWithClient(api, "voluntarios@example.org", "contato@example.org")
		require.NoError(t, err)

		err = s.SendEmail(context.Background(), email.Message{To: "x"})
		assert.ErrorIs(t, err, email.ErrInvalidMessage)
		api.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
	})

	t.Run("invalid config", func(t *testing.T) {
		t.Parallel()
		_, err := email.NewPostmarkSenderWithClient(new(MockPostmark), "not-an-email", "contato@example.org")
		assert.ErrorIs(t, err, email.ErrInvalidConfig)

		_, err = email.NewPostmarkSender(email.Config{SenderEmail: "a@b.co", SupportEmail: "a@b.co"})
		assert.ErrorIs(t, err, email.ErrInvalidConfig)
	})
}

func TestDevSender(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "emails")
	s := email.NewDevSender(dir)
	require.NoError(t, s.SendEmail(context.Background(), validMessage))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var html, meta string
	for _, e := range entries {
		switch filepath.Ext(e.Name()) {
		case ".html":
			html = e.Name()
		case ".json":
			meta = e.Name()
		}
	}
	require.NotEmpty(t, html)
	require.NotEmpty(t, meta)
	assert.True(t, strings.HasSuffix(html, "_signup-confirmation.html"))

	body, err := os.ReadFile(filepath.Join(dir, html))
	require.NoError(t, err)
	assert.Equal(t, validMessage.BodyHTML, string(body))

	data, err := os.ReadFile(filepath.Join(dir, meta))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"to": "maria@example.com"`)
}

func TestNew(t *testing.T) {
	t.Parallel()

	s, err := email.New(email.Config{DevDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &email.DevSender{}, s)

	s, err = email.New(email.Config{
		PostmarkServerToken:  "server",
		PostmarkAccountToken: "account",
		SenderEmail:          "voluntarios@example.org",
		SupportEmail:         "contato@example.org",
	})
	require.NoError(t, err)
	assert.IsType(t, &email.PostmarkSender{}, s)
}

func TestRender(t *testing.T) {
	t.Parallel()

	c := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>ok</p>")
		return err
	})
	out, err := email.Render(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, "<p>ok</p>", out)
}
