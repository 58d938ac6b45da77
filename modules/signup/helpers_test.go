package signup_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/casadosaber/signup/modules/signup"
	"github.com/casadosaber/signup/pkg/cep"
	"github.com/casadosaber/signup/pkg/email"
	"github.com/casadosaber/signup/pkg/file"
	"github.com/casadosaber/signup/pkg/mask"
)

var (
	today      = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	pdfContent = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")
)

func fixedClock() time.Time { return today }

// stubProvider answers 01310-100, reports 99999-999 as unknown and fails
// for anything else.
var stubProvider = cep.ProviderFunc(func(_ context.Context, code string) (cep.Address, error) {
	switch mask.ExtractDigits(code) {
	case "01310100":
		return cep.Address{CEP: "01310-100", Street: "Avenida Paulista", City: "São Paulo", State: "SP"}, nil
	case "99999999":
		return cep.Address{}, cep.ErrNotFound
	default:
		return cep.Address{}, errors.Join(cep.ErrUnavailable, errors.New("dial tcp: i/o timeout"))
	}
})

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendEmail(ctx context.Context, msg email.Message) error {
	return m.Called(ctx, msg).Error(0)
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Save(ctx context.Context, fh *multipart.FileHeader, key string) (*file.File, error) {
	args := m.Called(ctx, fh, key)
	f, _ := args.Get(0).(*file.File)
	return f, args.Error(1)
}

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockStorage) URL(key string) string {
	return "https://cdn.example.com/" + key
}

type failingSink struct{ err error }

func (s failingSink) Save(context.Context, signup.Volunteer) (uuid.UUID, error) {
	return uuid.Nil, s.err
}

func newService(t *testing.T, sink signup.Sink, opts ...signup.Option) *signup.Service {
	t.Helper()
	opts = append([]signup.Option{signup.WithClock(fixedClock), signup.WithLookup(stubProvider)}, opts...)
	svc, err := signup.NewService(signup.DefaultConfig(), sink, opts...)
	require.NoError(t, err)
	return svc
}

func validForm() url.Values {
	return url.Values{
		"nome":              {"Maria Silva"},
		"email":             {"Maria@Example.com"},
		"telefone":          {"(11) 98765-4321"},
		"nascimento":        {"1990-05-17"},
		"cpf":               {"111.444.777-35"},
		"cep":               {"01310-100"},
		"cidade":            {"São Paulo"},
		"estado":            {"SP"},
		"area":              {"educacao"},
		"periodo":           {"manha"},
		"disponibilidade[]": {"segunda", "quarta"},
	}
}

func validRequest() signup.SubmitRequest {
	return signup.SubmitRequest{
		Nome:            "Maria Silva",
		Email:           "Maria@Example.com",
		Telefone:        "(11) 98765-4321",
		Nascimento:      "1990-05-17",
		CPF:             "111.444.777-35",
		CEP:             "01310-100",
		Cidade:          "São Paulo",
		Estado:          "SP",
		Area:            "educacao",
		Periodo:         "manha",
		Disponibilidade: []string{"segunda", "quarta"},
	}
}

// multipartBody encodes values and an optional résumé upload.
func multipartBody(t *testing.T, values url.Values, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, vs := range values {
		for _, v := range vs {
			require.NoError(t, w.WriteField(k, v))
		}
	}
	if filename != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="curriculo"; filename="`+filename+`"`)
		h.Set("Content-Type", "application/octet-stream")
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

// fileHeader returns the parsed header of an uploaded résumé.
func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body, ct := multipartBody(t, nil, filename, content)
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", ct)
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["curriculo"][0]
}
