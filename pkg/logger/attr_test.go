package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casadosaber/signup/pkg/logger"
)

func TestGroup(t *testing.T) {
	attr := logger.Group("req", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "req", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

func TestErrors(t *testing.T) {
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, err1, g[0].Value.Any())
	assert.Equal(t, err2, g[1].Value.Any())

	empty := logger.Errors(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	empty := logger.Error(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestRequestID(t *testing.T) {
	attr := logger.RequestID("abc")
	require.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "abc", attr.Value.Any())

	assert.True(t, logger.RequestID(nil).Equal(slog.Attr{}))
}

func TestCEP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"digits are masked", "01310100", "01310-100"},
		{"masked stays as is", "01310-100", "01310-100"},
		{"partial stays as is", "0131", "0131"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			attr := logger.CEP(tt.in)
			require.Equal(t, "cep", attr.Key)
			assert.Equal(t, tt.want, attr.Value.String())
		})
	}
}

func TestFieldAttrs(t *testing.T) {
	attr := logger.Field("cpf")
	require.Equal(t, "field", attr.Key)
	assert.Equal(t, "cpf", attr.Value.String())

	kind := logger.FieldKind("phone")
	require.Equal(t, "field_kind", kind.Key)
	assert.Equal(t, "phone", kind.Value.Any())
}

func TestSubmissionID(t *testing.T) {
	attr := logger.SubmissionID("sub-1")
	require.Equal(t, "submission_id", attr.Key)
	assert.Equal(t, "sub-1", attr.Value.Any())

	assert.True(t, logger.SubmissionID(nil).Equal(slog.Attr{}))
}

func TestDuration(t *testing.T) {
	attr := logger.Duration(1500 * time.Millisecond)
	require.Equal(t, "duration", attr.Key)
	assert.Equal(t, 1500*time.Millisecond, attr.Value.Duration())
}
