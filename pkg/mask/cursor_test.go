package mask_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/casadosaber/signup/pkg/mask"
)

func TestIsSeparator(t *testing.T) {
	t.Parallel()

	for _, r := range ".-() " {
		assert.True(t, mask.IsSeparator(r), "%q", r)
	}
	for _, r := range "0123456789a/_" {
		assert.False(t, mask.IsSeparator(r), "%q", r)
	}
}

func TestAdjustBackspace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		value  string
		cursor int
		want   int
	}{
		{"after digit", "123.456", 7, 7},
		{"after dot", "123.4", 4, 3},
		{"after dash", "123.456.789-0", 12, 11},
		{"after paren and space", "(11) 9", 5, 3},
		{"after opening paren", "(11) 9", 1, 0},
		{"cursor at start", "123", 0, 0},
		{"negative cursor", "123", -4, 0},
		{"cursor past end", "123.", 10, 3},
		{"empty value", "", 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, mask.AdjustBackspace(tt.value, tt.cursor))
		})
	}
}

func TestBackspace(t *testing.T) {
	t.Parallel()

	t.Run("after separator deletes preceding digit", func(t *testing.T) {
		t.Parallel()
		edit := mask.Backspace("123.456.789-09", 4, mask.CPF)
		assert.Equal(t, "124.567.890-9", edit.Value)
		assert.Equal(t, 2, edit.Cursor)
	})

	t.Run("at end removes last digit", func(t *testing.T) {
		t.Parallel()
		edit := mask.Backspace("123.4", 5, mask.CPF)
		assert.Equal(t, "123", edit.Value)
		assert.Equal(t, 3, edit.Cursor)
	})

	t.Run("phone area code closes back to bare digits", func(t *testing.T) {
		t.Parallel()
		edit := mask.Backspace("(11) 9", 6, mask.Phone)
		assert.Equal(t, "11", edit.Value)
		assert.Equal(t, 2, edit.Cursor)
	})

	t.Run("phone cursor after closing paren deletes area digit", func(t *testing.T) {
		t.Parallel()
		edit := mask.Backspace("(11) 98765-4321", 5, mask.Phone)
		assert.Equal(t, "(19) 8765-4321", edit.Value)
		assert.Equal(t, 2, edit.Cursor)
	})

	t.Run("cep dash", func(t *testing.T) {
		t.Parallel()
		edit := mask.Backspace("01310-100", 6, mask.CEP)
		assert.Equal(t, "01311-00", edit.Value)
		assert.Equal(t, 4, edit.Cursor)
	})

	t.Run("nothing before cursor", func(t *testing.T) {
		t.Parallel()
		edit := mask.Backspace("(11) 9", 1, mask.Phone)
		assert.Equal(t, "(11) 9", edit.Value)
		assert.Equal(t, 0, edit.Cursor)
	})

	t.Run("every cursor deletes exactly one digit", func(t *testing.T) {
		t.Parallel()
		value := "123.456.789-09"
		for cursor := 1; cursor <= len(value); cursor++ {
			edit := mask.Backspace(value, cursor, mask.CPF)
			assert.Len(t, mask.ExtractDigits(edit.Value), 10, "cursor %d", cursor)
		}
	})
}

func TestReformat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		value  string
		cursor int
		kind   mask.Kind
		want   mask.Edit
	}{
		{"cpf typing at end", "1234", 4, mask.CPF, mask.Edit{Value: "123.4", Cursor: 5}},
		{"cpf edit in the middle", "123456789", 3, mask.CPF, mask.Edit{Value: "123.456.789", Cursor: 3}},
		{"phone complete", "11987654321", 11, mask.Phone, mask.Edit{Value: "(11) 98765-4321", Cursor: 15}},
		{"cep with letters", "12a", 3, mask.CEP, mask.Edit{Value: "12", Cursor: 2}},
		{"cursor past end", "01310100", 50, mask.CEP, mask.Edit{Value: "01310-100", Cursor: 9}},
		{"extra digits truncated", "012345678901", 12, mask.CPF, mask.Edit{Value: "012.345.678-90", Cursor: 14}},
		{"empty", "", 0, mask.CEP, mask.Edit{Value: "", Cursor: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, mask.Reformat(tt.value, tt.cursor, tt.kind))
		})
	}
}
