package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/ai-service/internal/errors"
)

func TestNewEmail(t *testing.T) {
	t.Run("accepts any string with an at sign", func(t *testing.T) {
		for _, value := range []string{
			"alice.smith@example.com",
			"a@b",
			"@",
			"weird @ spacing",
		} {
			email, err := NewEmail(value)
			require.NoError(t, err, value)
			assert.Equal(t, value, email.String())
		}
	})

	t.Run("rejects strings without an at sign", func(t *testing.T) {
		for _, value := range []string{"", "alice.smith", "example.com", "alice.at.example"} {
			_, err := NewEmail(value)
			assert.ErrorIs(t, err, ErrInvalidEmail, value)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput, value)
		}
	})
}

func TestCanonicalEmail(t *testing.T) {
	tests := []struct {
		name    string
		surname string
		want    string
	}{
		{"Alice", "Smith", "alice.smith@example.com"},
		{"alice", "smith", "alice.smith@example.com"},
		{"ALICE", "SMITH", "alice.smith@example.com"},
		{"MiXeD", "CaSe", "mixed.case@example.com"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanonicalEmail(tt.name, tt.surname))
	}
}
