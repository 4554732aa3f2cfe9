package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, "context"))
	})

	t.Run("preserves the error chain", func(t *testing.T) {
		err := Wrap(ErrNotFound, "user lookup")
		assert.True(t, Is(err, ErrNotFound))
		assert.Equal(t, "user lookup: not found", err.Error())
	})

	t.Run("chains through multiple wraps", func(t *testing.T) {
		err := Wrap(Wrap(ErrVectorStore, "insert failed"), "embed")
		assert.True(t, Is(err, ErrVectorStore))
	})
}

func TestNew(t *testing.T) {
	err := New("boom")
	assert.Error(t, err)
	assert.Equal(t, "boom", err.Error())
}
