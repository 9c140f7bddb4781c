package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	notFound := NotFound("Dish not found")
	wrapped := fmt.Errorf("loading dish: %w", notFound)

	assert.Equal(t, KindNotFound, KindOf(notFound))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.True(t, errors.Is(wrapped, notFound))
}

func TestImageUpload_KeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := ImageUpload("Image upload failed: connection reset", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindImageUpload, err.Kind)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestAs(t *testing.T) {
	err := fmt.Errorf("ctx: %w", Validation("Validation failed", map[string]string{"name": "x"}))

	appErr, ok := As(err)
	assert.True(t, ok)
	assert.Equal(t, "x", appErr.Fields["name"])

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
}
