package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, "ignored"))
	})

	t.Run("tagged error passes through", func(t *testing.T) {
		original := Conflict("already linked")
		wrapped := Wrap(fmt.Errorf("outer: %w", original), "Unable to link")

		assert.Same(t, original, wrapped)
		assert.Equal(t, http.StatusConflict, wrapped.Status)
	})

	t.Run("plain error becomes internal with its message", func(t *testing.T) {
		cause := errors.New("connection refused")
		wrapped := Wrap(cause, "Error retrieving items")

		assert.Equal(t, http.StatusInternalServerError, wrapped.Status)
		assert.Equal(t, "connection refused", wrapped.Message)
		assert.ErrorIs(t, wrapped, cause)
		assert.ErrorIs(t, wrapped, ErrInternal)
	})

	t.Run("empty message falls back to default", func(t *testing.T) {
		wrapped := Wrap(errors.New(""), "Error creating item")

		assert.Equal(t, "Error creating item", wrapped.Message)
	})
}

func TestIs(t *testing.T) {
	err := NotFound("Image, %s, deleted or does not exist.", "abc")

	require.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "abc")
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, StatusOf(Forbidden("no")))
	assert.Equal(t, http.StatusBadRequest, StatusOf(fmt.Errorf("ctx: %w", Validation("bad"))))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
}
