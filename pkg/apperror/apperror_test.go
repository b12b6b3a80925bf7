package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTTPStatus(t *testing.T) {
	cause := errors.New("boom")

	assert.Equal(t, http.StatusNotFound, ToHTTPStatus(NewNotFound("session", "42")))
	assert.Equal(t, http.StatusBadRequest, ToHTTPStatus(NewInvalidInput("empty", nil)))
	assert.Equal(t, http.StatusUnauthorized, ToHTTPStatus(NewUnauthorized("bad token", cause)))
	assert.Equal(t, http.StatusConflict, ToHTTPStatus(NewConflict("busy", "in flight", nil)))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(NewInternal("x", cause)))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(cause))

	wrapped := fmt.Errorf("handler: %w", NewInvalidInput("empty", nil))
	assert.Equal(t, http.StatusBadRequest, ToHTTPStatus(wrapped))
}

func TestAppErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("redis down")
	err := NewInternal("load session", cause)

	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "redis down")
	assert.Equal(t, "internal server error", err.ToJSON()["error"])
}

func TestToHTTPStatusUsesCategoryOverCause(t *testing.T) {
	err := NewInternal("load session", NewNotFound("session", "42"))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(err))

	err = NewInternal("decode", NewInvalidInput("bad json", nil))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(err))

	wrapped := fmt.Errorf("submit: %w", NewConflict("busy", "in flight", errors.New("locked")))
	assert.Equal(t, http.StatusConflict, ToHTTPStatus(wrapped))
}
