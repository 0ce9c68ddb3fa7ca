package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{NotFound("ambulance"), http.StatusNotFound},
		{BadRequest("bad"), http.StatusBadRequest},
		{Validation("invalid"), http.StatusUnprocessableEntity},
		{Unauthorized("nope"), http.StatusUnauthorized},
		{Forbidden("nope"), http.StatusForbidden},
		{Conflict("exists"), http.StatusConflict},
		{Internal(errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.StatusCode(), tt.err.Message)
	}
}

func TestNotFoundMessageNamesResource(t *testing.T) {
	assert.Equal(t, "ambulance not found", NotFound("ambulance").Error())
}

func TestInternalWraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestIsCodeSeesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("listing staff: %w", NotFound("paramedic"))

	assert.True(t, IsNotFound(err))
	assert.True(t, IsCode(err, ErrNotFound))
	assert.False(t, IsCode(err, ErrConflict))
}

func TestIsCodePlainError(t *testing.T) {
	assert.False(t, IsNotFound(errors.New("plain")))
	assert.False(t, IsNotFound(nil))
}
