package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorStatus(t *testing.T) {
	tests := []struct {
		err  *AppError
		code int
	}{
		{ForbiddenError("no"), http.StatusForbidden},
		{UnauthorizedError("who", nil), http.StatusUnauthorized},
		{NotFoundError("gone"), http.StatusNotFound},
		{UnavailableError("off"), http.StatusBadRequest},
		{InvalidInputError("bad"), http.StatusBadRequest},
		{InvalidTransitionError("pending", "delivered"), http.StatusBadRequest},
		{InvalidAmountError("zero"), http.StatusBadRequest},
		{InvalidSignatureError(), http.StatusBadRequest},
		{ConflictError("again", nil), http.StatusConflict},
		{UnexpectedError("boom", nil), http.StatusInternalServerError},
		{NewAppError("SOMETHING_ELSE", "?", nil), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.err.Kind), func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestAppErrorChain(t *testing.T) {
	cause := errors.New("connection reset")
	err := UnexpectedError("Record store failure", cause)
	assert.Equal(t, "Record store failure: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("placing order: %w", NotFoundError("Coconut not found"))
	assert.True(t, IsKind(wrapped, KindNotFound))
	assert.False(t, IsKind(wrapped, KindConflict))
	assert.Equal(t, "Coconut not found", GetAppError(wrapped).Message)

	assert.Nil(t, GetAppError(cause))
	assert.False(t, IsKind(nil, KindNotFound))

	assert.Contains(t, InvalidTransitionError("pending", "delivered").Message, `"pending" to "delivered"`)
}
