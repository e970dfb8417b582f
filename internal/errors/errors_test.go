package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{fmt.Errorf("parse path: %w", ErrInvalidID), http.StatusBadRequest, "INVALID_ID"},
		{ErrNoFields, http.StatusBadRequest, "NO_FIELDS"},
		{ErrInvalidAmount, http.StatusBadRequest, "INVALID_AMOUNT"},
		{ErrInvalidRole, http.StatusBadRequest, "INVALID_ROLE"},
		{errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.status, httpErr.StatusCode)
			assert.Equal(t, tt.code, httpErr.Code)

			body := httpErr.ToErrorResponse()
			assert.True(t, body.Error)
			assert.Equal(t, httpErr.Message, body.Message)
		})
	}
}

func TestMapErrorToHTTP_HidesInternalDetail(t *testing.T) {
	httpErr := MapErrorToHTTP(errors.New("mongo: server selection timeout"))
	assert.Equal(t, "internal server error", httpErr.Error())
}
