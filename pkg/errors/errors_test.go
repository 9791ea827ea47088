package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NotFound("listing", "abc"), http.StatusNotFound},
		{Unauthenticated("sign in"), http.StatusUnauthorized},
		{Unauthorized("not yours"), http.StatusForbidden},
		{NotPending("already reviewed"), http.StatusConflict},
		{InvalidState("listing is live"), http.StatusConflict},
		{Conflict("email taken"), http.StatusConflict},
		{Validation("price must be positive"), http.StatusUnprocessableEntity},
		{Internal("query failed", errors.New("boom")), http.StatusInternalServerError},
		{errors.New("plain error"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), "for %v", tt.err)
	}
}

func TestKindOfUnwrapsWrappedErrors(t *testing.T) {
	inner := NotPending("listing is not pending verification")
	wrapped := fmt.Errorf("approve: %w", inner)

	assert.Equal(t, KindNotPending, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindNotPending))
	assert.False(t, IsKind(wrapped, KindNotFound))
}

func TestMessageHidesUnclassifiedErrors(t *testing.T) {
	assert.Equal(t, "email taken", Message(Conflict("email taken")))
	assert.Equal(t, "internal server error", Message(errors.New("pq: connection refused")))
}

func TestErrorStringIncludesCause(t *testing.T) {
	err := Internal("query failed", errors.New("boom"))
	assert.Contains(t, err.Error(), "query failed")
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, "boom", errors.Unwrap(err).Error())
}
