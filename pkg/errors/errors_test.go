package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCodes(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
		name   string
	}{
		{NewNotFound("appointment", nil), http.StatusNotFound, "not_found"},
		{NewBadRequest("bad", nil), http.StatusBadRequest, "bad_request"},
		{NewValidation("invalid", []string{"date"}, nil), http.StatusUnprocessableEntity, "validation"},
		{NewConfiguration("missing"), http.StatusInternalServerError, "configuration"},
		{NewUnavailable("down", nil), http.StatusServiceUnavailable, "unavailable"},
		{NewTooLarge(500 << 20), http.StatusRequestEntityTooLarge, "too_large"},
		{NewUpstream("gemini", nil), http.StatusBadGateway, "upstream"},
		{NewInternal(nil), http.StatusInternalServerError, "internal"},
		{&AppError{Code: ErrRateLimited}, http.StatusTooManyRequests, "rate_limited"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.StatusCode(), tc.name)
		assert.Equal(t, tc.name, tc.err.Code.String())
	}
}

func TestWrappedAppErrorIsFound(t *testing.T) {
	cause := fmt.Errorf("boom")
	wrapped := fmt.Errorf("replace services: %w", NewInternal(cause))

	appErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrInternal, appErr.Code)
	assert.ErrorIs(t, wrapped, cause)
	assert.True(t, Is(wrapped, ErrInternal))
	assert.False(t, Is(wrapped, ErrNotFound))
}

func TestTooLargeMessage(t *testing.T) {
	assert.Equal(t, "file too large, the limit is 500 MB", NewTooLarge(500<<20).Error())
}
