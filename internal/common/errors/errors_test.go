// internal/common/errors/errors_test.go
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrCodeBadRequest, CodeOf(NewBadRequestError("missing field")))
	assert.Equal(t, ErrCodeInternal, CodeOf(errors.New("plain")))

	wrapped := fmt.Errorf("context: %w", NewPlaceNotFoundError("p1"))
	assert.Equal(t, ErrCodePlaceNotFound, CodeOf(wrapped))
}

func TestIsCode(t *testing.T) {
	err := NewUpstreamUnavailableError("weather", errors.New("status 502"))
	assert.True(t, IsCode(err, ErrCodeUpstreamUnavailable))
	assert.False(t, IsCode(err, ErrCodeBadRequest))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NewBadRequestError("bad"), http.StatusBadRequest},
		{NewPlaceNotFoundError("p1"), http.StatusNotFound},
		{NewUpstreamUnavailableError("weather", nil), http.StatusInternalServerError},
		{NewCredentialMissingError("places"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, HTTPStatus(tc.err))
	}
}

func TestRetryableFlags(t *testing.T) {
	assert.False(t, NewBadRequestError("x").Retryable)
	assert.True(t, NewUpstreamUnavailableError("weather", nil).Retryable)
	assert.False(t, NewCredentialMissingError("places").Retryable)
}
