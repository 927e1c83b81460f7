package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "message only",
			err:  New(KindConfig, "", "missing club id"),
			want: "config error: missing club id",
		},
		{
			name: "with op",
			err:  New(KindAuth, "login", "cookie rejected"),
			want: "login: auth error: cookie rejected",
		},
		{
			name: "with code and cause",
			err:  &Error{Kind: KindServerError, Op: "get", Message: "bad gateway", Code: 502, Err: fmt.Errorf("eof")},
			want: "get: server_error error (code 502): bad gateway: eof",
		},
		{
			name: "cause only",
			err:  &Error{Kind: KindNetwork, Err: fmt.Errorf("connection reset")},
			want: "network error: connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(KindEntry, "op", nil))

	inner := FromStatus("get", http.StatusServiceUnavailable)
	wrapped := Wrap(KindPageFetch, "listing", inner)
	require.NotNil(t, wrapped)

	assert.Equal(t, KindPageFetch, wrapped.Kind)
	assert.Equal(t, http.StatusServiceUnavailable, wrapped.Code)
	assert.True(t, stderrors.Is(wrapped, inner))
	assert.Equal(t, KindPageFetch, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindServerError))
	assert.True(t, IsKind(wrapped, KindPageFetch))
	assert.False(t, IsKind(wrapped, KindAuth))
}

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{http.StatusTooManyRequests, KindRateLimit},
		{http.StatusUnauthorized, KindAuth},
		{http.StatusForbidden, KindAuth},
		{http.StatusNotFound, KindNotFound},
		{http.StatusInternalServerError, KindServerError},
		{http.StatusBadGateway, KindServerError},
		{http.StatusTeapot, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := FromStatus("get", tt.status)
			require.NotNil(t, err)
			assert.Equal(t, tt.want, err.Kind)
			assert.Equal(t, tt.status, err.Code)
		})
	}

	assert.Nil(t, FromStatus("get", http.StatusOK))
	assert.Nil(t, FromStatus("get", http.StatusFound))
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(fmt.Errorf("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.False(t, IsKind(fmt.Errorf("plain"), KindUnknown))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(KindNetwork))
	assert.True(t, IsRetryable(KindRateLimit))
	assert.True(t, IsRetryable(KindServerError))
	assert.False(t, IsRetryable(KindAuth))
	assert.False(t, IsRetryable(KindNotFound))
	assert.False(t, IsRetryable(KindParsing))

	assert.True(t, IsRetryableStatusCode(0))
	assert.True(t, IsRetryableStatusCode(429))
	assert.True(t, IsRetryableStatusCode(503))
	assert.False(t, IsRetryableStatusCode(404))
	assert.False(t, IsRetryableStatusCode(403))
	assert.False(t, IsRetryableStatusCode(400))
}
