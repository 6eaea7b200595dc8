package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateNonce(t *testing.T) {
	nonce1, err := GenerateNonce()
	require.NoError(t, err)
	assert.NotEmpty(t, nonce1)

	nonce2, err := GenerateNonce()
	require.NoError(t, err)
	assert.NotEqual(t, nonce1, nonce2)
}

func TestBuildCSP(t *testing.T) {
	csp := BuildCSP("abc123")

	assert.Contains(t, csp, "script-src 'self' 'nonce-abc123' https://unpkg.com https://challenges.cloudflare.com")
	assert.Contains(t, csp, "img-src 'self' data: https://res.cloudinary.com")
	assert.Contains(t, csp, "frame-src https://challenges.cloudflare.com")
	assert.NotContains(t, csp, "unsafe-eval")

	// shared source lists are not mutated between calls
	assert.NotContains(t, BuildCSP("other"), "abc123")
}

func TestCSPNonce(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := CSPNonce()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))

	nonce := c.Get(string(NonceKey)).(string)
	assert.NotEmpty(t, nonce)
	assert.Equal(t, nonce, GetNonce(c.Request().Context()))
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "nonce-"+nonce)
}

func TestGetNonce(t *testing.T) {
	ctx := context.WithValue(context.Background(), NonceKey, "test-nonce")
	assert.Equal(t, "test-nonce", GetNonce(ctx))
	assert.Equal(t, "", GetNonce(context.Background()))
}
