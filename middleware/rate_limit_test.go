package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateLimiter(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{Every: time.Second, Burst: 3})

	assert.NotNil(t, rl.config.KeyFunc)
	assert.Equal(t, "Too many requests. Please try again later.", rl.config.Message)
	assert.Equal(t, 10*time.Minute, rl.config.IdleTTL)
}

func TestRateLimiterAllow(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(RateLimitConfig{Every: time.Second, Burst: 2})

	t.Run("Burst then refill", func(t *testing.T) {
		assert.True(t, rl.Allow("1.1.1.1", now))
		assert.True(t, rl.Allow("1.1.1.1", now))
		assert.False(t, rl.Allow("1.1.1.1", now))
		assert.True(t, rl.Allow("1.1.1.1", now.Add(time.Second)))
	})

	t.Run("Keys are independent", func(t *testing.T) {
		assert.True(t, rl.Allow("2.2.2.2", now))
	})

	t.Run("Sweep drops idle buckets", func(t *testing.T) {
		assert.Equal(t, 2, rl.Sweep(now.Add(time.Hour)))
		assert.Equal(t, 0, rl.Sweep(now.Add(time.Hour)))
	})
}

func TestRateLimiterMiddleware(t *testing.T) {
	e := echo.New()
	ok := func(c echo.Context) error { return c.String(http.StatusOK, "success") }

	t.Run("Within limit", func(t *testing.T) {
		handler := NewRateLimiter(RateLimitConfig{Every: time.Minute, Burst: 2}).Middleware()(ok)
		for i := 0; i < 2; i++ {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/lead/field", nil), rec)
			require.NoError(t, handler(c))
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})

	t.Run("Exceeded limit", func(t *testing.T) {
		handler := NewRateLimiter(RateLimitConfig{Every: time.Minute, Burst: 1, Message: "Slow down"}).Middleware()(ok)

		c := e.NewContext(httptest.NewRequest(http.MethodPost, "/lead/finalize", nil), httptest.NewRecorder())
		require.NoError(t, handler(c))

		rec := httptest.NewRecorder()
		c = e.NewContext(httptest.NewRequest(http.MethodPost, "/lead/finalize", nil), rec)
		err := handler(c)
		httpErr, isHTTPErr := err.(*echo.HTTPError)
		require.True(t, isHTTPErr)
		assert.Equal(t, http.StatusTooManyRequests, httpErr.Code)
		assert.Equal(t, "Slow down", httpErr.Message)
		assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	})

	t.Run("HTMX request gets a notice partial", func(t *testing.T) {
		handler := NewRateLimiter(RateLimitConfig{Every: time.Minute, Burst: 1, Message: "Slow down"}).Middleware()(ok)

		c := e.NewContext(httptest.NewRequest(http.MethodPost, "/lead/field", nil), httptest.NewRecorder())
		require.NoError(t, handler(c))

		req := httptest.NewRequest(http.MethodPost, "/lead/field", nil)
		req.Header.Set("HX-Request", "true")
		rec := httptest.NewRecorder()
		c = e.NewContext(req, rec)
		require.NoError(t, handler(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Slow down")
		assert.Equal(t, "#lead-form-notice", rec.Header().Get("HX-Retarget"))
		assert.Equal(t, "innerHTML", rec.Header().Get("HX-Reswap"))
		assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	})
}
