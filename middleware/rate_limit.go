package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines a token bucket per client key
type RateLimitConfig struct {
	// Every is the refill interval of one token
	Every time.Duration
	// Burst is how many requests may arrive back to back
	Burst int
	// KeyFunc returns the client key (defaults to the real IP)
	KeyFunc func(c echo.Context) string
	// Message is shown when the bucket is empty
	Message string
	// IdleTTL drops buckets not used for this long
	IdleTTL time.Duration
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one bucket per key
type RateLimiter struct {
	config  RateLimitConfig
	mu      sync.Mutex
	buckets map[string]*bucket
}

// NewRateLimiter creates a limiter. Call StartSweeper to evict idle buckets in the background.
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	if config.KeyFunc == nil {
		config.KeyFunc = func(c echo.Context) string {
			return c.RealIP()
		}
	}
	if config.Message == "" {
		config.Message = "Too many requests. Please try again later."
	}
	if config.IdleTTL == 0 {
		config.IdleTTL = 10 * time.Minute
	}
	return &RateLimiter{
		config:  config,
		buckets: make(map[string]*bucket),
	}
}

// Allow consumes one token for key
func (rl *RateLimiter) Allow(key string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rate.Every(rl.config.Every), rl.config.Burst)}
		rl.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

// Sweep removes buckets idle since before now minus IdleTTL
func (rl *RateLimiter) Sweep(now time.Time) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	for key, b := range rl.buckets {
		if now.Sub(b.lastSeen) > rl.config.IdleTTL {
			delete(rl.buckets, key)
			removed++
		}
	}
	return removed
}

// StartSweeper evicts idle buckets every minute until stop is closed
func (rl *RateLimiter) StartSweeper(stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				rl.Sweep(now)
			case <-stop:
				return
			}
		}
	}()
}

// Middleware rejects requests over the limit with 429, or with an inline notice for htmx
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rl.Allow(rl.config.KeyFunc(c), time.Now()) {
				return next(c)
			}

			c.Response().Header().Set("Retry-After", retryAfter(rl.config.Every))
			if c.Request().Header.Get("HX-Request") == "true" {
				// htmx only swaps 2xx bodies; the notice lands in the form error slot
				c.Response().Header().Set("HX-Retarget", "#lead-form-notice")
				c.Response().Header().Set("HX-Reswap", "innerHTML")
				return c.HTML(http.StatusOK, `<p class="notice notice-error" role="alert">`+rl.config.Message+`</p>`)
			}
			return echo.NewHTTPError(http.StatusTooManyRequests, rl.config.Message)
		}
	}
}

func retryAfter(every time.Duration) string {
	secs := int(every.Seconds())
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

// LeadFormRateLimiter covers field edits and goal toggles, which fire on every keystroke batch
var LeadFormRateLimiter = NewRateLimiter(RateLimitConfig{
	Every:   200 * time.Millisecond,
	Burst:   40,
	Message: "You're typing faster than we can keep up. Please wait a moment.",
})

// AttachmentRateLimiter covers file selection uploads to the server
var AttachmentRateLimiter = NewRateLimiter(RateLimitConfig{
	Every:   6 * time.Second,
	Burst:   5,
	Message: "Too many file uploads. Please wait before choosing another image.",
})

// SubmissionRateLimiter covers advancing and final submission
var SubmissionRateLimiter = NewRateLimiter(RateLimitConfig{
	Every:   10 * time.Second,
	Burst:   6,
	Message: "Too many submissions. Please wait before trying again.",
})
