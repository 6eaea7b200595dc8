package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTurnstileVerifier(t *testing.T) {
	// Backup and restore URL
	oldURL := turnstileVerifyURL
	defer func() { turnstileVerifyURL = oldURL }()

	ctx := context.Background()

	t.Run("Disabled verifier accepts everything", func(t *testing.T) {
		v := NewTurnstileVerifier("")
		assert.False(t, v.Enabled())
		assert.NoError(t, v.Verify(ctx, "", "127.0.0.1"))

		var nilVerifier *TurnstileVerifier
		assert.NoError(t, nilVerifier.Verify(ctx, "", "127.0.0.1"))
	})

	t.Run("Missing token", func(t *testing.T) {
		err := NewTurnstileVerifier("secret").Verify(ctx, "", "127.0.0.1")
		assert.ErrorIs(t, err, ErrCaptchaMissing)
	})

	t.Run("Verification success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.ParseForm()
			assert.Equal(t, "secret", r.PostForm.Get("secret"))
			assert.Equal(t, "valid-token", r.PostForm.Get("response"))
			assert.Equal(t, "1.1.1.1", r.PostForm.Get("remoteip"))
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(TurnstileResponse{Success: true})
		}))
		defer server.Close()

		turnstileVerifyURL = server.URL
		assert.NoError(t, NewTurnstileVerifier("secret").Verify(ctx, "valid-token", "1.1.1.1"))
	})

	t.Run("Verification failure with error codes", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(TurnstileResponse{
				Success:    false,
				ErrorCodes: []string{"invalid-input-response", "timeout-or-duplicate"},
			})
		}))
		defer server.Close()

		turnstileVerifyURL = server.URL
		err := NewTurnstileVerifier("secret").Verify(ctx, "invalid-token", "1.1.1.1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid-input-response")
	})

	t.Run("Malformed JSON response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("{ malformed json }"))
		}))
		defer server.Close()

		turnstileVerifyURL = server.URL
		err := NewTurnstileVerifier("secret").Verify(ctx, "token", "1.1.1.1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode")
	})
}
