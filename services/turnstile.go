package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var turnstileVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

// ErrCaptchaMissing is returned when the form carries no Turnstile token
var ErrCaptchaMissing = errors.New("please complete the CAPTCHA")

type TurnstileResponse struct {
	Success     bool      `json:"success"`
	ChallengeTS time.Time `json:"challenge_ts"`
	Hostname    string    `json:"hostname"`
	ErrorCodes  []string  `json:"error-codes"`
}

// TurnstileVerifier checks Cloudflare Turnstile tokens before a lead may reach the payment step.
// A verifier without a secret key is disabled and accepts everything.
type TurnstileVerifier struct {
	SecretKey string
	Client    *http.Client
}

// NewTurnstileVerifier creates a verifier using the default HTTP client
func NewTurnstileVerifier(secretKey string) *TurnstileVerifier {
	return &TurnstileVerifier{SecretKey: secretKey, Client: http.DefaultClient}
}

// Enabled reports whether tokens are checked at all
func (v *TurnstileVerifier) Enabled() bool {
	return v != nil && v.SecretKey != ""
}

// Verify validates the token with Cloudflare for the visitor IP
func (v *TurnstileVerifier) Verify(ctx context.Context, token, ip string) error {
	if !v.Enabled() {
		return nil
	}
	if token == "" {
		return ErrCaptchaMissing
	}

	form := url.Values{
		"secret":   {v.SecretKey},
		"response": {token},
		"remoteip": {ip},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, turnstileVerifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build turnstile request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to verify token: %w", err)
	}
	defer resp.Body.Close()

	var result TurnstileResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode turnstile response: %w", err)
	}

	if !result.Success {
		return fmt.Errorf("turnstile verification failed, error codes: %v", result.ErrorCodes)
	}

	return nil
}
