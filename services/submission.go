package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"log"
	"net/http"
	"strings"

	"streamgrowth_app_go/models"

	"github.com/microcosm-cc/bluemonday"
)

// ErrSubmissionRejected wraps every non-2xx answer from the lead backend
var ErrSubmissionRejected = errors.New("submission rejected")

// messagePolicy strips all markup from the free-text message
var messagePolicy = bluemonday.StrictPolicy()

// SanitizeMessage removes HTML from user free text and trims surrounding whitespace.
// Entities escaped by the policy are decoded again since the backend stores plain text.
func SanitizeMessage(message string) string {
	return strings.TrimSpace(html.UnescapeString(messagePolicy.Sanitize(message)))
}

// LeadSubmitter posts completed lead forms to the backend
type LeadSubmitter struct {
	BaseURL string
	Client  *http.Client
}

// NewLeadSubmitter creates a submitter for {baseURL}/api/twitch-form/
func NewLeadSubmitter(baseURL string) *LeadSubmitter {
	return &LeadSubmitter{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Client:  http.DefaultClient,
	}
}

// Endpoint returns the submission URL
func (s *LeadSubmitter) Endpoint() string {
	return s.BaseURL + "/api/twitch-form/"
}

// Submit sends the form data plus the fixed sheet name. Any 2xx is success.
func (s *LeadSubmitter) Submit(ctx context.Context, data models.LeadFormData) error {
	data.Message = SanitizeMessage(data.Message)
	body, err := json.Marshal(models.NewLeadSubmission(data))
	if err != nil {
		return fmt.Errorf("failed to encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build submission request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach submission endpoint: %w", err)
	}
	defer resp.Body.Close()

	respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrSubmissionRejected, resp.StatusCode)
	}
	if readErr != nil {
		log.Printf("[WARNING] Failed to read lead backend response for %s (status %d): %v", data.Email, resp.StatusCode, readErr)
		return nil
	}

	var decoded interface{}
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		log.Printf("[WARNING] Lead backend returned non-JSON body for %s: %v", data.Email, err)
		return nil
	}
	log.Printf("[INFO] Lead backend response for %s: %v", data.Email, decoded)
	return nil
}
