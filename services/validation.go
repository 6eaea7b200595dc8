package services

import (
	"regexp"
	"strings"

	"streamgrowth_app_go/models"
)

var (
	emailPattern          = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	twitchUsernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{4,25}$`)
)

// ValidationErrors maps a field name to a human readable message.
// A field without a violation has no entry.
type ValidationErrors map[string]string

// Has reports whether the field currently holds an error
func (v ValidationErrors) Has(field string) bool {
	_, ok := v[field]
	return ok
}

// Get returns the message for a field, or an empty string
func (v ValidationErrors) Get(field string) string {
	return v[field]
}

// Clear removes the error for a single field
func (v ValidationErrors) Clear(field string) {
	delete(v, field)
}

// Empty reports whether the form may proceed
func (v ValidationErrors) Empty() bool {
	return len(v) == 0
}

// Clone returns an independent copy
func (v ValidationErrors) Clone() ValidationErrors {
	out := make(ValidationErrors, len(v))
	for k, msg := range v {
		out[k] = msg
	}
	return out
}

// ValidateName fails on empty or whitespace-only names
func ValidateName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "Full name is required"
	}
	return ""
}

// ValidateEmail requires the local@domain.tld shape without whitespace
func ValidateEmail(email string) string {
	if strings.TrimSpace(email) == "" {
		return "Email address is required"
	}
	if !emailPattern.MatchString(email) {
		return "Please enter a valid email address"
	}
	return ""
}

// ValidateTwitchUsername accepts 4-25 letters, digits or underscores
func ValidateTwitchUsername(username string) string {
	if strings.TrimSpace(username) == "" {
		return "Twitch username is required"
	}
	if !twitchUsernamePattern.MatchString(username) {
		return "Twitch username must be 4-25 characters using letters, numbers or underscores"
	}
	return ""
}

// ValidateCurrentFollowers requires one of the enumerated follower ranges
func ValidateCurrentFollowers(value string) string {
	if value == "" {
		return "Please select your current follower range"
	}
	if !models.IsValidFollowerRange(value) {
		return "Please select a valid follower range"
	}
	return ""
}

// ValidateLead runs every field check in one pass and returns the complete error mapping
func ValidateLead(data models.LeadFormData) ValidationErrors {
	errs := make(ValidationErrors)
	checks := []struct {
		field string
		msg   string
	}{
		{models.FieldName, ValidateName(data.Name)},
		{models.FieldEmail, ValidateEmail(data.Email)},
		{models.FieldTwitchUsername, ValidateTwitchUsername(data.TwitchUsername)},
		{models.FieldCurrentFollowers, ValidateCurrentFollowers(data.CurrentFollowers)},
	}
	for _, c := range checks {
		if c.msg != "" {
			errs[c.field] = c.msg
		}
	}
	return errs
}
