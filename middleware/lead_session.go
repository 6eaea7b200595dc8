package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// LeadSessionCookie ties a browser to its in-memory lead form session
	LeadSessionCookie = "lead_session"
	leadSessionKey    = "lead_session_id"
)

// LeadSession ensures every visitor carries a session id cookie and exposes it to handlers
func LeadSession(secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if cookie, err := c.Cookie(LeadSessionCookie); err == nil {
				if _, parseErr := uuid.Parse(cookie.Value); parseErr == nil {
					id = cookie.Value
				}
			}

			if id == "" {
				id = uuid.New().String()
				c.SetCookie(&http.Cookie{
					Name:     LeadSessionCookie,
					Value:    id,
					Path:     "/",
					Expires:  time.Now().Add(24 * time.Hour),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(leadSessionKey, id)
			return next(c)
		}
	}
}

// GetLeadSessionID returns the visitor session id set by LeadSession
func GetLeadSessionID(c echo.Context) string {
	if id, ok := c.Get(leadSessionKey).(string); ok {
		return id
	}
	return ""
}
