package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLandingHandler(t *testing.T) {
	manager := newTestManager(&stubUploader{}, &stubSubmitter{})

	t.Run("Renders tiers and a closed modal", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/", nil, manager)
		require.NoError(t, LandingHandler(c))

		body := rec.Body.String()
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, body, "Basic Tier")
		assert.Contains(t, body, "Growth Tier")
		assert.Contains(t, body, "Premium Tier")
		assert.Contains(t, body, "modal-slot")
	})

	t.Run("Keeps an open form across reloads", func(t *testing.T) {
		manager.Session(testVisitorID).Open("basic")
		_, c, rec := setupEcho(http.MethodGet, "/", nil, manager)
		require.NoError(t, LandingHandler(c))
		assert.Contains(t, rec.Body.String(), "Start Your Growth Journey")
	})
}

func TestStoriesHandler(t *testing.T) {
	_, c, rec := setupEcho(http.MethodGet, "/stories", nil, nil)
	require.NoError(t, StoriesHandler(c))
	assert.Contains(t, rec.Body.String(), "tnt891")
}

func TestHealthHandler(t *testing.T) {
	setupTestDB(t)
	_, c, rec := setupEcho(http.MethodGet, "/healthz", nil, nil)
	require.NoError(t, HealthHandler(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}
