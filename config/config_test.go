package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults match the hosted upload contract", func(t *testing.T) {
		cfg := Load()
		assert.Equal(t, UploadProviderCloudinary, cfg.UploadProvider)
		assert.Equal(t, "ml_default", cfg.CloudinaryUploadPreset)
		assert.Equal(t, 3*time.Second, cfg.AutoCloseDelay)
	})

	t.Run("Trailing slash is stripped from API base URL", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "https://api.example.com/")
		cfg := Load()
		assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	})

	t.Run("Unknown upload provider falls back to cloudinary", func(t *testing.T) {
		t.Setenv("UPLOAD_PROVIDER", "dropbox")
		cfg := Load()
		assert.Equal(t, UploadProviderCloudinary, cfg.UploadProvider)
	})
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_DELAY", "250ms")
	assert.Equal(t, 250*time.Millisecond, getEnvDuration("TEST_DELAY", time.Second))

	t.Setenv("TEST_DELAY", "soon")
	assert.Equal(t, time.Second, getEnvDuration("TEST_DELAY", time.Second))

	t.Setenv("TEST_DELAY", "-5s")
	assert.Equal(t, time.Second, getEnvDuration("TEST_DELAY", time.Second))
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_LIMIT", "64")
	assert.Equal(t, 64, getEnvInt("TEST_LIMIT", 256))

	t.Setenv("TEST_LIMIT", "lots")
	assert.Equal(t, 256, getEnvInt("TEST_LIMIT", 256))

	t.Setenv("TEST_LIMIT", "0")
	assert.Equal(t, 256, getEnvInt("TEST_LIMIT", 256))
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("TEST_FLAG", "yes")
	assert.True(t, getEnvBool("TEST_FLAG", false))

	t.Setenv("TEST_FLAG", "off")
	assert.False(t, getEnvBool("TEST_FLAG", true))

	t.Setenv("TEST_FLAG", "maybe")
	assert.True(t, getEnvBool("TEST_FLAG", true))
}
