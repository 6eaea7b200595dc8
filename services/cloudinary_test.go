package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCloudinary(t *testing.T, handler http.HandlerFunc) *CloudinaryUploader {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	oldURL := cloudinaryBaseURL
	cloudinaryBaseURL = server.URL
	t.Cleanup(func() { cloudinaryBaseURL = oldURL })

	u := NewCloudinaryUploader("democloud", "ml_default")
	u.Now = func() time.Time { return time.UnixMilli(1700000000000) }
	return u
}

func TestCloudinaryUploader(t *testing.T) {
	staged := &StagedFile{Name: "receipt.png", ContentType: "image/png", Data: append(pngHeader, 1, 2, 3)}

	t.Run("Upload success", func(t *testing.T) {
		u := newTestCloudinary(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/democloud/image/upload", r.URL.Path)
			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "ml_default", r.FormValue("upload_preset"))
			assert.Equal(t, "payment-confirmation-1700000000000", r.FormValue("public_id"))

			f, fh, err := r.FormFile("file")
			require.NoError(t, err)
			defer f.Close()
			got, _ := io.ReadAll(f)
			assert.Equal(t, staged.Data, got)
			assert.Equal(t, "receipt.png", fh.Filename)

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{
				"public_id":  "payment-confirmation-1700000000000",
				"secure_url": "https://res.cloudinary.com/democloud/image/upload/p.png",
			})
		})

		result, err := u.UploadAttachment(context.Background(), staged)
		require.NoError(t, err)
		assert.Equal(t, "payment-confirmation-1700000000000", result.FileName)
		assert.Equal(t, "https://res.cloudinary.com/democloud/image/upload/p.png", result.URL)
	})

	t.Run("Error message is surfaced", func(t *testing.T) {
		u := newTestCloudinary(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"message":"Upload preset must be whitelisted for unsigned uploads"}}`))
		})

		result, err := u.UploadAttachment(context.Background(), staged)
		assert.Nil(t, result)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Upload preset must be whitelisted")
	})

	t.Run("Non JSON failure falls back to status", func(t *testing.T) {
		u := newTestCloudinary(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("<html>bad gateway</html>"))
		})

		_, err := u.UploadAttachment(context.Background(), staged)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 502")
	})

	t.Run("Missing file is rejected without a request", func(t *testing.T) {
		called := false
		u := newTestCloudinary(t, func(w http.ResponseWriter, r *http.Request) { called = true })

		_, err := u.UploadAttachment(context.Background(), nil)
		assert.ErrorIs(t, err, ErrNoFileSelected)
		assert.False(t, called)
	})

	t.Run("Network error", func(t *testing.T) {
		u := NewCloudinaryUploader("democloud", "ml_default")
		oldURL := cloudinaryBaseURL
		cloudinaryBaseURL = "http://127.0.0.1:1"
		defer func() { cloudinaryBaseURL = oldURL }()

		_, err := u.UploadAttachment(context.Background(), staged)
		assert.Error(t, err)
	})
}
