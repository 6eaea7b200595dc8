package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage(t *testing.T) {
	tempDir := t.TempDir()

	storage := NewLocalStorage(tempDir)
	ctx := context.Background()
	content := "hello storage"
	key := "test/file.txt"

	t.Run("UploadReader creates file", func(t *testing.T) {
		result, err := storage.UploadReader(ctx, strings.NewReader(content), key, "text/plain", int64(len(content)))
		assert.NoError(t, err)
		assert.Equal(t, key, result.Key)
		assert.Equal(t, int64(len(content)), result.FileSize)

		_, err = os.Stat(filepath.Join(tempDir, key))
		assert.NoError(t, err)
	})

	t.Run("UploadReader rejects path traversal", func(t *testing.T) {
		_, err := storage.UploadReader(ctx, strings.NewReader("x"), "../escape.txt", "text/plain", 1)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "path traversal")
	})

	t.Run("Delete removes file", func(t *testing.T) {
		assert.NoError(t, storage.Delete(ctx, key))
		_, err := os.Stat(filepath.Join(tempDir, key))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("Delete non-existent file does not error", func(t *testing.T) {
		assert.NoError(t, storage.Delete(ctx, "missing.txt"))
	})
}

func TestStorageUploader(t *testing.T) {
	uploader := NewStorageUploader(NewLocalStorage("tmp_test_uploads"), "https://growth.example.com/")
	uploader.Now = func() time.Time { return time.UnixMilli(1700000000123) }
	defer os.RemoveAll("tmp_test_uploads")

	t.Run("Stores file and returns an absolute URL", func(t *testing.T) {
		staged := &StagedFile{Name: "Receipt.PNG", ContentType: "image/png", Data: pngHeader}
		result, err := uploader.UploadAttachment(context.Background(), staged)
		require.NoError(t, err)
		assert.Equal(t, "payment-confirmation-1700000000123", result.FileName)
		assert.Equal(t, "https://growth.example.com/tmp_test_uploads/payment-confirmations/payment-confirmation-1700000000123.png", result.URL)

		_, err = os.Stat(filepath.Join("tmp_test_uploads", "payment-confirmations", "payment-confirmation-1700000000123.png"))
		assert.NoError(t, err)
	})

	t.Run("Nil file", func(t *testing.T) {
		_, err := uploader.UploadAttachment(context.Background(), nil)
		assert.ErrorIs(t, err, ErrNoFileSelected)
	})
}
