package services

import (
	"bytes"
	"io"
	"mime/multipart"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n")

func createMockFileHeader(filename string, content []byte) *multipart.FileHeader {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("file", filename)
	part.Write(content)
	writer.Close()

	reader := multipart.NewReader(body, writer.Boundary())
	form, _ := reader.ReadForm(20 * 1024 * 1024)
	return form.File["file"][0]
}

func TestValidateImageUpload(t *testing.T) {
	t.Run("Valid PNG", func(t *testing.T) {
		file := createMockFileHeader("receipt.png", append(pngHeader, make([]byte, 100)...))
		assert.NoError(t, ValidateImageUpload(file))
	})

	t.Run("File too large", func(t *testing.T) {
		content := append(pngHeader, make([]byte, 11*1024*1024)...)
		file := createMockFileHeader("large.png", content)
		assert.ErrorIs(t, ValidateImageUpload(file), ErrFileTooLarge)
	})

	t.Run("Invalid extension", func(t *testing.T) {
		file := createMockFileHeader("receipt.pdf", []byte("%PDF-1.4"))
		assert.ErrorIs(t, ValidateImageUpload(file), ErrNotAnImage)
	})

	t.Run("Image extension with text content", func(t *testing.T) {
		file := createMockFileHeader("fake.jpg", []byte("this is just text"))
		assert.ErrorIs(t, ValidateImageUpload(file), ErrNotAnImage)
	})

	t.Run("Empty file", func(t *testing.T) {
		file := createMockFileHeader("empty.png", []byte{})
		assert.ErrorIs(t, ValidateImageUpload(file), ErrEmptyFile)
	})
}

func TestStageAttachment(t *testing.T) {
	content := append(pngHeader, []byte("pixels")...)
	file := createMockFileHeader("../../etc/receipt.png", content)

	staged, err := StageAttachment(file)
	require.NoError(t, err)
	assert.Equal(t, "receipt.png", staged.Name)
	assert.Equal(t, "image/png", staged.ContentType)
	assert.Equal(t, int64(len(content)), staged.Size())

	got, err := io.ReadAll(staged.Reader())
	require.NoError(t, err)
	assert.Equal(t, content, got)

	// Reader can be consumed repeatedly
	again, _ := io.ReadAll(staged.Reader())
	assert.Equal(t, content, again)
}

func TestGeneratePublicID(t *testing.T) {
	now := time.UnixMilli(1717171717171)
	assert.Equal(t, "payment-confirmation-1717171717171", GeneratePublicID(now))
}
