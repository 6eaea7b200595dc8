package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"
)

const (
	MaxUploadSize = 10 * 1024 * 1024 // 10MB
	// PaymentConfirmationPrefix prefixes the public id of every uploaded confirmation
	PaymentConfirmationPrefix = "payment-confirmation-"
)

var (
	ErrFileTooLarge   = errors.New("file size exceeds maximum allowed size of 10MB")
	ErrNotAnImage     = errors.New("only image files are allowed")
	ErrEmptyFile      = errors.New("uploaded file is empty")
	ErrNoFileSelected = errors.New("please upload your payment confirmation before submitting")
)

var allowedImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".heic"}

// StagedFile is a selected payment confirmation held in memory until final submission
type StagedFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// Size returns the file size in bytes
func (f *StagedFile) Size() int64 {
	return int64(len(f.Data))
}

// Reader returns a fresh reader over the file content
func (f *StagedFile) Reader() io.Reader {
	return bytes.NewReader(f.Data)
}

// AttachmentResult is what an upload collaborator yields on success
type AttachmentResult struct {
	FileName string
	URL      string
}

// AttachmentUploader sends a staged file to a hosting service
type AttachmentUploader interface {
	UploadAttachment(ctx context.Context, file *StagedFile) (*AttachmentResult, error)
}

// GeneratePublicID builds the hosted identifier for a payment confirmation
func GeneratePublicID(now time.Time) string {
	return fmt.Sprintf("%s%d", PaymentConfirmationPrefix, now.UnixMilli())
}

// ValidateImageUpload checks size, extension and sniffed content type
func ValidateImageUpload(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > MaxUploadSize {
		return ErrFileTooLarge
	}
	if fileHeader.Size == 0 {
		return ErrEmptyFile
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	isAllowed := false
	for _, allowed := range allowedImageExtensions {
		if ext == allowed {
			isAllowed = true
			break
		}
	}
	if !isAllowed {
		return ErrNotAnImage
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	// Read first 512 bytes to detect content type
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file content: %w", err)
	}
	if !strings.HasPrefix(http.DetectContentType(buffer[:n]), "image/") && ext != ".heic" {
		return ErrNotAnImage
	}

	return nil
}

// StageAttachment validates the uploaded image and reads it into memory
func StageAttachment(fileHeader *multipart.FileHeader) (*StagedFile, error) {
	if err := ValidateImageUpload(fileHeader); err != nil {
		return nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if int64(len(data)) > MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	return &StagedFile{
		Name:        filepath.Base(fileHeader.Filename),
		ContentType: contentType,
		Data:        data,
	}, nil
}
