package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"
)

var cloudinaryBaseURL = "https://api.cloudinary.com/v1_1"

// CloudinaryResponse holds the fields consumed from an image upload response
type CloudinaryResponse struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// CloudinaryUploader posts payment confirmations to an unsigned Cloudinary upload preset
type CloudinaryUploader struct {
	CloudName    string
	UploadPreset string
	Client       *http.Client
	Now          func() time.Time
}

// NewCloudinaryUploader creates an uploader using the default HTTP client
func NewCloudinaryUploader(cloudName, uploadPreset string) *CloudinaryUploader {
	return &CloudinaryUploader{
		CloudName:    cloudName,
		UploadPreset: uploadPreset,
		Client:       http.DefaultClient,
		Now:          time.Now,
	}
}

func (u *CloudinaryUploader) endpoint() string {
	return fmt.Sprintf("%s/%s/image/upload", cloudinaryBaseURL, u.CloudName)
}

// UploadAttachment sends the file as multipart form data with file, upload_preset and public_id
func (u *CloudinaryUploader) UploadAttachment(ctx context.Context, file *StagedFile) (*AttachmentResult, error) {
	if file == nil {
		return nil, ErrNoFileSelected
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(file.Name)))
	header.Set("Content-Type", file.ContentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := io.Copy(part, file.Reader()); err != nil {
		return nil, fmt.Errorf("failed to write file part: %w", err)
	}

	publicID := GeneratePublicID(u.Now())
	if err := writer.WriteField("upload_preset", u.UploadPreset); err != nil {
		return nil, fmt.Errorf("failed to write upload preset: %w", err)
	}
	if err := writer.WriteField("public_id", publicID); err != nil {
		return nil, fmt.Errorf("failed to write public id: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	defer resp.Body.Close()

	var result CloudinaryResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&result)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr == nil && result.Error != nil && result.Error.Message != "" {
			return nil, fmt.Errorf("upload failed: %s", result.Error.Message)
		}
		return nil, fmt.Errorf("upload failed with status %d", resp.StatusCode)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", decodeErr)
	}
	if result.SecureURL == "" {
		return nil, fmt.Errorf("upload failed: response has no secure_url")
	}

	log.Printf("[INFO] Payment confirmation uploaded to Cloudinary as %s", result.PublicID)
	return &AttachmentResult{
		FileName: result.PublicID,
		URL:      result.SecureURL,
	}, nil
}

func escapeQuotes(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '"' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
