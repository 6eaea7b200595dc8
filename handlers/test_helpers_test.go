package handlers

import (
	"context"
	"io"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"streamgrowth_app_go/config"
	"streamgrowth_app_go/db"
	"streamgrowth_app_go/models"
	"streamgrowth_app_go/services"
	"streamgrowth_app_go/services/leadform"
)

const testVisitorID = "0b7c9f3e-8d54-4f3a-9b0e-2a1c6d7e8f90"

func setupTestDB(t *testing.T) *gorm.DB {
	// Unique shared memory name isolates tests
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, testDB.AutoMigrate(&models.LeadRecord{}))

	db.DB = testDB
	return testDB
}

type stubUploader struct {
	mu    sync.Mutex
	calls int
}

func (u *stubUploader) UploadAttachment(ctx context.Context, file *services.StagedFile) (*services.AttachmentResult, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.calls++
	return &services.AttachmentResult{FileName: file.Name, URL: "https://res.cloudinary.com/demo/" + file.Name}, nil
}

type stubSubmitter struct {
	mu   sync.Mutex
	sent []models.LeadFormData
	err  error
}

func (s *stubSubmitter) Submit(ctx context.Context, data models.LeadFormData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, data)
	return s.err
}

func newTestManager(uploader services.AttachmentUploader, submitter leadform.Submitter) *leadform.Manager {
	return leadform.NewManager(leadform.Dependencies{Uploader: uploader, Submitter: submitter})
}

func setupEcho(method, path string, body io.Reader, manager *leadform.Manager) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	c.Set("config", &config.Config{Environment: "test"})
	c.Set(LeadFormsKey, manager)
	c.Set("lead_session_id", testVisitorID)
	return e, c, rec
}
