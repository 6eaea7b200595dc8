package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"streamgrowth_app_go/config"
	"streamgrowth_app_go/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Unique shared memory name isolates tests
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, testDB.AutoMigrate(&models.LeadRecord{}))
	return testDB
}

func TestLeadRecordService(t *testing.T) {
	testDB := setupTestDB(t)
	svc := NewLeadRecordService(testDB, &config.Config{EmailTestMode: true})
	ctx := context.Background()

	data := validLead()
	data.Goals = []string{"Grow follower count"}
	data.Message = "<i>Let's go</i>"
	data.AttachmentURL = "https://res.example.com/p.png"

	svc.RecordAttempt(ctx, LeadAttempt{SessionID: "s-1", Data: data, IPAddress: "10.0.0.1", UserAgent: "test"})
	svc.RecordAttempt(ctx, LeadAttempt{SessionID: "s-1", Data: data, Err: errors.New("submission rejected: status 500")})

	t.Run("Both attempts are stored", func(t *testing.T) {
		records, err := ListLeadRecords(testDB, time.Now().Add(-time.Hour), "")
		require.NoError(t, err)
		require.Len(t, records, 2)
	})

	t.Run("Sent record keeps payload fields", func(t *testing.T) {
		records, err := ListLeadRecords(testDB, time.Now().Add(-time.Hour), models.LeadStatusSent)
		require.NoError(t, err)
		require.Len(t, records, 1)
		r := records[0]
		assert.NotEmpty(t, r.ID)
		assert.Equal(t, "Sam Streamer", r.Name)
		assert.Equal(t, "growth", r.Plan)
		assert.Equal(t, []string{"Grow follower count"}, r.Goals)
		assert.Equal(t, "Let's go", r.Message)
		assert.Equal(t, "10.0.0.1", r.IPAddress)
	})

	t.Run("Failed record carries the reason", func(t *testing.T) {
		records, err := ListLeadRecords(testDB, time.Now().Add(-time.Hour), models.LeadStatusFailed)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Contains(t, records[0].FailureReason, "status 500")
	})

	t.Run("Invalid status filter", func(t *testing.T) {
		_, err := ListLeadRecords(testDB, time.Time{}, "pending")
		assert.Error(t, err)
	})

	t.Run("Prune removes only old failed attempts", func(t *testing.T) {
		n, err := PruneFailedLeadRecords(testDB, time.Now().Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		records, _ := ListLeadRecords(testDB, time.Time{}, "")
		require.Len(t, records, 1)
		assert.Equal(t, models.LeadStatusSent, records[0].Status)
	})
}

func TestExportLeadRecords(t *testing.T) {
	records := []models.LeadRecord{
		{
			CreatedAt:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			Name:           "Sam Streamer",
			Email:          "sam@example.com",
			TwitchUsername: "SamStreams_01",
			Plan:           "growth",
			Goals:          []string{"Grow follower count", "Monetize my stream"},
			Status:         models.LeadStatusSent,
		},
	}

	buf, err := ExportLeadRecords(records)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Twitch"}, f.GetSheetList())

	header, _ := f.GetCellValue("Twitch", "A1")
	assert.Equal(t, "Created At", header)

	created, _ := f.GetCellValue("Twitch", "A2")
	assert.Equal(t, "2026-03-01 12:00:00", created)

	goals, _ := f.GetCellValue("Twitch", "G2")
	assert.Equal(t, "Grow follower count, Monetize my stream", goals)

	status, _ := f.GetCellValue("Twitch", "J2")
	assert.Equal(t, "sent", status)
}
