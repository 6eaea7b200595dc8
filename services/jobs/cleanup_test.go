package jobs

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"streamgrowth_app_go/models"
	"streamgrowth_app_go/services"
	"streamgrowth_app_go/services/leadform"
)

func setupJobsTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:mem_"+uuid.New().String()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.LeadRecord{}))
	return db
}

func TestPruneFailedAttempts(t *testing.T) {
	db := setupJobsTestDB(t)
	now := time.Now().UTC()

	records := []models.LeadRecord{
		{Email: "old-failed@example.com", Status: models.LeadStatusFailed, CreatedAt: now.Add(-40 * 24 * time.Hour)},
		{Email: "new-failed@example.com", Status: models.LeadStatusFailed, CreatedAt: now.Add(-2 * 24 * time.Hour)},
		{Email: "old-sent@example.com", Status: models.LeadStatusSent, CreatedAt: now.Add(-90 * 24 * time.Hour)},
	}
	for i := range records {
		require.NoError(t, db.Create(&records[i]).Error)
	}

	assert.Equal(t, int64(1), PruneFailedAttempts(db, now))

	var emails []string
	db.Model(&models.LeadRecord{}).Order("email").Pluck("email", &emails)
	assert.Equal(t, []string{"new-failed@example.com", "old-sent@example.com"}, emails)
}

func TestEvictIdleSessions(t *testing.T) {
	now := time.Now()
	manager := leadform.NewManager(leadform.Dependencies{
		Submitter: services.NewLeadSubmitter("http://localhost"),
		Now:       func() time.Time { return now },
	})
	manager.Session("a").Open("growth")

	assert.Equal(t, 0, EvictIdleSessions(manager, time.Hour))

	now = now.Add(2 * time.Hour)
	assert.Equal(t, 1, EvictIdleSessions(manager, time.Hour))
	assert.Equal(t, 0, manager.Len())
}

func TestStartScheduler(t *testing.T) {
	db := setupJobsTestDB(t)
	manager := leadform.NewManager(leadform.Dependencies{Submitter: services.NewLeadSubmitter("http://localhost")})

	c, err := StartScheduler(db, manager, time.Hour)
	require.NoError(t, err)
	defer c.Stop()
	assert.Len(t, c.Entries(), 2)
}
