package jobs

import (
	"log"
	"time"

	"streamgrowth_app_go/services"
	"streamgrowth_app_go/services/leadform"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// FailedRecordRetention is how long failed submission attempts are kept
const FailedRecordRetention = 30 * 24 * time.Hour

// StartScheduler registers the maintenance jobs and starts the cron runner.
// The caller stops the returned cron on shutdown.
func StartScheduler(database *gorm.DB, manager *leadform.Manager, idleTTL time.Duration) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(time.UTC))

	if _, err := c.AddFunc("@every 5m", func() {
		EvictIdleSessions(manager, idleTTL)
	}); err != nil {
		return nil, err
	}

	if _, err := c.AddFunc("0 3 * * *", func() {
		PruneFailedAttempts(database, time.Now().UTC())
	}); err != nil {
		return nil, err
	}

	c.Start()
	log.Println("[CRON] Scheduler started")
	return c, nil
}

// EvictIdleSessions drops visitor sessions with no activity within ttl
func EvictIdleSessions(manager *leadform.Manager, ttl time.Duration) int {
	removed := manager.CleanupIdle(ttl)
	if removed > 0 {
		log.Printf("[JOB] Evicted %d idle lead form sessions", removed)
	}
	return removed
}

// PruneFailedAttempts deletes failed lead records past the retention window
func PruneFailedAttempts(database *gorm.DB, now time.Time) int64 {
	n, err := services.PruneFailedLeadRecords(database, now.Add(-FailedRecordRetention))
	if err != nil {
		log.Printf("[JOB] Error pruning failed lead records: %v", err)
		return 0
	}
	log.Printf("[JOB] Pruned %d failed lead records", n)
	return n
}
