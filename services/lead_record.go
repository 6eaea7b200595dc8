package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"streamgrowth_app_go/config"
	"streamgrowth_app_go/models"

	"gorm.io/gorm"
)

// LeadAttempt describes one finished submission attempt
type LeadAttempt struct {
	SessionID string
	Data      models.LeadFormData
	Err       error
	IPAddress string
	UserAgent string
}

// LeadRecordService persists submission attempts and sends the confirmation email on success
type LeadRecordService struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewLeadRecordService creates the service; cfg may be nil to skip confirmation emails
func NewLeadRecordService(db *gorm.DB, cfg *config.Config) *LeadRecordService {
	return &LeadRecordService{db: db, cfg: cfg}
}

// RecordAttempt stores the attempt. Storage failures are logged, never surfaced to the visitor.
func (s *LeadRecordService) RecordAttempt(ctx context.Context, attempt LeadAttempt) {
	record := BuildLeadRecord(attempt)
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		log.Printf("[ERROR] Failed to record lead attempt for %s: %v", attempt.Data.Email, err)
	}

	if attempt.Err == nil && s.cfg != nil {
		SendEmailAsync(s.cfg, BuildLeadConfirmationEmail(s.cfg, attempt.Data))
	}
}

// BuildLeadRecord maps an attempt onto a LeadRecord row
func BuildLeadRecord(attempt LeadAttempt) models.LeadRecord {
	data := attempt.Data.Clone()
	record := models.LeadRecord{
		SessionID:        attempt.SessionID,
		Name:             data.Name,
		Email:            data.Email,
		TwitchUsername:   data.TwitchUsername,
		CurrentFollowers: data.CurrentFollowers,
		Plan:             string(data.Plan),
		Message:          SanitizeMessage(data.Message),
		Goals:            data.Goals,
		AttachmentURL:    data.AttachmentURL,
		Status:           models.LeadStatusSent,
		IPAddress:        attempt.IPAddress,
		UserAgent:        attempt.UserAgent,
	}
	if attempt.Err != nil {
		record.Status = models.LeadStatusFailed
		record.FailureReason = attempt.Err.Error()
	}
	return record
}

// ListLeadRecords returns records created since the given time, newest first.
// An empty status returns every status.
func ListLeadRecords(db *gorm.DB, since time.Time, status string) ([]models.LeadRecord, error) {
	query := db.Where("created_at >= ?", since)
	if status != "" {
		if !models.IsValidLeadStatus(status) {
			return nil, fmt.Errorf("invalid lead status %q", status)
		}
		query = query.Where("status = ?", status)
	}

	var records []models.LeadRecord
	if err := query.Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list lead records: %w", err)
	}
	return records, nil
}

// PruneFailedLeadRecords deletes failed attempts older than the cutoff and returns how many went
func PruneFailedLeadRecords(db *gorm.DB, olderThan time.Time) (int64, error) {
	result := db.Where("status = ? AND created_at < ?", models.LeadStatusFailed, olderThan).Delete(&models.LeadRecord{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to prune lead records: %w", result.Error)
	}
	return result.RowsAffected, nil
}
