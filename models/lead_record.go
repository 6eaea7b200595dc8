package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lead record status
const (
	LeadStatusSent   = "sent"
	LeadStatusFailed = "failed"
)

// LeadRecord is the local trace of one submission attempt
type LeadRecord struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SessionID string `gorm:"type:varchar(36);index" json:"session_id"`

	// Prospect information
	Name             string   `gorm:"not null" json:"name"`
	Email            string   `gorm:"not null;index" json:"email"`
	TwitchUsername   string   `gorm:"not null" json:"twitch_username"`
	CurrentFollowers string   `json:"current_followers"`
	Plan             string   `gorm:"not null;index" json:"plan"`
	Message          string   `gorm:"type:text" json:"message,omitempty"`
	Goals            []string `gorm:"serializer:json" json:"goals"`
	AttachmentURL    string   `json:"attachment_url,omitempty"`

	// Outcome
	Status        string `gorm:"not null;index" json:"status"`
	FailureReason string `gorm:"type:text" json:"failure_reason,omitempty"`

	// Audit fields
	IPAddress string `gorm:"type:varchar(45)" json:"ip_address,omitempty"`
	UserAgent string `gorm:"type:text" json:"user_agent,omitempty"`
}

// BeforeCreate hook to generate UUID
func (lr *LeadRecord) BeforeCreate(tx *gorm.DB) error {
	if lr.ID == "" {
		lr.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for LeadRecord model
func (LeadRecord) TableName() string {
	return "lead_records"
}

// IsValidLeadStatus checks if the status is valid
func IsValidLeadStatus(status string) bool {
	return status == LeadStatusSent || status == LeadStatusFailed
}
