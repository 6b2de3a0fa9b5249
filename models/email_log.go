package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	EmailStatusPending = "PENDING"
	EmailStatusSent    = "SENT"
	EmailStatusFailed  = "FAILED"
)

// EmailLog records every outbound email attempt so the admin delivery dashboard
// can list, count and retry sends.
type EmailLog struct {
	gorm.Model

	BookingID *uint  `gorm:"index;column:booking_id" json:"bookingId,omitempty"`
	Recipient string `gorm:"size:150" json:"recipient"`
	Subject   string `gorm:"size:255" json:"subject"`
	Template  string `gorm:"size:64" json:"template"` // e.g. "booking_confirmation"

	Status        string     `gorm:"size:16;default:PENDING;index" json:"status"`
	Error         string     `gorm:"type:text" json:"error,omitempty"`
	Attempts      int        `gorm:"default:0" json:"attempts"`
	LastAttemptAt *time.Time `gorm:"column:last_attempt_at" json:"lastAttemptAt,omitempty"`
}
