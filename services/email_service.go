// services/email_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"villa-backend/models"
	"villa-backend/utils"

	"gorm.io/gorm"
)

var ErrEmailLogNotFound = errors.New("email_log_not_found")

const templateBookingConfirmation = "booking_confirmation"

// EmailService sends transactional mail and keeps one EmailLog row per attempt
// chain so the admin delivery dashboard can list, count and retry sends.
type EmailService struct {
	DB *gorm.DB
}

func NewEmailService(db *gorm.DB) *EmailService {
	return &EmailService{DB: db}
}

func emailDataFor(booking *models.Booking) utils.BookingEmailData {
	return utils.BookingEmailData{
		GuestName:     booking.GuestName,
		ReferenceCode: booking.ReferenceCode,
		PropertyName:  booking.Property.Name,
		CheckIn:       utils.FormatDate(booking.CheckIn),
		CheckOut:      utils.FormatDate(booking.CheckOut),
		Nights:        booking.Nights,
		TotalAmount:   booking.TotalAmount,
	}
}

// SendBookingConfirmation sends the confirmation email for a booking and records
// the outcome. The booking must have Property preloaded. Send failures are
// recorded on the log row and returned; the booking itself is unaffected.
func (s *EmailService) SendBookingConfirmation(booking *models.Booking) (*models.EmailLog, error) {
	bookingID := booking.ID
	entry := models.EmailLog{
		BookingID: &bookingID,
		Recipient: booking.GuestEmail,
		Subject:   fmt.Sprintf("Booking confirmed — %s (%s)", booking.Property.Name, booking.ReferenceCode),
		Template:  templateBookingConfirmation,
		Status:    models.EmailStatusPending,
	}
	if err := s.DB.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("failed to create email log: %w", err)
	}

	return s.attempt(&entry, booking)
}

func (s *EmailService) attempt(entry *models.EmailLog, booking *models.Booking) (*models.EmailLog, error) {
	now := time.Now().UTC()
	sendErr := utils.SendBookingConfirmationEmail(entry.Recipient, emailDataFor(booking))

	updates := map[string]interface{}{
		"attempts":        gorm.Expr("attempts + 1"),
		"last_attempt_at": now,
	}
	if sendErr != nil {
		updates["status"] = models.EmailStatusFailed
		updates["error"] = sendErr.Error()
	} else {
		updates["status"] = models.EmailStatusSent
		updates["error"] = ""
	}
	if err := s.DB.Model(entry).Where("id = ?", entry.ID).Updates(updates).Error; err != nil {
		return entry, fmt.Errorf("failed to update email log: %w", err)
	}

	entry.Attempts++
	entry.LastAttemptAt = &now
	if sendErr != nil {
		entry.Status = models.EmailStatusFailed
		entry.Error = sendErr.Error()
		return entry, fmt.Errorf("email_send_failed: %w", sendErr)
	}
	entry.Status = models.EmailStatusSent
	entry.Error = ""
	return entry, nil
}

// Retry re-sends the email behind an existing log row.
func (s *EmailService) Retry(logID uint) (*models.EmailLog, error) {
	var entry models.EmailLog
	if err := s.DB.First(&entry, logID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmailLogNotFound
		}
		return nil, fmt.Errorf("failed to load email log: %w", err)
	}
	if entry.BookingID == nil {
		return nil, errors.New("email_log_missing_booking")
	}

	var booking models.Booking
	if err := s.DB.Preload("Property").First(&booking, *entry.BookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("booking_not_found")
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}

	return s.attempt(&entry, &booking)
}

// List returns recent email logs, optionally filtered by status.
func (s *EmailService) List(status string, limit int) ([]models.EmailLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	q := s.DB.Order("created_at DESC").Limit(limit)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var logs []models.EmailLog
	if err := q.Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to load email logs: %w", err)
	}
	return logs, nil
}

// DeliveryStats are the counters the diagnostics dashboard polls.
type DeliveryStats struct {
	Total   int64 `json:"total"`
	Sent    int64 `json:"sent"`
	Failed  int64 `json:"failed"`
	Pending int64 `json:"pending"`
}

func (s *EmailService) Stats() (DeliveryStats, error) {
	var stats DeliveryStats
	counts := []struct {
		status string
		target *int64
	}{
		{models.EmailStatusSent, &stats.Sent},
		{models.EmailStatusFailed, &stats.Failed},
		{models.EmailStatusPending, &stats.Pending},
	}
	if err := s.DB.Model(&models.EmailLog{}).Count(&stats.Total).Error; err != nil {
		return stats, fmt.Errorf("failed to count email logs: %w", err)
	}
	for _, c := range counts {
		if err := s.DB.Model(&models.EmailLog{}).Where("status = ?", c.status).Count(c.target).Error; err != nil {
			return stats, fmt.Errorf("failed to count email logs: %w", err)
		}
	}
	return stats, nil
}
