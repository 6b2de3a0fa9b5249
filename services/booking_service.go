// services/booking_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"villa-backend/models"
	"villa-backend/queue"
	"villa-backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingService wraps *gorm.DB and owns the booking lifecycle: quote, create,
// confirm, cancel, complete.
type BookingService struct {
	DB      *gorm.DB
	Coupons *CouponService
	Loyalty *LoyaltyService
	Email   *EmailService
}

func NewBookingService(db *gorm.DB, coupons *CouponService, loyalty *LoyaltyService, email *EmailService) *BookingService {
	return &BookingService{DB: db, Coupons: coupons, Loyalty: loyalty, Email: email}
}

// QuoteResult is the price breakdown returned by the public quote endpoint.
type QuoteResult struct {
	PropertyID     uint    `json:"property_id"`
	Nights         int     `json:"nights"`
	BaseAmount     float64 `json:"base_amount"`
	DiscountAmount float64 `json:"discount_amount"`
	TotalAmount    float64 `json:"total_amount"`
	CouponCode     string  `json:"coupon_code,omitempty"`
}

func (s *BookingService) loadActiveProperty(propertyID uint) (*models.Property, error) {
	var property models.Property
	if err := s.DB.First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("property_not_found")
		}
		return nil, fmt.Errorf("db error checking property %d: %w", propertyID, err)
	}
	if property.Status != "active" {
		return nil, errors.New("property_inactive")
	}
	return &property, nil
}

// QuoteStay prices a prospective stay: nights times the property's nightly base
// rate, minus an optional coupon discount. Guest count never enters the formula.
func (s *BookingService) QuoteStay(propertyID uint, checkIn, checkOut string, couponCode string) (QuoteResult, error) {
	var result QuoteResult

	ci, err := utils.ParseDate(checkIn)
	if err != nil {
		return result, fmt.Errorf("invalid check_in format: %w", err)
	}
	co, err := utils.ParseDate(checkOut)
	if err != nil {
		return result, fmt.Errorf("invalid check_out format: %w", err)
	}

	property, err := s.loadActiveProperty(propertyID)
	if err != nil {
		return result, err
	}

	stay, err := utils.ComputeStay(ci, co, property.BasePricePerNight)
	if err != nil {
		return result, err
	}

	result = QuoteResult{
		PropertyID:  propertyID,
		Nights:      stay.Nights,
		BaseAmount:  stay.TotalAmount,
		TotalAmount: stay.TotalAmount,
	}

	if couponCode != "" {
		_, discount, err := s.Coupons.ValidateCoupon(couponCode, stay.TotalAmount)
		if err != nil {
			return result, err
		}
		result.DiscountAmount = discount
		result.TotalAmount = stay.TotalAmount - discount
		result.CouponCode = couponCode
	}

	return result, nil
}

// CreateBookingInput is everything the guest booking form submits.
type CreateBookingInput struct {
	PropertyID uint
	GuestName  string
	GuestEmail string
	GuestPhone string
	CheckIn    string
	CheckOut   string
	Adults     int
	Children   int
	CouponCode string
}

// CreateBooking validates the request, prices the stay, applies an optional
// coupon and writes the pending booking in one transaction.
func (s *BookingService) CreateBooking(input CreateBookingInput) (*models.Booking, error) {
	if input.GuestName == "" {
		return nil, errors.New("validation: guest name required")
	}
	if input.Adults <= 0 {
		input.Adults = 1
	}
	if input.Children < 0 {
		input.Children = 0
	}

	ci, err := utils.ParseDate(input.CheckIn)
	if err != nil {
		return nil, fmt.Errorf("invalid check_in format: %w", err)
	}
	co, err := utils.ParseDate(input.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("invalid check_out format: %w", err)
	}

	property, err := s.loadActiveProperty(input.PropertyID)
	if err != nil {
		return nil, err
	}

	stay, err := utils.ComputeStay(ci, co, property.BasePricePerNight)
	if err != nil {
		return nil, err
	}

	var coupon *models.Coupon
	var discount float64
	if input.CouponCode != "" {
		coupon, discount, err = s.Coupons.ValidateCoupon(input.CouponCode, stay.TotalAmount)
		if err != nil {
			return nil, err
		}
	}

	booking := &models.Booking{
		PropertyID:     input.PropertyID,
		ReferenceCode:  utils.GenerateReferenceCode(),
		Status:         models.BookingStatusPending,
		GuestName:      input.GuestName,
		GuestEmail:     input.GuestEmail,
		GuestPhone:     input.GuestPhone,
		CheckIn:        utils.DateOnly(ci),
		CheckOut:       utils.DateOnly(co),
		Nights:         stay.Nights,
		Adults:         input.Adults,
		Children:       input.Children,
		TotalAmount:    stay.TotalAmount - discount,
		DiscountAmount: discount,
	}
	if coupon != nil {
		booking.CouponCode = coupon.Code
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		if coupon != nil {
			if err := s.Coupons.Redeem(tx, coupon, booking.ID, stay.TotalAmount, discount); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	booking.Property = *property
	return booking, nil
}

// ConfirmBooking moves a pending booking to confirmed, earns loyalty points and
// sends the confirmation email. Email failure does not roll back the confirm;
// the EmailLog row keeps the failure for the retry dashboard.
func (s *BookingService) ConfirmBooking(bookingID uint) (*models.Booking, error) {
	var booking models.Booking

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Property").First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("booking_not_found")
			}
			return err
		}

		switch booking.Status {
		case models.BookingStatusConfirmed:
			return nil // idempotent
		case models.BookingStatusCancelled:
			return errors.New("booking_cancelled")
		case models.BookingStatusCompleted:
			return errors.New("booking_completed")
		}

		now := time.Now().UTC()
		if err := tx.Model(&booking).Updates(map[string]interface{}{
			"status":       models.BookingStatusConfirmed,
			"confirmed_at": now,
		}).Error; err != nil {
			return err
		}
		booking.Status = models.BookingStatusConfirmed
		booking.ConfirmedAt = &now

		if _, err := s.Loyalty.EarnForBooking(tx, &booking); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent("booking.confirmed", &booking)

	if booking.GuestEmail != "" {
		if _, mailErr := s.Email.SendBookingConfirmation(&booking); mailErr != nil {
			log.Printf("confirmation email failed for booking %d: %v", booking.ID, mailErr)
			return &booking, fmt.Errorf("email_send_failed: %w", mailErr)
		}
	}

	return &booking, nil
}

// CancelBooking moves a pending or confirmed booking to cancelled, freeing its
// calendar days.
func (s *BookingService) CancelBooking(bookingID uint) (*models.Booking, error) {
	var booking models.Booking

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Property").First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("booking_not_found")
			}
			return err
		}

		switch booking.Status {
		case models.BookingStatusCancelled:
			return nil // idempotent
		case models.BookingStatusCompleted:
			return errors.New("booking_completed")
		}

		now := time.Now().UTC()
		if err := tx.Model(&booking).Updates(map[string]interface{}{
			"status":       models.BookingStatusCancelled,
			"cancelled_at": now,
		}).Error; err != nil {
			return err
		}
		booking.Status = models.BookingStatusCancelled
		booking.CancelledAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent("booking.cancelled", &booking)
	return &booking, nil
}

// CompleteBooking marks a confirmed booking as completed after the stay ends.
// Completed bookings still occupy their historical calendar days.
func (s *BookingService) CompleteBooking(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("booking_not_found")
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if booking.Status == models.BookingStatusCompleted {
		return &booking, nil
	}
	if booking.Status != models.BookingStatusConfirmed {
		return nil, errors.New("booking_not_confirmed")
	}
	if err := s.DB.Model(&booking).Update("status", models.BookingStatusCompleted).Error; err != nil {
		return nil, fmt.Errorf("failed to complete booking: %w", err)
	}
	booking.Status = models.BookingStatusCompleted
	return &booking, nil
}

// GetBookingDetails loads one booking with its property and payments.
func (s *BookingService) GetBookingDetails(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("Property").Preload("Payments").First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("booking_not_found")
		}
		return nil, fmt.Errorf("failed to retrieve booking details: %w", err)
	}
	return &booking, nil
}

// GetAllWithRelations lists bookings for the admin table, newest first.
func (s *BookingService) GetAllWithRelations(status string) ([]models.Booking, error) {
	q := s.DB.Preload("Property").Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []models.Booking
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return list, nil
}

// ListForHost lists bookings across all of one host's properties.
func (s *BookingService) ListForHost(hostID uint) ([]models.Booking, error) {
	var list []models.Booking
	if err := s.DB.
		Joins("JOIN properties ON properties.id = bookings.property_id").
		Where("properties.host_id = ?", hostID).
		Preload("Property").
		Order("bookings.created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve host bookings: %w", err)
	}
	return list, nil
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking) {
	if !queue.Enabled() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	event := queue.BookingEvent{
		Type:          eventType,
		BookingID:     uint64(booking.ID),
		ReferenceCode: booking.ReferenceCode,
		PropertyID:    uint64(booking.PropertyID),
		PropertyName:  booking.Property.Name,
		GuestName:     booking.GuestName,
		CheckIn:       utils.FormatDate(booking.CheckIn),
		CheckOut:      utils.FormatDate(booking.CheckOut),
		Nights:        booking.Nights,
		TotalAmount:   booking.TotalAmount,
		Status:        booking.Status,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if err := queue.PublishBookingEvent(ctx, event); err != nil {
		// Best-effort: the booking transition already committed.
		log.Printf("queue publish failed for booking %d: %v", booking.ID, err)
	}
}
