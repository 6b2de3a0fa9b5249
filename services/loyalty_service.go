// services/loyalty_service.go
package services

import (
	"fmt"
	"math"

	"villa-backend/models"

	"gorm.io/gorm"
)

// PointsForAmount picks the best matching rule for a booking amount and returns
// the points it grants. Rules must be active; among rules whose MinBookingAmount
// is satisfied, the one with the highest threshold wins. Returns nil when no
// rule matches.
func PointsForAmount(rules []models.LoyaltyRule, amount float64) (int, *models.LoyaltyRule) {
	var best *models.LoyaltyRule
	for i := range rules {
		r := &rules[i]
		if !r.Active || amount < r.MinBookingAmount {
			continue
		}
		if best == nil || r.MinBookingAmount > best.MinBookingAmount {
			best = r
		}
	}
	if best == nil {
		return 0, nil
	}
	points := int(math.Floor(amount/100) * float64(best.PointsPer100) * best.Multiplier)
	if points < 0 {
		points = 0
	}
	return points, best
}

type LoyaltyService struct {
	DB *gorm.DB
}

func NewLoyaltyService(db *gorm.DB) *LoyaltyService {
	return &LoyaltyService{DB: db}
}

func (s *LoyaltyService) ActiveRules() ([]models.LoyaltyRule, error) {
	var rules []models.LoyaltyRule
	if err := s.DB.Where("active = ?", true).Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("failed to load loyalty rules: %w", err)
	}
	return rules, nil
}

// Preview computes the points a booking amount would earn without recording anything.
func (s *LoyaltyService) Preview(amount float64) (int, *models.LoyaltyRule, error) {
	rules, err := s.ActiveRules()
	if err != nil {
		return 0, nil, err
	}
	points, rule := PointsForAmount(rules, amount)
	return points, rule, nil
}

// EarnForBooking records an earn transaction for a confirmed booking inside the
// caller's transaction. Bookings without a guest email earn nothing.
func (s *LoyaltyService) EarnForBooking(tx *gorm.DB, booking *models.Booking) (int, error) {
	if booking.GuestEmail == "" {
		return 0, nil
	}
	var rules []models.LoyaltyRule
	if err := tx.Where("active = ?", true).Find(&rules).Error; err != nil {
		return 0, fmt.Errorf("failed to load loyalty rules: %w", err)
	}
	points, rule := PointsForAmount(rules, booking.TotalAmount)
	if points == 0 {
		return 0, nil
	}
	bookingID := booking.ID
	ruleID := rule.ID
	entry := models.LoyaltyTransaction{
		GuestEmail: booking.GuestEmail,
		BookingID:  &bookingID,
		RuleID:     &ruleID,
		Kind:       models.LoyaltyKindEarn,
		Points:     points,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return 0, fmt.Errorf("failed to record loyalty earn: %w", err)
	}
	return points, nil
}

// BalanceFor sums a guest's earned minus redeemed points.
func (s *LoyaltyService) BalanceFor(guestEmail string) (int, error) {
	type row struct{ Balance int }
	var r row
	err := s.DB.
		Table("loyalty_transactions").
		Select(`COALESCE(SUM(CASE WHEN kind = ? THEN points ELSE -points END), 0) AS balance`, models.LoyaltyKindEarn).
		Where("guest_email = ?", guestEmail).
		Scan(&r).Error
	if err != nil {
		return 0, fmt.Errorf("failed to compute loyalty balance: %w", err)
	}
	return r.Balance, nil
}
