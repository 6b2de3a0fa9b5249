// services/coupon_service.go
package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"villa-backend/models"

	"gorm.io/gorm"
)

var (
	ErrCouponNotFound      = errors.New("coupon_not_found")
	ErrCouponInactive      = errors.New("coupon_inactive")
	ErrCouponExpired       = errors.New("coupon_expired")
	ErrCouponUsageExceeded = errors.New("coupon_usage_exceeded")
	ErrCouponMinAmount     = errors.New("coupon_min_amount_not_met")
)

// ComputeCouponDiscount applies a coupon's rule to a booking amount. Percent
// coupons honor MaxDiscount when set; the discount never exceeds the amount.
func ComputeCouponDiscount(coupon *models.Coupon, amount float64) float64 {
	var discount float64
	switch coupon.Type {
	case models.CouponTypePercent:
		discount = amount * coupon.Value / 100
		if coupon.MaxDiscount > 0 && discount > coupon.MaxDiscount {
			discount = coupon.MaxDiscount
		}
	case models.CouponTypeFixed:
		discount = coupon.Value
	}
	if discount > amount {
		discount = amount
	}
	if discount < 0 {
		discount = 0
	}
	return math.Round(discount*100) / 100
}

type CouponService struct {
	DB *gorm.DB
}

func NewCouponService(db *gorm.DB) *CouponService {
	return &CouponService{DB: db}
}

// ValidateCoupon checks a code against a booking amount and returns the coupon
// and the discount it would grant.
func (s *CouponService) ValidateCoupon(code string, amount float64) (*models.Coupon, float64, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, 0, ErrCouponNotFound
	}

	var coupon models.Coupon
	if err := s.DB.Where("UPPER(code) = ?", code).First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrCouponNotFound
		}
		return nil, 0, fmt.Errorf("failed to load coupon: %w", err)
	}

	if !coupon.Active {
		return nil, 0, ErrCouponInactive
	}
	now := time.Now().UTC()
	if coupon.ValidFrom != nil && now.Before(*coupon.ValidFrom) {
		return nil, 0, ErrCouponExpired
	}
	if coupon.ValidTo != nil && now.After(*coupon.ValidTo) {
		return nil, 0, ErrCouponExpired
	}
	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return nil, 0, ErrCouponUsageExceeded
	}
	if amount < coupon.MinBookingAmount {
		return nil, 0, ErrCouponMinAmount
	}

	return &coupon, ComputeCouponDiscount(&coupon, amount), nil
}

// Redeem records a redemption and bumps the coupon's usage counter inside the
// caller's transaction.
func (s *CouponService) Redeem(tx *gorm.DB, coupon *models.Coupon, bookingID uint, bookingAmount, discount float64) error {
	redemption := models.CouponRedemption{
		CouponID:       coupon.ID,
		BookingID:      bookingID,
		DiscountAmount: discount,
		BookingAmount:  bookingAmount,
	}
	if err := tx.Create(&redemption).Error; err != nil {
		return fmt.Errorf("failed to record redemption: %w", err)
	}
	if err := tx.Model(&models.Coupon{}).Where("id = ?", coupon.ID).
		UpdateColumn("used_count", gorm.Expr("used_count + 1")).Error; err != nil {
		return fmt.Errorf("failed to bump coupon usage: %w", err)
	}
	return nil
}

// CouponAnalytics is one row of the admin coupon dashboard.
type CouponAnalytics struct {
	CouponID      uint    `json:"coupon_id"`
	Code          string  `json:"code"`
	Type          string  `json:"type"`
	Active        bool    `json:"active"`
	Redemptions   int64   `json:"redemptions"`
	TotalDiscount float64 `json:"total_discount"`
	GrossBookings float64 `json:"gross_bookings"`
}

// Analytics aggregates redemption counts and discount totals per coupon. The
// aggregation runs in the database rather than in the caller.
func (s *CouponService) Analytics() ([]CouponAnalytics, error) {
	var rows []CouponAnalytics
	err := s.DB.
		Table("coupons").
		Select(`coupons.id AS coupon_id,
			coupons.code,
			coupons.type,
			coupons.active,
			COUNT(coupon_redemptions.id) AS redemptions,
			COALESCE(SUM(coupon_redemptions.discount_amount), 0) AS total_discount,
			COALESCE(SUM(coupon_redemptions.booking_amount), 0) AS gross_bookings`).
		Joins("LEFT JOIN coupon_redemptions ON coupon_redemptions.coupon_id = coupons.id").
		Where("coupons.deleted_at IS NULL").
		Group("coupons.id, coupons.code, coupons.type, coupons.active").
		Order("redemptions DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate coupon analytics: %w", err)
	}
	return rows, nil
}
