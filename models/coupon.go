package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	CouponTypePercent = "percent"
	CouponTypeFixed   = "fixed"
)

type Coupon struct {
	gorm.Model

	Code        string `gorm:"uniqueIndex;type:varchar(64)" json:"code"`
	Description string `gorm:"size:255" json:"description"`

	Type  string  `gorm:"size:16" json:"type"` // percent | fixed
	Value float64 `json:"value"`

	MinBookingAmount float64 `gorm:"column:min_booking_amount" json:"min_booking_amount"`
	MaxDiscount      float64 `gorm:"column:max_discount" json:"max_discount"` // 0 = uncapped, percent type only

	ValidFrom *time.Time `gorm:"column:valid_from" json:"valid_from,omitempty"`
	ValidTo   *time.Time `gorm:"column:valid_to" json:"valid_to,omitempty"`

	UsageLimit int  `gorm:"column:usage_limit;default:0" json:"usage_limit"` // 0 = unlimited
	UsedCount  int  `gorm:"column:used_count;default:0" json:"used_count"`
	Active     bool `gorm:"default:true" json:"active"`
}

// CouponRedemption records one applied coupon per booking for analytics.
type CouponRedemption struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	CouponID       uint    `gorm:"index;column:coupon_id" json:"coupon_id"`
	BookingID      uint    `gorm:"index;column:booking_id" json:"booking_id"`
	DiscountAmount float64 `gorm:"column:discount_amount" json:"discount_amount"`
	BookingAmount  float64 `gorm:"column:booking_amount" json:"booking_amount"`

	Coupon Coupon `gorm:"foreignKey:CouponID;references:ID" json:"-"`
}
