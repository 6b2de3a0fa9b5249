package models

import (
	"time"

	"gorm.io/gorm"
)

// LoyaltyRule defines how bookings convert to points: a booking of amount A earns
// floor(A / 100) * PointsPer100 * Multiplier points when A >= MinBookingAmount.
// The active rule with the highest satisfied MinBookingAmount wins.
type LoyaltyRule struct {
	gorm.Model

	Name        string `gorm:"size:255" json:"name"`
	Slug        string `gorm:"uniqueIndex;type:varchar(100)" json:"slug"`
	Description string `gorm:"size:255" json:"description"`

	PointsPer100     int     `gorm:"column:points_per_100;default:1" json:"points_per_100"`
	Multiplier       float64 `gorm:"default:1" json:"multiplier"`
	MinBookingAmount float64 `gorm:"column:min_booking_amount;default:0" json:"min_booking_amount"`

	Active bool `gorm:"default:true" json:"active"`
}

const (
	LoyaltyKindEarn   = "earn"
	LoyaltyKindRedeem = "redeem"
)

type LoyaltyTransaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	GuestEmail string `gorm:"index;size:150;column:guest_email" json:"guest_email"`
	BookingID  *uint  `gorm:"index;column:booking_id" json:"booking_id,omitempty"`
	RuleID     *uint  `gorm:"column:rule_id" json:"rule_id,omitempty"`
	Kind       string `gorm:"size:16" json:"kind"` // earn | redeem
	Points     int    `json:"points"`
}
