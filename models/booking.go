package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking statuses. Only cancelled bookings free up calendar days.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	PropertyID    uint   `gorm:"index;column:property_id" json:"property_id"`
	ReferenceCode string `gorm:"column:reference_code;uniqueIndex;size:64" json:"reference_code"`
	Status        string `gorm:"column:status;size:32;default:pending" json:"status"`

	GuestName  string `gorm:"column:guest_name;size:255" json:"guest_name"`
	GuestEmail string `gorm:"column:guest_email;size:150" json:"guest_email"`
	GuestPhone string `gorm:"column:guest_phone;size:50" json:"guest_phone"`

	// Stay occupies [CheckIn, CheckOut); the check-out day itself is free.
	CheckIn  time.Time `gorm:"column:check_in" json:"check_in"`
	CheckOut time.Time `gorm:"column:check_out" json:"check_out"`
	Nights   int       `gorm:"column:nights" json:"nights"`

	Adults   int `gorm:"column:adults;default:1" json:"adults"`
	Children int `gorm:"column:children;default:0" json:"children"`

	TotalAmount    float64 `gorm:"column:total_amount" json:"total_amount"`
	DiscountAmount float64 `gorm:"column:discount_amount" json:"discount_amount"`
	CouponCode     string  `gorm:"column:coupon_code;size:64" json:"coupon_code,omitempty"`

	ConfirmedAt *time.Time `gorm:"column:confirmed_at" json:"confirmed_at,omitempty"`
	CancelledAt *time.Time `gorm:"column:cancelled_at" json:"cancelled_at,omitempty"`

	Property Property  `gorm:"foreignKey:PropertyID;references:ID" json:"property,omitempty"`
	Payments []Payment `gorm:"foreignKey:BookingID" json:"payments,omitempty"`
}

// Occupies reports whether the booking claims the given calendar day.
func (b *Booking) Occupies(day time.Time) bool {
	if b.Status == BookingStatusCancelled {
		return false
	}
	return !day.Before(b.CheckIn) && day.Before(b.CheckOut)
}
