package models

import (
	"gorm.io/gorm"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

type Payment struct {
	gorm.Model

	BookingID      uint    `gorm:"index;column:booking_id" json:"booking_id"`
	Amount         float64 `gorm:"column:amount" json:"amount"`
	Method         string  `gorm:"size:64" json:"method"` // e.g. "card", "bank_transfer"
	Status         string  `gorm:"size:32;default:pending" json:"status"`
	TransactionRef string  `gorm:"column:transaction_ref;size:128" json:"transaction_ref,omitempty"`

	Booking Booking `gorm:"foreignKey:BookingID;references:ID" json:"-"`
}
