// Package queue defines message payloads exchanged over the message broker.
package queue

import "os"

const bookingQueueName = "booking.events"

// BookingEvent is published when a booking is confirmed or cancelled. It carries
// enough information for downstream consumers to log, notify, or feed analytics
// without querying the primary database.
type BookingEvent struct {
	Type          string  `json:"type"` // booking.confirmed | booking.cancelled
	BookingID     uint64  `json:"booking_id"`
	ReferenceCode string  `json:"reference_code"`
	PropertyID    uint64  `json:"property_id"`
	PropertyName  string  `json:"property_name"`
	GuestName     string  `json:"guest_name"`
	CheckIn       string  `json:"check_in"`
	CheckOut      string  `json:"check_out"`
	Nights        int     `json:"nights"`
	TotalAmount   float64 `json:"total_amount"`
	Status        string  `json:"status"`
	OccurredAt    string  `json:"occurred_at"`
}

func brokerURL() string {
	url := os.Getenv("RABBITMQ_URL")
	if url == "" {
		url = os.Getenv("AMQP_URL")
	}
	return url
}

// Enabled reports whether a broker is configured. Publishing and consuming are
// both skipped when it is not.
func Enabled() bool {
	return brokerURL() != ""
}
