package utils

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

//
// ===========================================================
//  ENV UTILITIES
// ===========================================================
//

// EnvOrDefault returns ENV value or fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

//
// ===========================================================
//  STAY PRICING
// ===========================================================
//

// ErrInvalidDateRange is returned when check-out is not after check-in.
var ErrInvalidDateRange = errors.New("invalid_date_range")

const dateLayout = "2006-01-02"

// StayQuote is the price for a prospective or confirmed stay.
type StayQuote struct {
	Nights      int     `json:"nights"`
	TotalAmount float64 `json:"total_amount"`
}

// DateOnly truncates a timestamp to its calendar day in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a "2006-01-02" calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders a calendar date as "2006-01-02".
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// ComputeStay prices a stay: nights is the day difference between check-in and
// check-out (check-out exclusive), total is nights times the nightly base rate.
// Guest count does not affect the rental price. Fails with ErrInvalidDateRange
// when check-out is not after check-in.
func ComputeStay(checkIn, checkOut time.Time, basePricePerNight float64) (StayQuote, error) {
	ci := DateOnly(checkIn)
	co := DateOnly(checkOut)
	if !co.After(ci) {
		return StayQuote{}, ErrInvalidDateRange
	}

	nights := int(math.Ceil(co.Sub(ci).Hours() / 24))
	return StayQuote{
		Nights:      nights,
		TotalAmount: float64(nights) * basePricePerNight,
	}, nil
}

//
// ===========================================================
//  REFERENCE CODES
// ===========================================================
//

// GenerateReferenceCode returns a short booking reference like "LX-4F9A2C1B".
func GenerateReferenceCode() string {
	id := uuid.New().String()
	return "LX-" + strings.ToUpper(strings.ReplaceAll(id, "-", "")[:8])
}
