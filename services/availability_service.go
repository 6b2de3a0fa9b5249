// services/availability_service.go
package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"villa-backend/models"
	"villa-backend/utils"

	"gorm.io/gorm"
)

// ErrInvalidMonth is returned when the requested month is outside 1-12.
var ErrInvalidMonth = errors.New("invalid_month")

// BookingSummary is the minimal projection of the booking occupying a day.
type BookingSummary struct {
	ID            uint    `json:"id"`
	ReferenceCode string  `json:"reference_code"`
	GuestName     string  `json:"guest_name"`
	CheckIn       string  `json:"check_in"`
	CheckOut      string  `json:"check_out"`
	TotalAmount   float64 `json:"total_amount"`
}

type DayAvailability struct {
	Date      string          `json:"date"`
	Available bool            `json:"available"`
	Booking   *BookingSummary `json:"booking,omitempty"`
	Revenue   float64         `json:"revenue,omitempty"`
}

type OccupancyStats struct {
	TotalDays        int     `json:"total_days"`
	BookedDays       int     `json:"booked_days"`
	AvailableDays    int     `json:"available_days"`
	OccupancyRate    float64 `json:"occupancy_rate"`
	TotalRevenue     float64 `json:"total_revenue"`
	AverageDailyRate float64 `json:"average_daily_rate"`
}

type MonthlyAvailability struct {
	PropertyID uint                       `json:"property_id"`
	Year       int                        `json:"year"`
	Month      int                        `json:"month"`
	Days       map[string]DayAvailability `json:"availability"`
	Occupancy  OccupancyStats             `json:"occupancy"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeMonthlyAvailability derives the day-by-day calendar and occupancy stats
// for one property and month from an already-fetched booking slice. The slice may
// be a superset; bookings for other properties and cancelled bookings are ignored.
//
// A day d is occupied when a qualifying booking satisfies checkIn <= d < checkOut.
// An occupied day carries the occupying booking's full TotalAmount as revenue, and
// a booking intersecting the month contributes its full TotalAmount to the month's
// totalRevenue exactly once, with no pro-rating across month boundaries. A booking
// spanning two months therefore shows up in both months' totals; callers summing
// months must account for that.
func ComputeMonthlyAvailability(propertyID uint, year, month int, bookings []models.Booking) (MonthlyAvailability, error) {
	if month < 1 || month > 12 {
		return MonthlyAvailability{}, ErrInvalidMonth
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	nextMonth := monthStart.AddDate(0, 1, 0)

	// Normalize once so day comparisons are date-only.
	relevant := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.PropertyID != propertyID || b.Status == models.BookingStatusCancelled {
			continue
		}
		b.CheckIn = utils.DateOnly(b.CheckIn)
		b.CheckOut = utils.DateOnly(b.CheckOut)
		relevant = append(relevant, b)
	}

	result := MonthlyAvailability{
		PropertyID: propertyID,
		Year:       year,
		Month:      month,
		Days:       make(map[string]DayAvailability),
	}

	booked := 0
	total := 0
	for day := monthStart; day.Before(nextMonth); day = day.AddDate(0, 0, 1) {
		total++
		entry := DayAvailability{Date: utils.FormatDate(day), Available: true}
		for i := range relevant {
			b := &relevant[i]
			if b.Occupies(day) {
				entry.Available = false
				entry.Revenue = b.TotalAmount
				entry.Booking = &BookingSummary{
					ID:            b.ID,
					ReferenceCode: b.ReferenceCode,
					GuestName:     b.GuestName,
					CheckIn:       utils.FormatDate(b.CheckIn),
					CheckOut:      utils.FormatDate(b.CheckOut),
					TotalAmount:   b.TotalAmount,
				}
				booked++
				break
			}
		}
		result.Days[entry.Date] = entry
	}

	// Full attribution: each booking whose occupied range intersects the month
	// counts once, however many of its nights fall inside.
	totalRevenue := 0.0
	for i := range relevant {
		b := &relevant[i]
		if b.CheckIn.Before(nextMonth) && b.CheckOut.After(monthStart) {
			totalRevenue += b.TotalAmount
		}
	}

	stats := OccupancyStats{
		TotalDays:     total,
		BookedDays:    booked,
		AvailableDays: total - booked,
		TotalRevenue:  totalRevenue,
	}
	if total > 0 {
		stats.OccupancyRate = round2(float64(booked) / float64(total) * 100)
	}
	if booked > 0 {
		stats.AverageDailyRate = round2(totalRevenue / float64(booked))
	}
	result.Occupancy = stats

	return result, nil
}

// AvailabilityService fetches bookings and runs the calendar computation.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// GetMonthlyAvailability loads the property's bookings overlapping the month and
// computes the calendar. The month window is a fetch hint; the computation
// re-filters, so over-fetching is harmless.
func (s *AvailabilityService) GetMonthlyAvailability(propertyID uint, year, month int) (MonthlyAvailability, error) {
	if month < 1 || month > 12 {
		return MonthlyAvailability{}, ErrInvalidMonth
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	nextMonth := monthStart.AddDate(0, 1, 0)

	var bookings []models.Booking
	if err := s.DB.
		Where("property_id = ? AND status <> ?", propertyID, models.BookingStatusCancelled).
		Where("check_in < ? AND check_out > ?", nextMonth, monthStart).
		Find(&bookings).Error; err != nil {
		return MonthlyAvailability{}, fmt.Errorf("failed to load bookings: %w", err)
	}

	return ComputeMonthlyAvailability(propertyID, year, month, bookings)
}
