package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"villa-backend/models"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestComputeMonthlyAvailabilitySingleBooking(t *testing.T) {
	bookings := []models.Booking{
		{
			ID:          1,
			PropertyID:  7,
			Status:      models.BookingStatusConfirmed,
			GuestName:   "Anna",
			CheckIn:     day("2024-05-10"),
			CheckOut:    day("2024-05-13"),
			TotalAmount: 9000,
		},
	}

	result, err := ComputeMonthlyAvailability(7, 2024, 5, bookings)
	require.NoError(t, err)

	require.Equal(t, uint(7), result.PropertyID)
	require.Len(t, result.Days, 31)

	// Check-out day is exclusive: 10th, 11th, 12th occupied; 13th free.
	for _, d := range []string{"2024-05-10", "2024-05-11", "2024-05-12"} {
		entry, ok := result.Days[d]
		require.True(t, ok, d)
		require.False(t, entry.Available, d)
		require.NotNil(t, entry.Booking, d)
		require.Equal(t, uint(1), entry.Booking.ID)
		require.Equal(t, 9000.0, entry.Revenue)
	}
	free := result.Days["2024-05-13"]
	require.True(t, free.Available)
	require.Nil(t, free.Booking)

	stats := result.Occupancy
	require.Equal(t, 31, stats.TotalDays)
	require.Equal(t, 3, stats.BookedDays)
	require.Equal(t, 28, stats.AvailableDays)
	require.Equal(t, stats.TotalDays, stats.BookedDays+stats.AvailableDays)
	require.Equal(t, 9.68, stats.OccupancyRate)
	require.Equal(t, 9000.0, stats.TotalRevenue)
	require.Equal(t, 3000.0, stats.AverageDailyRate)
}

func TestComputeMonthlyAvailabilityMonthBoundary(t *testing.T) {
	// A stay spanning May into June occupies days in both months and contributes
	// its full amount to each month's revenue total.
	bookings := []models.Booking{
		{
			ID:          2,
			PropertyID:  7,
			Status:      models.BookingStatusConfirmed,
			CheckIn:     day("2024-05-28"),
			CheckOut:    day("2024-06-03"),
			TotalAmount: 9000,
		},
	}

	may, err := ComputeMonthlyAvailability(7, 2024, 5, bookings)
	require.NoError(t, err)
	require.Equal(t, 4, may.Occupancy.BookedDays) // 28, 29, 30, 31
	require.Equal(t, 9000.0, may.Occupancy.TotalRevenue)
	require.False(t, may.Days["2024-05-28"].Available)
	require.False(t, may.Days["2024-05-31"].Available)

	june, err := ComputeMonthlyAvailability(7, 2024, 6, bookings)
	require.NoError(t, err)
	require.Equal(t, 2, june.Occupancy.BookedDays) // 1, 2
	require.Equal(t, 9000.0, june.Occupancy.TotalRevenue)
	require.False(t, june.Days["2024-06-02"].Available)
	require.True(t, june.Days["2024-06-03"].Available)
}

func TestComputeMonthlyAvailabilityFullyOccupiedMonth(t *testing.T) {
	// A stay covering every day of April leaves nothing available and pushes the
	// occupancy rate to exactly 100.
	bookings := []models.Booking{
		{
			ID:          8,
			PropertyID:  7,
			Status:      models.BookingStatusConfirmed,
			CheckIn:     day("2024-04-01"),
			CheckOut:    day("2024-05-01"),
			TotalAmount: 90000,
		},
	}

	result, err := ComputeMonthlyAvailability(7, 2024, 4, bookings)
	require.NoError(t, err)

	stats := result.Occupancy
	require.Equal(t, 30, stats.TotalDays)
	require.Equal(t, 30, stats.BookedDays)
	require.Equal(t, 0, stats.AvailableDays)
	require.Equal(t, 100.0, stats.OccupancyRate)
	require.Equal(t, 90000.0, stats.TotalRevenue)
	require.Equal(t, 3000.0, stats.AverageDailyRate)

	for _, entry := range result.Days {
		require.False(t, entry.Available, entry.Date)
		require.NotNil(t, entry.Booking, entry.Date)
	}
}

func TestComputeMonthlyAvailabilityIgnoresCancelledAndOtherProperties(t *testing.T) {
	bookings := []models.Booking{
		{
			ID:          3,
			PropertyID:  7,
			Status:      models.BookingStatusCancelled,
			CheckIn:     day("2024-05-10"),
			CheckOut:    day("2024-05-13"),
			TotalAmount: 9000,
		},
		{
			ID:          4,
			PropertyID:  8,
			Status:      models.BookingStatusConfirmed,
			CheckIn:     day("2024-05-10"),
			CheckOut:    day("2024-05-13"),
			TotalAmount: 9000,
		},
	}

	result, err := ComputeMonthlyAvailability(7, 2024, 5, bookings)
	require.NoError(t, err)
	require.Equal(t, 0, result.Occupancy.BookedDays)
	require.Equal(t, 31, result.Occupancy.AvailableDays)
	require.Equal(t, 0.0, result.Occupancy.TotalRevenue)
	require.Equal(t, 0.0, result.Occupancy.OccupancyRate)
	require.Equal(t, 0.0, result.Occupancy.AverageDailyRate)
}

func TestComputeMonthlyAvailabilityEmptyMonth(t *testing.T) {
	result, err := ComputeMonthlyAvailability(99, 2024, 2, nil)
	require.NoError(t, err)
	require.Equal(t, 29, result.Occupancy.TotalDays) // leap year
	require.Equal(t, 29, result.Occupancy.AvailableDays)
	for _, entry := range result.Days {
		require.True(t, entry.Available)
	}
}

func TestComputeMonthlyAvailabilityFirstBookingWinsDay(t *testing.T) {
	// Two bookings claiming the same day: the first in the slice keeps it, and
	// each still counts once in revenue.
	bookings := []models.Booking{
		{
			ID:          5,
			PropertyID:  7,
			Status:      models.BookingStatusConfirmed,
			CheckIn:     day("2024-05-10"),
			CheckOut:    day("2024-05-12"),
			TotalAmount: 6000,
		},
		{
			ID:          6,
			PropertyID:  7,
			Status:      models.BookingStatusPending,
			CheckIn:     day("2024-05-11"),
			CheckOut:    day("2024-05-14"),
			TotalAmount: 9000,
		},
	}

	result, err := ComputeMonthlyAvailability(7, 2024, 5, bookings)
	require.NoError(t, err)

	require.Equal(t, uint(5), result.Days["2024-05-11"].Booking.ID)
	require.Equal(t, uint(6), result.Days["2024-05-12"].Booking.ID)
	require.Equal(t, 4, result.Occupancy.BookedDays) // 10, 11, 12, 13
	require.Equal(t, 15000.0, result.Occupancy.TotalRevenue)
}

func TestComputeMonthlyAvailabilityInvalidMonth(t *testing.T) {
	_, err := ComputeMonthlyAvailability(7, 2024, 0, nil)
	require.ErrorIs(t, err, ErrInvalidMonth)

	_, err = ComputeMonthlyAvailability(7, 2024, 13, nil)
	require.ErrorIs(t, err, ErrInvalidMonth)
}

func TestComputeMonthlyAvailabilityNormalizesTimestamps(t *testing.T) {
	// Bookings stored with a time-of-day component still map onto calendar days.
	bookings := []models.Booking{
		{
			ID:          7,
			PropertyID:  7,
			Status:      models.BookingStatusConfirmed,
			CheckIn:     time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC),
			CheckOut:    time.Date(2024, 5, 12, 11, 0, 0, 0, time.UTC),
			TotalAmount: 6000,
		},
	}

	result, err := ComputeMonthlyAvailability(7, 2024, 5, bookings)
	require.NoError(t, err)
	require.False(t, result.Days["2024-05-10"].Available)
	require.False(t, result.Days["2024-05-11"].Available)
	require.True(t, result.Days["2024-05-12"].Available)
}
