package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestComputeStay(t *testing.T) {
	quote, err := ComputeStay(date("2024-05-10"), date("2024-05-13"), 3000)
	require.NoError(t, err)
	require.Equal(t, 3, quote.Nights)
	require.Equal(t, 9000.0, quote.TotalAmount)
}

func TestComputeStaySingleNight(t *testing.T) {
	quote, err := ComputeStay(date("2024-05-10"), date("2024-05-11"), 2500)
	require.NoError(t, err)
	require.Equal(t, 1, quote.Nights)
	require.Equal(t, 2500.0, quote.TotalAmount)
}

func TestComputeStayIgnoresTimeOfDay(t *testing.T) {
	// A late check-in and early check-out still count as full calendar nights.
	checkIn := time.Date(2024, 5, 10, 22, 30, 0, 0, time.UTC)
	checkOut := time.Date(2024, 5, 13, 6, 0, 0, 0, time.UTC)

	quote, err := ComputeStay(checkIn, checkOut, 3000)
	require.NoError(t, err)
	require.Equal(t, 3, quote.Nights)
	require.Equal(t, 9000.0, quote.TotalAmount)
}

func TestComputeStayInvalidRange(t *testing.T) {
	_, err := ComputeStay(date("2024-05-13"), date("2024-05-13"), 3000)
	require.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = ComputeStay(date("2024-05-13"), date("2024-05-10"), 3000)
	require.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestComputeStayZeroPrice(t *testing.T) {
	quote, err := ComputeStay(date("2024-05-10"), date("2024-05-12"), 0)
	require.NoError(t, err)
	require.Equal(t, 2, quote.Nights)
	require.Equal(t, 0.0, quote.TotalAmount)
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2024, 5, 10, 18, 45, 12, 999, time.UTC)
	out := DateOnly(in)
	require.Equal(t, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), out)
}

func TestParseAndFormatDate(t *testing.T) {
	d, err := ParseDate(" 2024-05-10 ")
	require.NoError(t, err)
	require.Equal(t, "2024-05-10", FormatDate(d))

	_, err = ParseDate("10/05/2024")
	require.Error(t, err)
}

func TestGenerateReferenceCode(t *testing.T) {
	code := GenerateReferenceCode()
	require.Len(t, code, 11)
	require.Equal(t, "LX-", code[:3])
	require.NotEqual(t, code, GenerateReferenceCode())
}
