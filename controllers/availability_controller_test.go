package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func queryContext(t *testing.T, rawQuery string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/availability?"+rawQuery, nil)
	return c, w
}

func TestParseYearMonthExplicit(t *testing.T) {
	c, w := queryContext(t, "year=2024&month=5")

	year, month, ok := parseYearMonth(c)
	require.True(t, ok)
	require.Equal(t, 2024, year)
	require.Equal(t, 5, month)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestParseYearMonthDefaultsToCurrentMonth(t *testing.T) {
	c, _ := queryContext(t, "")

	year, month, ok := parseYearMonth(c)
	require.True(t, ok)

	now := time.Now().UTC()
	require.Equal(t, now.Year(), year)
	require.Equal(t, int(now.Month()), month)
}

func TestParseYearMonthRejectsNonNumericYear(t *testing.T) {
	c, w := queryContext(t, "year=twenty&month=5")

	_, _, ok := parseYearMonth(c)
	require.False(t, ok)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "error.invalidYear")
}

func TestParseYearMonthRejectsNonNumericMonth(t *testing.T) {
	c, w := queryContext(t, "year=2024&month=may")

	_, _, ok := parseYearMonth(c)
	require.False(t, ok)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "error.invalidMonth")
}
