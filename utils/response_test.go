package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestJSONSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	JSONSuccess(c, http.StatusOK, gin.H{"nights": 3})

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"success":true,"data":{"nights":3}}`, w.Body.String())
}

func TestJSONErrorCode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	JSONErrorCode(c, http.StatusNotFound, "error.bookingNotFound", "booking not found")

	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"error":{"code":"error.bookingNotFound","message":"booking not found"}}`, w.Body.String())
}
