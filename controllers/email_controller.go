package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"villa-backend/services"

	"github.com/gin-gonic/gin"
)

type EmailController struct {
	EmailSvc *services.EmailService
}

func NewEmailController(svc *services.EmailService) *EmailController {
	return &EmailController{EmailSvc: svc}
}

// GetEmailLogs lists delivery attempts for the diagnostics dashboard:
// GET /api/admin/email-logs?status=FAILED&limit=50
func (ctrl *EmailController) GetEmailLogs(c *gin.Context) {
	limit := 0
	if l := c.Query("limit"); l != "" {
		limit, _ = strconv.Atoi(l)
	}

	logs, err := ctrl.EmailSvc.List(strings.ToUpper(strings.TrimSpace(c.Query("status"))), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.internal", "message": err.Error()}})
		return
	}

	c.JSON(http.StatusOK, logs)
}

// GetEmailStats returns the counters the dashboard polls:
// GET /api/admin/email-logs/stats
func (ctrl *EmailController) GetEmailStats(c *gin.Context) {
	stats, err := ctrl.EmailSvc.Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.internal", "message": err.Error()}})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// RetryEmail re-sends the email behind a log row:
// POST /api/admin/email-logs/:id/retry
func (ctrl *EmailController) RetryEmail(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	entry, err := ctrl.EmailSvc.Retry(id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailLogNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "error.emailLogNotFound", "message": "email log not found"}})
		case strings.Contains(err.Error(), "booking_not_found"):
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "error.bookingNotFound", "message": "booking behind this email no longer exists"}})
		case strings.Contains(err.Error(), "email_send_failed"):
			c.JSON(http.StatusBadGateway, gin.H{
				"status": "warning",
				"data":   entry,
				"error":  gin.H{"code": "error.emailSendFailed", "message": "retry attempted but sending failed again"},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.internal", "message": err.Error()}})
		}
		return
	}

	c.JSON(http.StatusOK, entry)
}
