// controllers/booking_controller.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"villa-backend/config"
	"villa-backend/models"
	"villa-backend/services"
	"villa-backend/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type QuoteRequest struct {
	PropertyID uint   `json:"property_id" binding:"required"`
	CheckIn    string `json:"check_in" binding:"required"`
	CheckOut   string `json:"check_out" binding:"required"`
	CouponCode string `json:"coupon_code"`
}

type CreateBookingRequest struct {
	PropertyID uint   `json:"property_id" binding:"required"`
	GuestName  string `json:"guest_name" binding:"required"`
	GuestEmail string `json:"guest_email"`
	GuestPhone string `json:"guest_phone"`
	CheckIn    string `json:"check_in" binding:"required"`
	CheckOut   string `json:"check_out" binding:"required"`
	Adults     int    `json:"adults"`
	Children   int    `json:"children"`
	CouponCode string `json:"coupon_code"`
}

type RecordPaymentRequest struct {
	Amount         float64 `json:"amount" binding:"required"`
	Method         string  `json:"method" binding:"required"`
	Status         string  `json:"status"`
	TransactionRef string  `json:"transaction_ref"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id64 == 0 {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidId", "invalid id parameter")
		return 0, false
	}
	return uint(id64), true
}

// couponErrorResponse maps coupon validation sentinels onto HTTP answers.
func couponErrorResponse(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, services.ErrCouponNotFound):
		utils.JSONErrorCode(c, http.StatusNotFound, "error.couponNotFound", "coupon code not found")
	case errors.Is(err, services.ErrCouponInactive):
		utils.JSONErrorCode(c, http.StatusConflict, "error.couponInactive", "coupon is not active")
	case errors.Is(err, services.ErrCouponExpired):
		utils.JSONErrorCode(c, http.StatusConflict, "error.couponExpired", "coupon is outside its validity window")
	case errors.Is(err, services.ErrCouponUsageExceeded):
		utils.JSONErrorCode(c, http.StatusConflict, "error.couponUsageExceeded", "coupon usage limit reached")
	case errors.Is(err, services.ErrCouponMinAmount):
		utils.JSONErrorCode(c, http.StatusConflict, "error.couponMinAmount", "booking amount below coupon minimum")
	default:
		return false
	}
	return true
}

// ---------------------------
// 1) Quote (POST /api/bookings/quote)
// ---------------------------

func (ctrl *BookingController) QuoteBooking(c *gin.Context) {
	var payload QuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "error.invalidPayload", "message": "property_id, check_in and check_out are required", "details": err.Error()},
		})
		return
	}

	quote, err := ctrl.BookingSvc.QuoteStay(payload.PropertyID, payload.CheckIn, payload.CheckOut, payload.CouponCode)
	if err != nil {
		if couponErrorResponse(c, err) {
			return
		}
		switch {
		case errors.Is(err, utils.ErrInvalidDateRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidDateRange", "message": "check-out must be after check-in"}})
		case strings.Contains(err.Error(), "property_not_found"):
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "error.propertyNotFound", "message": "property not found"}})
		case strings.Contains(err.Error(), "property_inactive"):
			c.JSON(http.StatusConflict, gin.H{"error": gin.H{"code": "error.propertyInactive", "message": "property is not accepting bookings"}})
		case strings.Contains(err.Error(), "invalid check_in") || strings.Contains(err.Error(), "invalid check_out"):
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidDate", "message": "dates must be formatted YYYY-MM-DD"}})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.internal", "message": err.Error()}})
		}
		return
	}

	utils.JSONSuccess(c, http.StatusOK, quote)
}

// ---------------------------
// 2) Create (POST /api/bookings)
// ---------------------------

func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var payload CreateBookingRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "error.invalidPayload", "message": "missing required booking fields", "details": err.Error()},
		})
		return
	}

	booking, err := ctrl.BookingSvc.CreateBooking(services.CreateBookingInput{
		PropertyID: payload.PropertyID,
		GuestName:  payload.GuestName,
		GuestEmail: payload.GuestEmail,
		GuestPhone: payload.GuestPhone,
		CheckIn:    payload.CheckIn,
		CheckOut:   payload.CheckOut,
		Adults:     payload.Adults,
		Children:   payload.Children,
		CouponCode: payload.CouponCode,
	})
	if err != nil {
		log.Printf("CreateBooking error: %v", err)
		if couponErrorResponse(c, err) {
			return
		}
		switch {
		case errors.Is(err, utils.ErrInvalidDateRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidDateRange", "message": "check-out must be after check-in"}})
		case strings.Contains(err.Error(), "property_not_found"):
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "error.propertyNotFound", "message": "property not found"}})
		case strings.Contains(err.Error(), "property_inactive"):
			c.JSON(http.StatusConflict, gin.H{"error": gin.H{"code": "error.propertyInactive", "message": "property is not accepting bookings"}})
		case strings.Contains(err.Error(), "validation:"):
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.validation", "message": err.Error()}})
		case strings.Contains(err.Error(), "invalid check_in") || strings.Contains(err.Error(), "invalid check_out"):
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "error.invalidDate", "message": "dates must be formatted YYYY-MM-DD"}})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.internal", "message": err.Error()}})
		}
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// ---------------------------
// 3) List (GET /api/admin/bookings)
// ---------------------------

func (ctrl *BookingController) GetBookings(c *gin.Context) {
	list, err := ctrl.BookingSvc.GetAllWithRelations(strings.TrimSpace(c.Query("status")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.internal", "message": err.Error()}})
		return
	}
	c.JSON(http.StatusOK, list)
}

// ---------------------------
// 4) Details (GET /api/admin/bookings/:id)
// ---------------------------

func (ctrl *BookingController) GetBookingDetails(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	booking, err := ctrl.BookingSvc.GetBookingDetails(id)
	if err != nil {
		if strings.Contains(err.Error(), "booking_not_found") {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "error.bookingNotFound", "message": "booking not found"}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.internal", "message": err.Error()}})
		return
	}

	c.JSON(http.StatusOK, booking)
}

// transitionError maps lifecycle sentinels onto HTTP answers shared by
// confirm/cancel/complete.
func transitionError(c *gin.Context, err error) {
	switch {
	case strings.Contains(err.Error(), "booking_not_found"):
		utils.JSONErrorCode(c, http.StatusNotFound, "error.bookingNotFound", "booking not found")
	case strings.Contains(err.Error(), "booking_cancelled"):
		utils.JSONErrorCode(c, http.StatusConflict, "error.bookingCancelled", "booking was cancelled")
	case strings.Contains(err.Error(), "booking_completed"):
		utils.JSONErrorCode(c, http.StatusConflict, "error.bookingCompleted", "booking already completed")
	case strings.Contains(err.Error(), "booking_not_confirmed"):
		utils.JSONErrorCode(c, http.StatusConflict, "error.bookingNotConfirmed", "only confirmed bookings can be completed")
	default:
		utils.JSONErrorCode(c, http.StatusInternalServerError, "error.internal", err.Error())
	}
}

// ---------------------------
// 5) Confirm (POST /api/admin/bookings/:id/confirm)
// ---------------------------

func (ctrl *BookingController) ConfirmBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	booking, err := ctrl.BookingSvc.ConfirmBooking(id)
	if err != nil {
		if strings.Contains(err.Error(), "email_send_failed") {
			// confirmed, but the email needs a retry from the delivery dashboard
			c.JSON(http.StatusPartialContent, gin.H{
				"status": "warning",
				"data":   booking,
				"error": gin.H{
					"code":    "error.emailSendFailed",
					"message": "booking confirmed but the confirmation email failed to send",
				},
			})
			return
		}
		transitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// ---------------------------
// 6) Cancel (POST /api/admin/bookings/:id/cancel)
// ---------------------------

func (ctrl *BookingController) CancelBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	booking, err := ctrl.BookingSvc.CancelBooking(id)
	if err != nil {
		transitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// ---------------------------
// 7) Complete (POST /api/admin/bookings/:id/complete)
// ---------------------------

func (ctrl *BookingController) CompleteBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	booking, err := ctrl.BookingSvc.CompleteBooking(id)
	if err != nil {
		transitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// ---------------------------
// 8) Record payment (POST /api/admin/bookings/:id/payments)
// ---------------------------

func (ctrl *BookingController) RecordPayment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload RecordPaymentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "error.invalidPayload", "message": "amount and method are required", "details": err.Error()},
		})
		return
	}

	booking, err := ctrl.BookingSvc.GetBookingDetails(id)
	if err != nil {
		transitionError(c, err)
		return
	}

	status := payload.Status
	if status == "" {
		status = models.PaymentStatusPaid
	}

	payment := models.Payment{
		BookingID:      booking.ID,
		Amount:         payload.Amount,
		Method:         payload.Method,
		Status:         status,
		TransactionRef: payload.TransactionRef,
	}
	if err := config.DB.Create(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.internal", "message": err.Error()}})
		return
	}

	// A paid payment confirms a pending booking.
	if status == models.PaymentStatusPaid && booking.Status == models.BookingStatusPending {
		if _, err := ctrl.BookingSvc.ConfirmBooking(booking.ID); err != nil &&
			!strings.Contains(err.Error(), "email_send_failed") {
			log.Printf("RecordPayment: confirm after payment failed for booking %d: %v", booking.ID, err)
		}
	}

	c.JSON(http.StatusCreated, payment)
}

// ---------------------------
// 9) List payments (GET /api/admin/bookings/:id/payments)
// ---------------------------

func (ctrl *BookingController) GetBookingPayments(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payments []models.Payment
	if err := config.DB.Where("booking_id = ?", id).Order("created_at DESC").Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.internal", "message": err.Error()}})
		return
	}

	c.JSON(http.StatusOK, payments)
}
