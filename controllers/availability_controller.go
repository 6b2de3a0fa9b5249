package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"villa-backend/services"
	"villa-backend/utils"

	"github.com/gin-gonic/gin"
)

type AvailabilityController struct {
	AvailabilitySvc *services.AvailabilityService
}

func NewAvailabilityController(svc *services.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{AvailabilitySvc: svc}
}

// parseYearMonth reads the optional year/month query params, defaulting to the
// current UTC month. Writes a 400 response and reports false on bad input.
func parseYearMonth(c *gin.Context) (int, int, bool) {
	now := time.Now().UTC()
	year := now.Year()
	month := int(now.Month())

	if y := c.Query("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidYear", "year must be an integer")
			return 0, 0, false
		}
		year = parsed
	}
	if m := c.Query("month"); m != "" {
		parsed, err := strconv.Atoi(m)
		if err != nil {
			utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidMonth", "month must be an integer")
			return 0, 0, false
		}
		month = parsed
	}
	return year, month, true
}

func renderMonthlyAvailability(c *gin.Context, svc *services.AvailabilityService, propertyID uint, year, month int) {
	result, err := svc.GetMonthlyAvailability(propertyID, year, month)
	if err != nil {
		if errors.Is(err, services.ErrInvalidMonth) {
			utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidMonth", "month must be between 1 and 12")
			return
		}
		utils.JSONErrorCode(c, http.StatusInternalServerError, "error.internal", err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMonthlyAvailability answers the admin calendar and the booking form:
// GET /api/properties/:id/availability?year=2024&month=5
// Missing year/month default to the current month.
func (ctrl *AvailabilityController) GetMonthlyAvailability(c *gin.Context) {
	propertyID, ok := parseIDParam(c)
	if !ok {
		return
	}

	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}

	renderMonthlyAvailability(c, ctrl.AvailabilitySvc, propertyID, year, month)
}
