package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"villa-backend/config"
	"villa-backend/middleware"
	"villa-backend/models"
	"villa-backend/services"
	"villa-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// ----------------------------------------------------
// Admin-side host management
// ----------------------------------------------------

type createHostPayload struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required"`
}

func GetHosts(c *gin.Context) {
	var hosts []models.Host
	config.DB.Order("created_at DESC").Find(&hosts)
	c.JSON(http.StatusOK, hosts)
}

func CreateHost(c *gin.Context) {
	var payload createHostPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to hash password"})
		return
	}

	host := models.Host{
		FullName: strings.TrimSpace(payload.FullName),
		Email:    strings.ToLower(strings.TrimSpace(payload.Email)),
		Phone:    strings.TrimSpace(payload.Phone),
		Password: string(hash),
		Status:   "active",
	}

	if result := config.DB.Create(&host); result.Error != nil {
		if isDuplicateEntryErr(result.Error) {
			c.JSON(http.StatusConflict, gin.H{
				"status":  "error",
				"message": fmt.Sprintf("Host email '%s' already exists.", host.Email),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Database error",
			"details": result.Error.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, host)
}

func DeleteHost(c *gin.Context) {
	id := c.Param("id")

	result := config.DB.Where("id = ?", id).Delete(&models.Host{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to delete host."})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Host with ID %s not found.", id)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Host deleted successfully"})
}

// ----------------------------------------------------
// Host portal
// ----------------------------------------------------

type HostController struct {
	BookingSvc      *services.BookingService
	AvailabilitySvc *services.AvailabilityService
}

func NewHostController(bookingSvc *services.BookingService, availabilitySvc *services.AvailabilityService) *HostController {
	return &HostController{BookingSvc: bookingSvc, AvailabilitySvc: availabilitySvc}
}

// HostLogin authenticates a host and returns a portal JWT.
func (ctrl *HostController) HostLogin(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(payload.Username))
	if email == "" || payload.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
		return
	}

	var host models.Host
	if err := config.DB.Where("email = ?", email).First(&host).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if host.Status != "active" {
		c.JSON(http.StatusForbidden, gin.H{"error": "host account is disabled"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(host.Password), []byte(payload.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := utils.GenerateAuthToken(host.ID, utils.RoleHost, host.FullName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"host": gin.H{
			"id":        host.ID,
			"full_name": host.FullName,
			"email":     host.Email,
		},
	})
}

// GetMyProperties lists the authenticated host's villas.
func (ctrl *HostController) GetMyProperties(c *gin.Context) {
	hostID, ok := middleware.AuthUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"code": "error.unauthorized", "message": "missing auth context"}})
		return
	}

	var properties []models.Property
	if err := config.DB.Where("host_id = ?", hostID).Order("created_at DESC").Find(&properties).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.internal", "message": err.Error()}})
		return
	}

	c.JSON(http.StatusOK, properties)
}

// GetMyBookings lists bookings across the host's properties.
func (ctrl *HostController) GetMyBookings(c *gin.Context) {
	hostID, ok := middleware.AuthUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"code": "error.unauthorized", "message": "missing auth context"}})
		return
	}

	list, err := ctrl.BookingSvc.ListForHost(hostID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.internal", "message": err.Error()}})
		return
	}

	c.JSON(http.StatusOK, list)
}

// GetMyPropertyOccupancy runs the monthly calendar for one of the host's own
// villas. Ownership is checked before computing.
func (ctrl *HostController) GetMyPropertyOccupancy(c *gin.Context) {
	hostID, ok := middleware.AuthUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"code": "error.unauthorized", "message": "missing auth context"}})
		return
	}

	propertyID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var property models.Property
	if err := config.DB.Where("id = ? AND host_id = ?", propertyID, hostID).First(&property).Error; err != nil {
		utils.JSONErrorCode(c, http.StatusNotFound, "error.propertyNotFound", "property not found for this host")
		return
	}

	year, month, ok := parseYearMonth(c)
	if !ok {
		return
	}

	renderMonthlyAvailability(c, ctrl.AvailabilitySvc, propertyID, year, month)
}
