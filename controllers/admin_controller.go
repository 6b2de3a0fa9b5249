package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"villa-backend/config"
	"villa-backend/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type createAdminPayload struct {
	FullName string `json:"full_name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func GetAdmins(c *gin.Context) {
	var admins []models.Admin
	config.DB.Order("created_at ASC").Find(&admins)
	c.JSON(http.StatusOK, admins)
}

func CreateAdmin(c *gin.Context) {
	var payload createAdminPayload
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

	admin := models.Admin{
		FullName: strings.TrimSpace(payload.FullName),
		Username: strings.ToLower(strings.TrimSpace(payload.Username)),
		Password: string(hash),
	}

	if result := config.DB.Create(&admin); result.Error != nil {
		if isDuplicateEntryErr(result.Error) {
			c.JSON(http.StatusConflict, gin.H{
				"status":  "error",
				"message": fmt.Sprintf("Admin username '%s' already exists.", admin.Username),
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

	c.JSON(http.StatusCreated, admin)
}

func DeleteAdmin(c *gin.Context) {
	id := c.Param("id")

	var count int64
	config.DB.Model(&models.Admin{}).Count(&count)
	if count <= 1 {
		c.JSON(http.StatusConflict, gin.H{"status": "error", "message": "Cannot delete the last admin."})
		return
	}

	result := config.DB.Where("id = ?", id).Delete(&models.Admin{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to delete admin."})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Admin with ID %s not found.", id)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Admin deleted successfully"})
}

// GetDashboardStats feeds the admin landing page: GET /api/admin/dashboard
func GetDashboardStats(c *gin.Context) {
	var propertyCount, hostCount int64
	config.DB.Model(&models.Property{}).Count(&propertyCount)
	config.DB.Model(&models.Host{}).Count(&hostCount)

	type statusCount struct {
		Status string
		Count  int64
	}
	var byStatus []statusCount
	config.DB.Model(&models.Booking{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus)

	bookings := gin.H{}
	var totalBookings int64
	for _, sc := range byStatus {
		bookings[sc.Status] = sc.Count
		totalBookings += sc.Count
	}

	type revenueRow struct{ Revenue float64 }
	var rev revenueRow
	config.DB.Model(&models.Booking{}).
		Select("COALESCE(SUM(total_amount), 0) AS revenue").
		Where("status IN ?", []string{models.BookingStatusConfirmed, models.BookingStatusCompleted}).
		Scan(&rev)

	c.JSON(http.StatusOK, gin.H{
		"properties":       propertyCount,
		"hosts":            hostCount,
		"bookings":         bookings,
		"total_bookings":   totalBookings,
		"total_revenue":    rev.Revenue,
	})
}
