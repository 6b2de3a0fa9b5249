package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"villa-backend/config"
	"villa-backend/models"

	"github.com/gin-gonic/gin"
)

// ----------------------------------------------------
// 1. Public list (GET /api/properties)
// ----------------------------------------------------

func GetProperties(c *gin.Context) {
	q := config.DB.Where("status = ?", "active")

	if city := strings.TrimSpace(c.Query("city")); city != "" {
		q = q.Where("city = ?", city)
	}
	if guests := c.Query("guests"); guests != "" {
		q = q.Where("max_guests >= ?", guests)
	}
	if c.Query("featured") == "true" {
		q = q.Where("featured = ?", true)
	}

	var properties []models.Property
	if err := q.Order("featured DESC, created_at DESC").Find(&properties).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, properties)
}

// ----------------------------------------------------
// 2. Public detail (GET /api/properties/:id), id or slug
// ----------------------------------------------------

func GetPropertyByID(c *gin.Context) {
	id := c.Param("id")

	var property models.Property
	err := config.DB.Preload("Host").Where("id = ? OR slug = ?", id, id).First(&property).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{"code": "error.propertyNotFound", "message": "property not found"},
		})
		return
	}

	c.JSON(http.StatusOK, property)
}

// ----------------------------------------------------
// 3. Admin list (GET /api/admin/properties), all statuses
// ----------------------------------------------------

func GetAllProperties(c *gin.Context) {
	var properties []models.Property
	config.DB.Preload("Host").Order("created_at DESC").Find(&properties)

	c.JSON(http.StatusOK, properties)
}

// ----------------------------------------------------
// 4. Create (POST /api/admin/properties)
// ----------------------------------------------------

func CreateProperty(c *gin.Context) {
	var property models.Property

	if err := c.ShouldBindJSON(&property); err != nil {
		log.Printf("❌ JSON BINDING ERROR (400): %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	property.Name = strings.TrimSpace(property.Name)
	if property.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Property name is required.",
		})
		return
	}

	property.Slug = strings.TrimSpace(property.Slug)
	if property.Slug == "" {
		property.Slug = slugify(property.Name)
	}
	if property.Status == "" {
		property.Status = "active"
	}
	if property.BasePricePerNight < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Base price per night cannot be negative.",
		})
		return
	}

	// If HostID pointer exists but is invalid -> reject rather than insert FK 0
	if property.HostID != nil {
		var host models.Host
		if err := config.DB.First(&host, *property.HostID).Error; err != nil {
			log.Printf("❌ Invalid HostID provided: %v", *property.HostID)
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Invalid hostId provided.",
			})
			return
		}
	}

	if result := config.DB.Create(&property); result.Error != nil {
		if isDuplicateEntryErr(result.Error) {
			log.Printf("❌ Duplicate property slug: %s", property.Slug)
			c.JSON(http.StatusConflict, gin.H{
				"status":  "error",
				"message": fmt.Sprintf("Property slug '%s' already exists.", property.Slug),
			})
			return
		}

		log.Printf("❌ DB ERROR: %v", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Database error",
			"details": result.Error.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, property)
}

// ----------------------------------------------------
// 5. Update (PATCH /api/admin/properties/:id)
// ----------------------------------------------------

func UpdateProperty(c *gin.Context) {
	id := c.Param("id")
	var updateData map[string]interface{}

	if err := c.ShouldBindJSON(&updateData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	// protect immutable fields
	delete(updateData, "id")
	delete(updateData, "created_at")
	delete(updateData, "updated_at")
	delete(updateData, "deleted_at")

	if err := config.DB.Model(&models.Property{}).Where("id = ?", id).Updates(updateData).Error; err != nil {
		log.Printf("❌ Update Error for Property %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Update failed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Property updated successfully",
	})
}

// ----------------------------------------------------
// 6. Delete (DELETE /api/admin/properties/:id)
// ----------------------------------------------------

func DeleteProperty(c *gin.Context) {
	id := c.Param("id")

	result := config.DB.Where("id = ?", id).Delete(&models.Property{})
	if result.Error != nil {
		log.Printf("❌ DB Error during deletion (ID: %s): %v", id, result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete property.",
		})
		return
	}

	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": fmt.Sprintf("Property with ID %s not found.", id),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Property deleted successfully",
	})
}

func slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	var sb strings.Builder
	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && sb.Len() > 0 {
				sb.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(sb.String(), "-")
}
