package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"villa-backend/config"
	"villa-backend/models"
	"villa-backend/services"
	"villa-backend/utils"

	"github.com/gin-gonic/gin"
)

// ----------------------------------------------------
// Admin CRUD for loyalty rules
// ----------------------------------------------------

func GetLoyaltyRules(c *gin.Context) {
	var rules []models.LoyaltyRule
	config.DB.Order("min_booking_amount ASC").Find(&rules)
	c.JSON(http.StatusOK, rules)
}

func CreateLoyaltyRule(c *gin.Context) {
	var rule models.LoyaltyRule
	if err := c.ShouldBindJSON(&rule); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	rule.Slug = strings.TrimSpace(rule.Slug)
	if rule.Slug == "" {
		rule.Slug = slugify(rule.Name)
	}
	if rule.Slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Rule name or slug is required."})
		return
	}
	if rule.PointsPer100 < 0 || rule.Multiplier < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Points and multiplier cannot be negative."})
		return
	}
	if rule.Multiplier == 0 {
		rule.Multiplier = 1
	}

	if result := config.DB.Create(&rule); result.Error != nil {
		if isDuplicateEntryErr(result.Error) {
			c.JSON(http.StatusConflict, gin.H{
				"status":  "error",
				"message": fmt.Sprintf("Loyalty rule '%s' already exists.", rule.Slug),
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

	c.JSON(http.StatusCreated, rule)
}

func UpdateLoyaltyRule(c *gin.Context) {
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

	delete(updateData, "id")
	delete(updateData, "created_at")
	delete(updateData, "updated_at")
	delete(updateData, "deleted_at")

	if err := config.DB.Model(&models.LoyaltyRule{}).Where("id = ?", id).Updates(updateData).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Update failed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Loyalty rule updated successfully"})
}

func DeleteLoyaltyRule(c *gin.Context) {
	id := c.Param("id")

	result := config.DB.Where("id = ?", id).Delete(&models.LoyaltyRule{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to delete loyalty rule."})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Loyalty rule with ID %s not found.", id)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Loyalty rule deleted successfully"})
}

// ----------------------------------------------------
// Preview + balance (service-backed)
// ----------------------------------------------------

type LoyaltyController struct {
	LoyaltySvc *services.LoyaltyService
}

func NewLoyaltyController(svc *services.LoyaltyService) *LoyaltyController {
	return &LoyaltyController{LoyaltySvc: svc}
}

// PreviewPoints answers "how many points would this booking earn":
// GET /api/loyalty/preview?amount=12000
func (ctrl *LoyaltyController) PreviewPoints(c *gin.Context) {
	amount, err := strconv.ParseFloat(c.Query("amount"), 64)
	if err != nil || amount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "error.invalidAmount", "message": "amount must be a non-negative number"},
		})
		return
	}

	points, rule, err := ctrl.LoyaltySvc.Preview(amount)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.internal", "message": err.Error()}})
		return
	}

	data := gin.H{"amount": amount, "points": points}
	if rule != nil {
		data["rule"] = rule.Slug
	}
	utils.JSONSuccess(c, http.StatusOK, data)
}

// GetBalance returns a guest's current point balance:
// GET /api/loyalty/balance?email=guest@example.com
func (ctrl *LoyaltyController) GetBalance(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "error.missingEmail", "message": "email query parameter is required"},
		})
		return
	}

	balance, err := ctrl.LoyaltySvc.BalanceFor(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.internal", "message": err.Error()}})
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"email": email, "balance": balance})
}
