package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"villa-backend/config"
	"villa-backend/models"
	"villa-backend/services"
	"villa-backend/utils"

	"github.com/gin-gonic/gin"
)

// ----------------------------------------------------
// Admin CRUD (direct DB, like the other catalog handlers)
// ----------------------------------------------------

func GetCoupons(c *gin.Context) {
	var coupons []models.Coupon
	config.DB.Order("created_at DESC").Find(&coupons)
	c.JSON(http.StatusOK, coupons)
}

func CreateCoupon(c *gin.Context) {
	var coupon models.Coupon
	if err := c.ShouldBindJSON(&coupon); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))
	if coupon.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Coupon code is required."})
		return
	}
	if coupon.Type != models.CouponTypePercent && coupon.Type != models.CouponTypeFixed {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Coupon type must be 'percent' or 'fixed'."})
		return
	}
	if coupon.Value <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Coupon value must be positive."})
		return
	}
	if coupon.Type == models.CouponTypePercent && coupon.Value > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Percent coupons cannot exceed 100."})
		return
	}

	if result := config.DB.Create(&coupon); result.Error != nil {
		if isDuplicateEntryErr(result.Error) {
			c.JSON(http.StatusConflict, gin.H{
				"status":  "error",
				"message": fmt.Sprintf("Coupon code '%s' already exists.", coupon.Code),
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

	c.JSON(http.StatusCreated, coupon)
}

func UpdateCoupon(c *gin.Context) {
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
	delete(updateData, "used_count") // only redemptions move this

	if err := config.DB.Model(&models.Coupon{}).Where("id = ?", id).Updates(updateData).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Update failed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Coupon updated successfully"})
}

func DeleteCoupon(c *gin.Context) {
	id := c.Param("id")

	result := config.DB.Where("id = ?", id).Delete(&models.Coupon{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to delete coupon."})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": fmt.Sprintf("Coupon with ID %s not found.", id)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Coupon deleted successfully"})
}

// ----------------------------------------------------
// Validation + analytics (service-backed)
// ----------------------------------------------------

type CouponController struct {
	CouponSvc *services.CouponService
}

func NewCouponController(svc *services.CouponService) *CouponController {
	return &CouponController{CouponSvc: svc}
}

type validateCouponPayload struct {
	Code   string  `json:"code" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
}

// ValidateCoupon checks a code for the booking form: POST /api/coupons/validate
func (ctrl *CouponController) ValidateCoupon(c *gin.Context) {
	var payload validateCouponPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "error.invalidPayload", "message": "code and amount are required", "details": err.Error()},
		})
		return
	}

	coupon, discount, err := ctrl.CouponSvc.ValidateCoupon(payload.Code, payload.Amount)
	if err != nil {
		if couponErrorResponse(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.internal", "message": err.Error()}})
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"code":         coupon.Code,
		"type":         coupon.Type,
		"discount":     discount,
		"final_amount": payload.Amount - discount,
	})
}

// GetCouponAnalytics feeds the admin coupon dashboard: GET /api/admin/coupons/analytics
func (ctrl *CouponController) GetCouponAnalytics(c *gin.Context) {
	rows, err := ctrl.CouponSvc.Analytics()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "error.internal", "message": err.Error()}})
		return
	}
	c.JSON(http.StatusOK, rows)
}
