package controllers

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"villa-backend/config"
	"villa-backend/models"
	"villa-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type forgotPayload struct {
	Email string `json:"email"`
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

func generateTokenHex(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Login authenticates an admin and returns a JWT for the back office.
func Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	username := strings.TrimSpace(payload.Username)
	password := payload.Password
	if username == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
		return
	}

	var admin models.Admin
	if err := config.DB.Where("username = ?", username).First(&admin).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	stored := admin.Password
	valid := false
	if isBcryptHash(stored) {
		valid = bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	} else if stored != "" && stored == password {
		// legacy plaintext row: accept once and upgrade to a hash
		valid = true
		if hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost); err == nil {
			config.DB.Model(&admin).Update("password", string(hash))
		}
	}

	if !valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := utils.GenerateAuthToken(admin.ID, utils.RoleAdmin, admin.FullName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"admin": gin.H{
			"id":        admin.ID,
			"full_name": admin.FullName,
			"username":  admin.Username,
		},
	})
}

func ForgotPassword(c *gin.Context) {
	var payload forgotPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	email := strings.TrimSpace(payload.Email)
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email required"})
		return
	}

	var admin models.Admin
	if err := config.DB.Where("username = ?", email).First(&admin).Error; err == nil {
		token, err := generateTokenHex(24)
		if err == nil {
			expiry := time.Now().Add(1 * time.Hour)
			config.DB.Model(&admin).Updates(map[string]any{
				"reset_token":         token,
				"reset_token_expires": expiry,
			})
		}
	}

	// Same answer whether the account exists or not.
	c.JSON(http.StatusOK, gin.H{"message": "If this email exists, a reset link was sent."})
}
