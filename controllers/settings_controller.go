package controllers

import (
	"errors"
	"net/http"

	"villa-backend/config"
	"villa-backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type siteSettingsPayload struct {
	Name            string `json:"name"`
	Tagline         string `json:"tagline"`
	Address         string `json:"address"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Website         string `json:"website"`
	Logo            string `json:"logo"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	OgImage         string `json:"og_image"`
}

func GetSiteSettings(c *gin.Context) {
	var site models.SiteSetting
	if err := config.DB.First(&site).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"site": models.SiteSetting{}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"site": site})
}

func UpdateSiteSettings(c *gin.Context) {
	var payload siteSettingsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	apply := func(site *models.SiteSetting) {
		site.Name = payload.Name
		site.Tagline = payload.Tagline
		site.Address = payload.Address
		site.Phone = payload.Phone
		site.Email = payload.Email
		site.Website = payload.Website
		site.Logo = payload.Logo
		site.MetaTitle = payload.MetaTitle
		site.MetaDescription = payload.MetaDescription
		site.OgImage = payload.OgImage
	}

	var site models.SiteSetting
	err := config.DB.First(&site).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apply(&site)
			if err := config.DB.Create(&site).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"site": site})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	apply(&site)
	if err := config.DB.Save(&site).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"site": site})
}
