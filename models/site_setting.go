package models

import "time"

type SiteSetting struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:255" json:"name"`
	Tagline string `gorm:"size:255" json:"tagline"`
	Address string `gorm:"type:text" json:"address"`
	Phone   string `gorm:"size:50" json:"phone"`
	Email   string `gorm:"size:150" json:"email"`
	Website string `gorm:"size:255" json:"website"`
	Logo    string `gorm:"size:255" json:"logo"`

	// SEO defaults used by the marketing pages.
	MetaTitle       string `gorm:"size:255" json:"meta_title"`
	MetaDescription string `gorm:"size:500" json:"meta_description"`
	OgImage         string `gorm:"size:255" json:"og_image"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
