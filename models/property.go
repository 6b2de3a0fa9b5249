package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Property struct {
	gorm.Model

	// Nullable so admin-created villas without an assigned host don't insert FK 0.
	HostID *uint `json:"hostId,omitempty" gorm:"column:host_id;index"`

	Name     string `json:"name" gorm:"size:255"`
	Slug     string `json:"slug" gorm:"uniqueIndex;type:varchar(191)"`
	City     string `json:"city" gorm:"size:100;index"`
	Location string `json:"location" gorm:"size:255"`

	Description       string  `json:"description" gorm:"type:text"`
	BasePricePerNight float64 `json:"basePricePerNight" gorm:"column:base_price_per_night"`
	MaxGuests         int     `json:"maxGuests" gorm:"column:max_guests"`
	Bedrooms          int     `json:"bedrooms"`
	Bathrooms         int     `json:"bathrooms"`

	Amenities datatypes.JSON `json:"amenities,omitempty" gorm:"column:amenities"`
	Images    datatypes.JSON `json:"images,omitempty" gorm:"column:images"`

	Featured bool   `json:"featured" gorm:"default:false"`
	Status   string `json:"status" gorm:"size:32;default:active"`

	Host Host `gorm:"foreignKey:HostID;references:ID" json:"host,omitempty"`
}
