package models

import (
	"gorm.io/gorm"
)

// Host is a property owner with access to the host portal.
type Host struct {
	gorm.Model

	FullName string `gorm:"size:255" json:"fullName"`
	Email    string `gorm:"uniqueIndex;size:150" json:"email"`
	Phone    string `gorm:"size:50" json:"phone"`
	Password string `gorm:"size:255" json:"-"`
	Status   string `gorm:"size:32;default:active" json:"status"`

	Properties []Property `gorm:"foreignKey:HostID" json:"properties,omitempty"`
}
