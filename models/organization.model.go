package models

import "gorm.io/gorm"

// Organization groups workers under one compliance programme
type Organization struct {
	gorm.Model
	Name      string `json:"name" gorm:"not null"`
	IsDeleted bool   `gorm:"default:false"`
}
