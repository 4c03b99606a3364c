package models

import "gorm.io/gorm"

// User is a worker (or administrator) belonging to an organization.
// JobTitle and Category drive the role/category breakdowns in the
// performance reports.
type User struct {
	gorm.Model
	Name           string `json:"name" gorm:"default:''"`
	Email          string `json:"email" gorm:"unique;not null"`
	OrganizationID uint   `json:"organization_id" gorm:"index;not null"`
	JobTitle       string `json:"job_title" gorm:"default:''"`
	Category       string `json:"category" gorm:"default:''"`
	Role           string `json:"role" gorm:"default:'WORKER'"` // WORKER, ADMIN
	IsDeleted      bool   `gorm:"default:false"`
}
