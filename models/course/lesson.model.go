package course

import (
	"time"

	"gorm.io/gorm"
)

// Lesson is one unit of course content
type Lesson struct {
	gorm.Model
	CourseID   uint   `json:"course_id" gorm:"index;not null"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false"`
}

// LessonCompletion records a worker finishing a lesson
type LessonCompletion struct {
	gorm.Model
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	LessonID    uint      `json:"lesson_id" gorm:"index;not null"`
	CourseID    uint      `json:"course_id" gorm:"index;not null"`
	CompletedAt time.Time `json:"completed_at"`
	IsDeleted   bool      `gorm:"default:false"`
}
