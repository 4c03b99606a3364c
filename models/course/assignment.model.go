package course

import (
	"time"

	"gorm.io/gorm"
)

// Assignment statuses
const (
	AssignmentNotStarted = "NOT_STARTED"
	AssignmentInProgress = "IN_PROGRESS"
	AssignmentCompleted  = "COMPLETED"
	AssignmentFailed     = "FAILED"
	AssignmentOverdue    = "OVERDUE"
)

// CourseAssignment tracks a course assigned to a worker
type CourseAssignment struct {
	gorm.Model
	UserID       uint       `json:"user_id" gorm:"index;not null"`
	CourseID     uint       `json:"course_id" gorm:"index;not null"`
	Status       string     `json:"status" gorm:"default:'NOT_STARTED'"`
	DueDate      *time.Time `json:"due_date"`
	CompletedAt  *time.Time `json:"completed_at"`
	ReminderSent bool       `json:"reminder_sent" gorm:"default:false"`
	IsDeleted    bool       `gorm:"default:false"`
}
