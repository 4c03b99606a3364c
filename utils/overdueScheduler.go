package utils

import (
	"log"
	"time"

	"comply/config"
	"comply/database"
	"comply/models"
	courseModels "comply/models/course"

	"github.com/robfig/cron/v3"
)

// InitializeOverdueScheduler sets up the daily overdue-assignment sweep
func InitializeOverdueScheduler() {
	log.Println("[OVERDUE-SCHEDULER] Initializing overdue assignment scheduler...")

	c := cron.New()

	spec := config.AppConfig.OverdueCheckSpec
	if _, err := c.AddFunc(spec, func() {
		log.Println("[OVERDUE-SCHEDULER] Running daily overdue check...")
		MarkOverdueAssignments()
		SendDueSoonReminders()
	}); err != nil {
		log.Printf("[OVERDUE-SCHEDULER] Invalid cron spec %q: %v", spec, err)
		return
	}

	c.Start()
	log.Printf("[OVERDUE-SCHEDULER] Overdue scheduler started with spec %q", spec)
}

// MarkOverdueAssignments flips open assignments past their due date to
// OVERDUE and emails the worker once.
func MarkOverdueAssignments() {
	db := database.Database.Db
	now := time.Now()

	var overdue []courseModels.CourseAssignment
	if err := db.
		Where("status IN ? AND is_deleted = ?", []string{courseModels.AssignmentNotStarted, courseModels.AssignmentInProgress}, false).
		Where("due_date IS NOT NULL AND due_date < ?", now).
		Find(&overdue).Error; err != nil {
		log.Printf("[OVERDUE-SCHEDULER] Error fetching overdue assignments: %v", err)
		return
	}

	log.Printf("[OVERDUE-SCHEDULER] Found %d assignments past due", len(overdue))

	for _, assignment := range overdue {
		assignment.Status = courseModels.AssignmentOverdue
		if err := db.Save(&assignment).Error; err != nil {
			log.Printf("[OVERDUE-SCHEDULER] Error updating assignment %d: %v", assignment.ID, err)
			continue
		}

		var worker models.User
		if err := db.Where("id = ?", assignment.UserID).First(&worker).Error; err != nil {
			log.Printf("[OVERDUE-SCHEDULER] Error fetching worker %d: %v", assignment.UserID, err)
			continue
		}
		var course courseModels.Course
		if err := db.Where("id = ?", assignment.CourseID).First(&course).Error; err != nil {
			log.Printf("[OVERDUE-SCHEDULER] Error fetching course %d: %v", assignment.CourseID, err)
			continue
		}

		if err := SendOverdueReminder(worker.Email, worker.Name, course.Title, assignment.DueDate); err == nil {
			log.Printf("[OVERDUE-SCHEDULER] Sent overdue notice for assignment %d to %s", assignment.ID, worker.Email)
		}
	}
}

// SendDueSoonReminders emails workers whose open assignments fall due
// within the reminder window; each assignment is reminded once.
func SendDueSoonReminders() {
	db := database.Database.Db
	now := time.Now()
	windowEnd := now.AddDate(0, 0, config.AppConfig.ReminderWindowDays)

	var dueSoon []courseModels.CourseAssignment
	if err := db.
		Where("status IN ? AND reminder_sent = ? AND is_deleted = ?", []string{courseModels.AssignmentNotStarted, courseModels.AssignmentInProgress}, false, false).
		Where("due_date IS NOT NULL AND due_date BETWEEN ? AND ?", now, windowEnd).
		Find(&dueSoon).Error; err != nil {
		log.Printf("[OVERDUE-SCHEDULER] Error fetching due-soon assignments: %v", err)
		return
	}

	log.Printf("[OVERDUE-SCHEDULER] Found %d assignments due soon", len(dueSoon))

	for _, assignment := range dueSoon {
		var worker models.User
		if err := db.Where("id = ?", assignment.UserID).First(&worker).Error; err != nil {
			log.Printf("[OVERDUE-SCHEDULER] Error fetching worker %d: %v", assignment.UserID, err)
			continue
		}
		var course courseModels.Course
		if err := db.Where("id = ?", assignment.CourseID).First(&course).Error; err != nil {
			log.Printf("[OVERDUE-SCHEDULER] Error fetching course %d: %v", assignment.CourseID, err)
			continue
		}

		due := "soon"
		if assignment.DueDate != nil {
			due = assignment.DueDate.Format("January 2, 2006")
		}
		body := emailTemplate(
			"Training Due Soon",
			"<h2>Hi "+worker.Name+",</h2><p>Your compliance course <b>"+course.Title+"</b> is due on <b>"+due+"</b>.</p>",
		)
		if err := SendEmail(worker.Email, worker.Name, "Training due soon: "+course.Title, body); err != nil {
			continue
		}

		db.Model(&assignment).Update("reminder_sent", true)
		log.Printf("[OVERDUE-SCHEDULER] Sent due-soon reminder for assignment %d to %s", assignment.ID, worker.Email)
	}
}
