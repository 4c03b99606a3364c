package controllers

import (
	"time"

	"comply/database"
	"comply/middleware"
	courseModels "comply/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists published courses with pagination
func GetAllCourses(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).
		Where("is_deleted = ? AND is_published = ?", false, true)

	if category := c.Query("category"); category != "" {
		db = db.Where("category = ?", category)
	}

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetCourseDetails returns one course with its lessons and objective list
func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var lessons []courseModels.Lesson
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&lessons)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":     course,
		"objectives": course.ObjectiveList(),
		"lessons":    lessons,
	})
}

// CompleteLesson records a worker finishing a lesson and moves a
// fresh assignment into progress
func CompleteLesson(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	lessonID := c.Locals("lessonID").(uint)
	workerID := c.Locals("workerID").(uint)

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", lessonID, courseID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var existing courseModels.LessonCompletion
	if err := database.Database.Db.Where("user_id = ? AND lesson_id = ? AND is_deleted = ?", workerID, lessonID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Lesson already completed!", nil)
	}

	completion := courseModels.LessonCompletion{
		UserID:      workerID,
		LessonID:    lessonID,
		CourseID:    courseID,
		CompletedAt: time.Now(),
	}
	if err := database.Database.Db.Create(&completion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record completion!", nil)
	}

	// First activity moves the assignment out of NOT_STARTED
	var assignment courseModels.CourseAssignment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", workerID, courseID, false).First(&assignment).Error; err == nil {
		if assignment.Status == courseModels.AssignmentNotStarted {
			assignment.Status = courseModels.AssignmentInProgress
			database.Database.Db.Save(&assignment)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson completed!", completion)
}
