package controllers

import (
	"time"

	"comply/database"
	"comply/middleware"
	"comply/models"
	courseModels "comply/models/course"
	"comply/utils"
	assignmentValidator "comply/validators/assignment"

	"github.com/gofiber/fiber/v2"
)

// AssignCourse assigns a course to a list of workers. Workers who
// already hold an assignment for the course are skipped, not
// re-assigned.
func AssignCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedAssignment").(*assignmentValidator.AssignRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", reqData.CourseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	var dueDate *time.Time
	if reqData.DueDate != "" {
		t, _ := time.Parse("2006-01-02", reqData.DueDate)
		dueDate = &t
	}

	assigned := make([]courseModels.CourseAssignment, 0, len(reqData.WorkerIDs))
	skipped := make([]uint, 0)

	for _, workerID := range reqData.WorkerIDs {
		var worker models.User
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", workerID, false).First(&worker).Error; err != nil {
			skipped = append(skipped, workerID)
			continue
		}

		var existing courseModels.CourseAssignment
		if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", workerID, reqData.CourseID, false).First(&existing).Error; err == nil {
			skipped = append(skipped, workerID)
			continue
		}

		assignment := courseModels.CourseAssignment{
			UserID:   workerID,
			CourseID: reqData.CourseID,
			Status:   courseModels.AssignmentNotStarted,
			DueDate:  dueDate,
		}
		if err := database.Database.Db.Create(&assignment).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create assignment!", nil)
		}
		assigned = append(assigned, assignment)

		utils.SendAssignmentNotification(worker.Email, worker.Name, course.Title, dueDate)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course assigned successfully!", fiber.Map{
		"assigned": assigned,
		"skipped":  skipped,
	})
}

// GetWorkerAssignments lists one worker's assignments with course titles
func GetWorkerAssignments(c *fiber.Ctx) error {
	workerID := c.Locals("workerID").(uint)

	var worker models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", workerID, false).First(&worker).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Worker not found!", nil)
	}

	var assignments []courseModels.CourseAssignment
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", workerID, false).
		Order("created_at desc").Find(&assignments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch assignments!", nil)
	}

	type AssignmentWithCourse struct {
		courseModels.CourseAssignment
		CourseTitle string `json:"course_title"`
	}

	result := make([]AssignmentWithCourse, len(assignments))
	for i, a := range assignments {
		var course courseModels.Course
		database.Database.Db.Select("title").Where("id = ?", a.CourseID).First(&course)
		result[i] = AssignmentWithCourse{
			CourseAssignment: a,
			CourseTitle:      course.Title,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignments fetched successfully!", fiber.Map{
		"assignments": result,
	})
}

// GetCourseAssignments lists a course's assignments with worker details
func GetCourseAssignments(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.CourseAssignment{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false)

	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}

	var total int64
	db.Count(&total)

	var assignments []courseModels.CourseAssignment
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&assignments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch assignments!", nil)
	}

	type AssignmentWithWorker struct {
		courseModels.CourseAssignment
		WorkerName  string `json:"worker_name"`
		WorkerEmail string `json:"worker_email"`
	}

	result := make([]AssignmentWithWorker, len(assignments))
	for i, a := range assignments {
		var worker models.User
		database.Database.Db.Where("id = ?", a.UserID).First(&worker)
		result[i] = AssignmentWithWorker{
			CourseAssignment: a,
			WorkerName:       worker.Name,
			WorkerEmail:      worker.Email,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignments fetched successfully!", fiber.Map{
		"assignments": result,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
