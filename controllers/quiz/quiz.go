package controllers

import (
	"math"
	"time"

	"comply/database"
	"comply/middleware"
	"comply/models"
	courseModels "comply/models/course"
	quizValidator "comply/validators/quiz"

	"github.com/gofiber/fiber/v2"
)

// GetQuizQuestions lists a course's quiz questions. Correct answers are
// never serialized (the model hides CorrectIndex from JSON).
func GetQuizQuestions(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var questions []courseModels.QuizQuestion
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Questions fetched successfully!", fiber.Map{
		"questions": questions,
		"pass_mark": course.PassMark,
	})
}

// SubmitQuiz grades a worker's quiz submission, records the attempt and
// its answers, and advances the course assignment.
func SubmitQuiz(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	reqData, ok := c.Locals("validatedSubmission").(*quizValidator.SubmissionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var worker models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.WorkerID, false).First(&worker).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Worker not found!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	var assignment courseModels.CourseAssignment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", worker.ID, courseID, false).First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Worker is not assigned to this course!", nil)
	}

	// Next attempt number; attempt numbers are not assumed contiguous
	var lastAttempt courseModels.QuizAttempt
	attemptNumber := 1
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", worker.ID, courseID, false).
		Order("attempt_number desc").First(&lastAttempt).Error; err == nil {
		attemptNumber = lastAttempt.AttemptNumber + 1
	}

	if course.MaxAttempts > 0 && attemptNumber > course.MaxAttempts {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Maximum attempts reached for this course!", nil)
	}

	var questions []courseModels.QuizQuestion
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}
	if len(questions) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course has no quiz questions!", nil)
	}

	questionByID := make(map[uint]courseModels.QuizQuestion, len(questions))
	for _, q := range questions {
		questionByID[q.ID] = q
	}

	selectedByQuestion := make(map[uint]int, len(reqData.Answers))
	for _, ans := range reqData.Answers {
		q, ok := questionByID[ans.QuestionID]
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Answer references a question outside this course!", nil)
		}
		if ans.SelectedIndex < 0 || ans.SelectedIndex >= len(q.OptionList()) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Answer selects an option that does not exist!", nil)
		}
		selectedByQuestion[ans.QuestionID] = ans.SelectedIndex
	}

	// Grade against the full question set; unanswered questions count
	// as incorrect
	correct := 0
	for _, q := range questions {
		if selected, answered := selectedByQuestion[q.ID]; answered && selected == q.CorrectIndex {
			correct++
		}
	}
	score := int(math.Round(100 * float64(correct) / float64(len(questions))))
	passed := score >= course.PassMark

	attempt := courseModels.QuizAttempt{
		UserID:        worker.ID,
		CourseID:      courseID,
		Score:         score,
		Passed:        passed,
		AttemptNumber: attemptNumber,
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&attempt).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record attempt!", nil)
	}
	for _, q := range questions {
		selected, answered := selectedByQuestion[q.ID]
		if !answered {
			continue
		}
		answer := courseModels.QuizAnswer{
			AttemptID:     attempt.ID,
			QuestionID:    q.ID,
			SelectedIndex: selected,
			IsCorrect:     selected == q.CorrectIndex,
		}
		if err := tx.Create(&answer).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record answers!", nil)
		}
	}

	if passed {
		now := time.Now()
		assignment.Status = courseModels.AssignmentCompleted
		assignment.CompletedAt = &now
	} else if course.MaxAttempts > 0 && attemptNumber >= course.MaxAttempts {
		assignment.Status = courseModels.AssignmentFailed
	} else if assignment.Status == courseModels.AssignmentNotStarted {
		assignment.Status = courseModels.AssignmentInProgress
	}
	if err := tx.Save(&assignment).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update assignment!", nil)
	}
	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted!", fiber.Map{
		"attempt":        attempt,
		"score":          score,
		"passed":         passed,
		"attempt_number": attemptNumber,
	})
}
