package assignmentValidator

import (
	"strconv"
	"time"

	"comply/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// AssignRequest is the bulk course-assignment payload
type AssignRequest struct {
	CourseID  uint   `json:"course_id" validate:"required"`
	WorkerIDs []uint `json:"worker_ids" validate:"required,min=1,dive,required"`
	DueDate   string `json:"due_date"` // optional ISO date
}

// AssignCourse validates the assignment payload
func AssignCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AssignRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			if verrs, ok := err.(validator.ValidationErrors); ok {
				for _, fe := range verrs {
					errors[fe.Field()] = "Failed validation: " + fe.Tag()
				}
			} else {
				errors["body"] = err.Error()
			}
			return middleware.ValidationErrorResponse(c, errors)
		}
		if reqData.DueDate != "" {
			if _, err := time.Parse("2006-01-02", reqData.DueDate); err != nil {
				return middleware.ValidationErrorResponse(c, map[string]string{
					"due_date": "due_date must be an ISO date!",
				})
			}
		}
		c.Locals("validatedAssignment", reqData)
		return c.Next()
	}
}

// WorkerID validates the worker id path parameter
func WorkerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid worker id!", nil)
		}
		c.Locals("workerID", uint(id))
		return c.Next()
	}
}

// CourseID validates the course id path parameter
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
		}
		c.Locals("courseID", uint(id))
		return c.Next()
	}
}
