package courseValidator

import (
	"strconv"

	"comply/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ObjectiveInput is one objective in a create/update payload. A blank
// ID means a new objective; the controller mints the identifier.
type ObjectiveInput struct {
	ID   string `json:"id"`
	Text string `json:"text" validate:"required,min=3"`
}

// CourseRequest is the course create payload
type CourseRequest struct {
	Title       string           `json:"title" validate:"required,min=3"`
	Description string           `json:"description" validate:"required,min=5"`
	Category    string           `json:"category"`
	PassMark    *int             `json:"pass_mark" validate:"omitempty,min=1,max=100"`
	MaxAttempts *int             `json:"max_attempts" validate:"omitempty,min=0"`
	Objectives  []ObjectiveInput `json:"objectives" validate:"omitempty,dive"`
}

// CourseUpdateRequest is the course update payload; empty fields are
// left unchanged.
type CourseUpdateRequest struct {
	Title       string           `json:"title" validate:"omitempty,min=3"`
	Description string           `json:"description" validate:"omitempty,min=5"`
	Category    string           `json:"category"`
	Status      string           `json:"status" validate:"omitempty,oneof=DRAFT ACTIVE ARCHIVED"`
	PassMark    *int             `json:"pass_mark" validate:"omitempty,min=1,max=100"`
	MaxAttempts *int             `json:"max_attempts" validate:"omitempty,min=0"`
	Objectives  []ObjectiveInput `json:"objectives" validate:"omitempty,dive"`
}

// LessonRequest is the lesson create/update payload
type LessonRequest struct {
	Title      string `json:"title" validate:"required,min=3"`
	Body       string `json:"body" validate:"required"`
	OrderIndex int    `json:"order_index" validate:"min=0"`
}

// QuestionRequest is the quiz-question create payload
type QuestionRequest struct {
	Text         string   `json:"text" validate:"required,min=5"`
	Options      []string `json:"options" validate:"required,min=2,dive,required"`
	CorrectIndex int      `json:"correct_index" validate:"min=0"`
	ObjectiveID  string   `json:"objective_id"`
	OrderIndex   int      `json:"order_index" validate:"min=0"`
}

// validationErrors flattens validator.v10 errors into the response map
func validationErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			errors[fe.Field()] = "Failed validation: " + fe.Tag()
		}
		return errors
	}
	errors["body"] = err.Error()
	return errors
}

// CreateCourse validates the course create payload
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}
		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validates the course id and update payload
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := courseIDParam(c); err != nil {
			return err
		}
		reqData := new(CourseUpdateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}
		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// CourseID validates the course id path parameter
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := courseIDParam(c); err != nil {
			return err
		}
		return c.Next()
	}
}

// CreateLesson validates the course id and lesson payload
func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := courseIDParam(c); err != nil {
			return err
		}
		reqData := new(LessonRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}
		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// CreateQuestion validates the course id and question payload
func CreateQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := courseIDParam(c); err != nil {
			return err
		}
		reqData := new(QuestionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}
		if reqData.CorrectIndex >= len(reqData.Options) {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"correct_index": "correct_index must point at one of the options!",
			})
		}
		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}

// CompleteLesson validates the course and lesson id parameters plus
// the worker id in the body
func CompleteLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := courseIDParam(c); err != nil {
			return err
		}
		lessonID, err := strconv.Atoi(c.Params("lesson_id"))
		if err != nil || lessonID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson id!", nil)
		}
		reqData := new(struct {
			WorkerID uint `json:"worker_id" validate:"required"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}
		c.Locals("lessonID", uint(lessonID))
		c.Locals("workerID", reqData.WorkerID)
		return c.Next()
	}
}

func courseIDParam(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}
	c.Locals("courseID", uint(id))
	return nil
}
