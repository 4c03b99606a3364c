package quizValidator

import (
	"strconv"

	"comply/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// SubmissionAnswer is one answered question in a quiz submission
type SubmissionAnswer struct {
	QuestionID    uint `json:"question_id" validate:"required"`
	SelectedIndex int  `json:"selected_index" validate:"min=0"`
}

// SubmissionRequest is the quiz submission payload
type SubmissionRequest struct {
	WorkerID uint               `json:"worker_id" validate:"required"`
	Answers  []SubmissionAnswer `json:"answers" validate:"required,min=1,dive"`
}

// QuizQuestions validates the course id path parameter
func QuizQuestions() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := courseIDParam(c); err != nil {
			return err
		}
		return c.Next()
	}
}

// SubmitQuiz validates the course id and submission payload
func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := courseIDParam(c); err != nil {
			return err
		}
		reqData := new(SubmissionRequest)
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
		c.Locals("validatedSubmission", reqData)
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
