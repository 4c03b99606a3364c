package userValidator

import (
	"strconv"

	"comply/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// WorkerRequest is the worker create payload
type WorkerRequest struct {
	Name           string `json:"name" validate:"required,min=2"`
	Email          string `json:"email" validate:"required,email"`
	OrganizationID uint   `json:"organization_id" validate:"required"`
	JobTitle       string `json:"job_title" validate:"required"`
	Category       string `json:"category"`
	Role           string `json:"role" validate:"omitempty,oneof=WORKER ADMIN"`
}

// CreateWorker validates the worker create payload
func CreateWorker() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(WorkerRequest)
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
		c.Locals("validatedWorker", reqData)
		return c.Next()
	}
}

// OrganizationID validates the organization id path parameter
func OrganizationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid organization id!", nil)
		}
		c.Locals("organizationID", uint(id))
		return c.Next()
	}
}
