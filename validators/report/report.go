package reportValidator

import (
	"strconv"
	"time"

	"comply/analytics"
	"comply/middleware"

	"github.com/gofiber/fiber/v2"
)

// WorkerNeeds validates the worker id path parameter
func WorkerNeeds() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid worker id!", nil)
		}
		c.Locals("workerID", uint(id))
		return c.Next()
	}
}

// OrgOverview validates the organization id path parameter
func OrgOverview() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid organization id!", nil)
		}
		c.Locals("organizationID", uint(id))
		return c.Next()
	}
}

// DetailedReport validates the organization id and the optional filter
// query parameters, and stashes the parsed filter set in Locals.
func DetailedReport() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid organization id!", nil)
		}

		filters := &analytics.ReportFilters{
			Role:     c.Query("role"),
			Category: c.Query("category"),
		}

		errors := make(map[string]string)

		if raw := c.Query("startDate"); raw != "" {
			t, err := parseISODate(raw)
			if err != nil {
				errors["startDate"] = "startDate must be an ISO date!"
			} else {
				filters.StartDate = &t
			}
		}

		if raw := c.Query("endDate"); raw != "" {
			t, err := parseISODate(raw)
			if err != nil {
				errors["endDate"] = "endDate must be an ISO date!"
			} else {
				// A date-only bound is inclusive of the whole day
				if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
					t = t.Add(24*time.Hour - time.Second)
				}
				filters.EndDate = &t
			}
		}

		if raw := c.Query("courseId"); raw != "" {
			courseID, err := strconv.Atoi(raw)
			if err != nil || courseID < 1 {
				errors["courseId"] = "courseId must be a positive integer!"
			} else {
				filters.CourseID = uint(courseID)
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("organizationID", uint(id))
		c.Locals("reportFilters", filters)
		return c.Next()
	}
}

// parseISODate accepts a bare ISO date or a full RFC3339 timestamp
func parseISODate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
