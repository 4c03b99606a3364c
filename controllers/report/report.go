package controllers

import (
	"comply/analytics"
	"comply/database"
	"comply/middleware"
	"comply/models"

	"github.com/gofiber/fiber/v2"
)

// GetWorkerLearningNeeds returns the learning-needs analysis for one worker
func GetWorkerLearningNeeds(c *fiber.Ctx) error {
	workerID := c.Locals("workerID").(uint)

	var worker models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", workerID, false).First(&worker).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Worker not found!", nil)
	}

	svc := analytics.NewService(database.Database.Db)
	needs, err := svc.WorkerLearningNeeds(workerID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute learning needs!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Learning needs fetched successfully!", fiber.Map{
		"needs": needs,
	})
}

// GetOrgPerformanceOverview returns the organization's worst-performing objectives
func GetOrgPerformanceOverview(c *fiber.Ctx) error {
	organizationID := c.Locals("organizationID").(uint)

	var org models.Organization
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", organizationID, false).First(&org).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Organization not found!", nil)
	}

	svc := analytics.NewService(database.Database.Db)
	top, err := svc.OrgPerformanceOverview(organizationID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute performance overview!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Performance overview fetched successfully!", fiber.Map{
		"topStrugglingObjectives": top,
	})
}

// GetDetailedOrgPerformance returns the filtered four-section performance report
func GetDetailedOrgPerformance(c *fiber.Ctx) error {
	organizationID := c.Locals("organizationID").(uint)
	filters := c.Locals("reportFilters").(*analytics.ReportFilters)

	var org models.Organization
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", organizationID, false).First(&org).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Organization not found!", nil)
	}

	svc := analytics.NewService(database.Database.Db)
	report, err := svc.DetailedOrgPerformance(organizationID, *filters)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute detailed performance!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Detailed performance fetched successfully!", report)
}
