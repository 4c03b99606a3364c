package controllers

import (
	"comply/database"
	"comply/middleware"
	"comply/models"
	userValidator "comply/validators/user"

	"github.com/gofiber/fiber/v2"
)

// CreateWorker registers a worker under an organization
func CreateWorker(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedWorker").(*userValidator.WorkerRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var org models.Organization
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.OrganizationID, false).First(&org).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Organization not found!", nil)
	}

	var existing models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A worker with this email already exists!", nil)
	}

	role := reqData.Role
	if role == "" {
		role = "WORKER"
	}

	worker := models.User{
		Name:           reqData.Name,
		Email:          reqData.Email,
		OrganizationID: reqData.OrganizationID,
		JobTitle:       reqData.JobTitle,
		Category:       reqData.Category,
		Role:           role,
	}

	if err := database.Database.Db.Create(&worker).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create worker!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Worker created successfully!", worker)
}

// GetOrgWorkers lists an organization's workers, optionally filtered by
// job title or category
func GetOrgWorkers(c *fiber.Ctx) error {
	organizationID := c.Locals("organizationID").(uint)

	var org models.Organization
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", organizationID, false).First(&org).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Organization not found!", nil)
	}

	db := database.Database.Db.Where("organization_id = ? AND is_deleted = ?", organizationID, false)
	if role := c.Query("role"); role != "" {
		db = db.Where("job_title = ?", role)
	}
	if category := c.Query("category"); category != "" {
		db = db.Where("category = ?", category)
	}

	var workers []models.User
	if err := db.Order("name asc").Find(&workers).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch workers!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Workers fetched successfully!", fiber.Map{
		"workers": workers,
		"total":   len(workers),
	})
}
