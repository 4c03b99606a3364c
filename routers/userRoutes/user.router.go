package userRoutes

import (
	controllers "comply/controllers/user"
	validators "comply/validators/user"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up worker management routes
func SetupUserRoutes(app *fiber.App) {
	workerGroup := app.Group("/worker")

	workerGroup.Post("/", validators.CreateWorker(), controllers.CreateWorker)
	workerGroup.Get("/org/:id", validators.OrganizationID(), controllers.GetOrgWorkers)
}
