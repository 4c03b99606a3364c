package reportRoutes

import (
	controllers "comply/controllers/report"
	validators "comply/validators/report"

	"github.com/gofiber/fiber/v2"
)

// SetupReportRoutes sets up the performance analytics routes
func SetupReportRoutes(app *fiber.App) {
	reportGroup := app.Group("/report")

	reportGroup.Get("/worker/:id/needs", validators.WorkerNeeds(), controllers.GetWorkerLearningNeeds)
	reportGroup.Get("/org/:id/overview", validators.OrgOverview(), controllers.GetOrgPerformanceOverview)
	reportGroup.Get("/org/:id/detailed", validators.DetailedReport(), controllers.GetDetailedOrgPerformance)
}
