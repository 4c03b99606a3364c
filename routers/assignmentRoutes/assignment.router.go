package assignmentRoutes

import (
	controllers "comply/controllers/assignment"
	validators "comply/validators/assignment"

	"github.com/gofiber/fiber/v2"
)

// SetupAssignmentRoutes sets up course-assignment routes
func SetupAssignmentRoutes(app *fiber.App) {
	assignmentGroup := app.Group("/assignment")

	assignmentGroup.Post("/", validators.AssignCourse(), controllers.AssignCourse)
	assignmentGroup.Get("/worker/:id", validators.WorkerID(), controllers.GetWorkerAssignments)
	assignmentGroup.Get("/course/:id", validators.CourseID(), controllers.GetCourseAssignments)
}
