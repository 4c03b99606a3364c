package courseRoutes

import (
	controllers "comply/controllers/course"
	validators "comply/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up course catalogue and admin course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Catalogue
	courseGroup.Get("/list", controllers.GetAllCourses)
	courseGroup.Get("/:id", validators.CourseID(), controllers.GetCourseDetails)

	// Lesson completion
	courseGroup.Post("/:id/lesson/:lesson_id/complete", validators.CompleteLesson(), controllers.CompleteLesson)

	// Admin course management
	adminGroup := app.Group("/admin/course")
	adminGroup.Post("/", validators.CreateCourse(), controllers.AdminCreateCourse)
	adminGroup.Put("/:id", validators.UpdateCourse(), controllers.AdminUpdateCourse)
	adminGroup.Post("/:id/publish", validators.CourseID(), controllers.AdminPublishCourse)
	adminGroup.Delete("/:id", validators.CourseID(), controllers.AdminDeleteCourse)
	adminGroup.Post("/:id/lesson", validators.CreateLesson(), controllers.AdminCreateLesson)
	adminGroup.Post("/:id/question", validators.CreateQuestion(), controllers.AdminCreateQuestion)
}
