package quizRoutes

import (
	controllers "comply/controllers/quiz"
	validators "comply/validators/quiz"

	"github.com/gofiber/fiber/v2"
)

// SetupQuizRoutes sets up quiz-taking routes
func SetupQuizRoutes(app *fiber.App) {
	quizGroup := app.Group("/course/:id/quiz")

	quizGroup.Get("/questions", validators.QuizQuestions(), controllers.GetQuizQuestions)
	quizGroup.Post("/submit", validators.SubmitQuiz(), controllers.SubmitQuiz)
}
