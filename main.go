package main

import (
	"log"

	"comply/config"
	"comply/database"
	assignmentRoutes "comply/routers/assignmentRoutes"
	courseRoutes "comply/routers/courseRoutes"
	quizRoutes "comply/routers/quizRoutes"
	reportRoutes "comply/routers/reportRoutes"
	userRoutes "comply/routers/userRoutes"
	"comply/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	courseRoutes.SetupCourseRoutes(app)
	quizRoutes.SetupQuizRoutes(app)
	assignmentRoutes.SetupAssignmentRoutes(app)
	reportRoutes.SetupReportRoutes(app)
	userRoutes.SetupUserRoutes(app)

	utils.InitializeOverdueScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
