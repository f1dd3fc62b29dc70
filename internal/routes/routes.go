package routes

import (
	"github.com/arnold/defi-academy-api/internal/handlers"
	"github.com/arnold/defi-academy-api/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.Register)
	auth.Post("/login", handlers.Login)

	protected := api.Group("/", middleware.Protected())

	protected.Get("/me", handlers.GetMe)
	protected.Put("/me", handlers.UpdateProfile)

	// Course catalog with per-user progress overlay
	courses := protected.Group("/courses")
	courses.Get("/", handlers.GetCourses)
	courses.Get("/:courseId", handlers.GetCourse)
	courses.Post("/:courseId/start", handlers.StartCourse)
	courses.Get("/:courseId/progress", handlers.GetCourseProgress)
	courses.Post("/:courseId/modules/:moduleIndex/complete", handlers.CompleteModule)
	courses.Post("/:courseId/modules/:moduleIndex/quiz", handlers.SubmitQuiz)

	protected.Get("/progress", handlers.GetAllProgress)

	// Points & gamification
	protected.Get("/points", handlers.GetPoints)
	protected.Post("/daily-login", handlers.DailyLogin)
	protected.Get("/badges", handlers.GetBadges)

	// Monthly leaderboard
	protected.Get("/leaderboard", handlers.GetLeaderboard)
	protected.Get("/leaderboard/me", handlers.GetMyRank)

	// Notifications
	notifications := protected.Group("/notifications")
	notifications.Get("/", handlers.GetNotifications)
	notifications.Put("/:id/read", handlers.MarkNotificationRead)
	notifications.Post("/read-all", handlers.MarkAllRead)

	// Device token for push notifications
	protected.Post("/device-token", handlers.RegisterDeviceToken)
}
