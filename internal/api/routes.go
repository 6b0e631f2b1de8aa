package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/recover", handler.Recover)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	api.Put("/goal", handler.AuthRequired, handler.UpdateDailyGoal)
	api.Put("/settings/profile", handler.AuthRequired, handler.UpdateProfile)

	sessions := api.Group("/sessions", handler.AuthRequired)
	sessions.Post("", handler.CreateSession)
	sessions.Get("", handler.GetSessions)

	api.Get("/progress/today", handler.AuthRequired, handler.GetTodayProgress)

	days := api.Group("/days", handler.AuthRequired)
	days.Get("", handler.GetDays)
	days.Get("/:date", handler.GetDayDetail)
	days.Post("/:date/finalize", handler.FinalizeDay)

	api.Get("/streak", handler.AuthRequired, handler.GetStreakStatus)
}
