package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	registerPageRoutes(app, handler)
	registerAPIRoutes(app, handler)
}

func registerPageRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	app.Get("/lang/:lang", handler.SetLanguage)

	app.Get("/login", handler.ShowLoginPage)
	app.Get("/register", handler.ShowRegisterPage)
	app.Get("/", handler.AuthRequired, handler.ShowDashboard)
	app.Get("/dashboard", handler.AuthRequired, handler.ShowDashboard)
	app.Get("/upload", handler.AuthRequired, handler.ShowUploadPage)
	app.Post("/upload", handler.AuthRequired, handler.Upload)
	app.Get("/predictions", handler.AuthRequired, handler.ShowPredictions)
	app.Get("/settings", handler.AuthRequired, handler.ShowSettings)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	charts := api.Group("/charts", handler.AuthRequired)
	charts.Get("", handler.Charts)
	charts.Post("/render", handler.RenderCharts)

	api.Get("/analysis", handler.AuthRequired, handler.Analysis)

	predictions := api.Group("/predictions", handler.AuthRequired)
	predictions.Get("", handler.Predictions)
	predictions.Get("/saved", handler.SavedPredictions)

	export := api.Group("/export", handler.AuthRequired)
	export.Get("/summary", handler.ExportSummary)
	export.Get("/xlsx", handler.ExportXLSX)
	export.Get("/csv", handler.ExportCSV)
	export.Get("/json", handler.ExportJSON)

	settings := api.Group("/settings", handler.AuthRequired)
	settings.Post("/change-password", handler.ChangePassword)
}
