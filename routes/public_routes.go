package routes

import (
	"github.com/rgoswami08/shg_sangam/handlers"
	"github.com/rgoswami08/shg_sangam/middleware"
	"github.com/gofiber/fiber/v2"
)

func PublicRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// Scheme catalogue is informational and needs no session.
	api.Get("/schemes", handlers.ListSchemes)
	api.Post("/schemes/refresh", middleware.Protected(), middleware.AdminRequired(), handlers.RefreshSchemes)

	api.Get("/uploads/signature", middleware.Protected(), handlers.GenerateUploadSignature)
}
