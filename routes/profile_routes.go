package routes

import (
	"github.com/rgoswami08/shg_sangam/handlers"
	"github.com/rgoswami08/shg_sangam/middleware"
	"github.com/gofiber/fiber/v2"
)

func ProfileRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	profile := api.Group("/profile", middleware.Protected())
	profile.Get("", handlers.GetProfile)
	profile.Put("", handlers.UpdateProfile)

	api.Get("/contacts", middleware.Protected(), handlers.GetContacts)
}
