package routes

import (
	"github.com/rgoswami08/shg_sangam/handlers"
	"github.com/rgoswami08/shg_sangam/middleware"
	"github.com/gofiber/fiber/v2"
)

func SHGRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	shgs := api.Group("/shgs", middleware.Protected())
	shgs.Get("", handlers.ListSHGs)
	shgs.Post("", handlers.CreateSHG)
	shgs.Get("/nearby", handlers.NearbySHGs)
	shgs.Get("/:shgId", handlers.GetSHG)
}
