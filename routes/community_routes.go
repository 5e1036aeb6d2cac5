package routes

import (
	"github.com/rgoswami08/shg_sangam/handlers"
	"github.com/rgoswami08/shg_sangam/middleware"
	"github.com/gofiber/fiber/v2"
)

func CommunityRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	community := api.Group("/community", middleware.Protected())
	community.Get("/summary", handlers.GetCommunitySummary)
	community.Get("/track-records", handlers.ListTrackRecords)
	community.Get("/memberships", handlers.GetMyMemberships)
}
