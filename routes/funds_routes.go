package routes

import (
	"github.com/rgoswami08/shg_sangam/handlers"
	"github.com/rgoswami08/shg_sangam/middleware"
	"github.com/gofiber/fiber/v2"
)

func FundsRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	funds := api.Group("/funds", middleware.Protected())
	funds.Get("/transactions", handlers.ListTransactions)
	funds.Post("/transfers", handlers.CreateFundTransfer)
	funds.Post("/transfers/direct", handlers.CreateDirectTransfer)
	funds.Post("/verify", handlers.VerifyPayment)
}
