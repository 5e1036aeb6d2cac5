package routes

import (
	"github.com/rgoswami08/shg_sangam/handlers"
	"github.com/rgoswami08/shg_sangam/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func MessagingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	messages := api.Group("/messages", middleware.Protected())
	messages.Get("", handlers.GetMessages)
	messages.Post("", handlers.SendMessage)

	conversations := api.Group("/conversations", middleware.Protected())
	conversations.Get("", handlers.GetConversations)
	conversations.Get("/:counterpartyId/messages", handlers.GetThread)
	conversations.Post("/:counterpartyId/read", handlers.MarkThreadRead)

	api.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/ws", websocket.New(handlers.ServeWs))
}
