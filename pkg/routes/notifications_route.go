package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/propmitra/propmitra-backend/app/controllers"
)

func RegisterNotificationRoutes(app *fiber.App) {
	app.Get("/ws/notifications", websocket.New(func(c *websocket.Conn) {
		controllers.NotificationsWsHandler(c)
	}))
}
