package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/propmitra/propmitra-backend/app/controllers"
	"github.com/propmitra/propmitra-backend/pkg/middleware"
)

func RegisterSavedRoutes(app *fiber.App) {
	saved := app.Group("/saved", middleware.JWTProtected())
	saved.Post("/:id", controllers.ToggleSavedProperty)
	saved.Get("/", controllers.ListSavedProperties)
}
