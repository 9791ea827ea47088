package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/propmitra/propmitra-backend/app/controllers"
	"github.com/propmitra/propmitra-backend/pkg/middleware"
)

func RegisterUnlockRoutes(app *fiber.App) {
	app.Post("/listings/:id/unlock", middleware.JWTProtected(), controllers.UnlockContact)
}
