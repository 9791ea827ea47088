package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/propmitra/propmitra-backend/app/controllers"
	"github.com/propmitra/propmitra-backend/pkg/middleware"
)

func RegisterUserRoutes(app *fiber.App) {
	// Public routes
	app.Post("/signup", controllers.UserSignUp)
	app.Post("/signin", controllers.UserSignIn)
	app.Post("/refresh", controllers.RefreshToken)
	app.Post("/logout", controllers.UserLogout)

	user := app.Group("/user", middleware.JWTProtected())
	user.Get("/profile", controllers.UserProfile)
}
