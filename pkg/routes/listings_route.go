package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/propmitra/propmitra-backend/app/controllers"
	"github.com/propmitra/propmitra-backend/pkg/middleware"
)

func RegisterListingRoutes(app *fiber.App) {
	// Public read path. The JWT middleware is attached per route below so
	// these stay reachable without a token.
	app.Get("/listings", controllers.SearchListings)
	app.Get("/listings/:id", controllers.GetListing)
	app.Get("/listings/:id/contact", controllers.GetContactView)

	// Promoter routes
	app.Post("/listings", middleware.JWTProtected(), controllers.CreateListing)
	app.Put("/listings/:id", middleware.JWTProtected(), controllers.UpdateListing)
	app.Post("/listings/:id/submit", middleware.JWTProtected(), controllers.SubmitListing)
	app.Post("/listings/:id/sold", middleware.JWTProtected(), controllers.MarkListingSold)
	app.Post("/listings/:id/inactive", middleware.JWTProtected(), controllers.MarkListingInactive)

	user := app.Group("/user", middleware.JWTProtected())
	user.Get("/listings", controllers.MyListings)
}
