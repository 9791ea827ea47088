package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/propmitra/propmitra-backend/app/controllers"
	"github.com/propmitra/propmitra-backend/pkg/middleware"
)

func RegisterAdminRoutes(app *fiber.App) {
	admin := app.Group("/admin", middleware.JWTProtected(), middleware.AdminOnly())
	admin.Get("/listings/pending", controllers.PendingListings)
	admin.Put("/listings/:id/approve", controllers.ApproveListing)
	admin.Put("/listings/:id/reject", controllers.RejectListing)
}
