package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/propmitra/propmitra-backend/app/models"
	"github.com/propmitra/propmitra-backend/app/queries"
	"github.com/propmitra/propmitra-backend/app/services"
	"github.com/propmitra/propmitra-backend/pkg/database"
	"github.com/propmitra/propmitra-backend/pkg/utils"
)

func searchService() *services.SearchService {
	var cache *services.SearchCache
	if database.RDB != nil {
		cache = services.NewSearchCache(database.RDB)
	}
	return services.NewSearchService(&queries.ListingQueries{DB: database.DB}, cache)
}

// SearchListings is the public search path. Only LIVE listings ever come
// back, capped at models.SearchLimit.
func SearchListings(c *fiber.Ctx) error {
	filter := models.SearchFilter{}
	if err := c.QueryParser(&filter); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid search filters"})
	}

	listings, err := searchService().Search(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"listings": listings,
		"count":    len(listings),
	})
}

// GetListing serves a single listing. Non-LIVE listings resolve only for
// the owning promoter or an admin.
func GetListing(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid listing id"})
	}

	var principal *utils.Principal
	if p, err := utils.ExtractPrincipalFromHeader(c.Get("Authorization")); err == nil {
		principal = &p
	}

	listing, err := listingService().GetListing(c.Context(), principal, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(listing)
}
