package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/propmitra/propmitra-backend/app/queries"
	"github.com/propmitra/propmitra-backend/pkg/database"
	"github.com/propmitra/propmitra-backend/pkg/utils"
)

// ToggleSavedProperty bookmarks the listing for the caller, or removes the
// bookmark if it exists.
func ToggleSavedProperty(c *fiber.Ctx) error {
	principal, err := utils.ExtractPrincipalFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	listingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid listing id"})
	}

	savedQueries := queries.SavedQueries{DB: database.DB}
	saved, err := savedQueries.ToggleSaved(c.Context(), principal.UserID, listingID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"saved": saved})
}

// ListSavedProperties returns the caller's bookmarked listings.
func ListSavedProperties(c *fiber.Ctx) error {
	principal, err := utils.ExtractPrincipalFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	savedQueries := queries.SavedQueries{DB: database.DB}
	listings, err := savedQueries.ListSavedListings(c.Context(), principal.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"listings": listings})
}
