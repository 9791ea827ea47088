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

func listingService() *services.ListingService {
	return services.NewListingService(&queries.ListingQueries{DB: database.DB}, utils.DefaultNotifier)
}

func CreateListing(c *fiber.Ctx) error {
	principal, err := utils.ExtractPrincipalFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	req := &models.CreateListingRequest{}
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	listing, err := listingService().CreateListing(c.Context(), principal, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(listing)
}

func UpdateListing(c *fiber.Ctx) error {
	principal, err := utils.ExtractPrincipalFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid listing id"})
	}

	req := &models.UpdateListingRequest{}
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	listing, err := listingService().UpdateListing(c.Context(), principal, id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(listing)
}

func SubmitListing(c *fiber.Ctx) error {
	principal, err := utils.ExtractPrincipalFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid listing id"})
	}

	if err := listingService().SubmitListing(c.Context(), principal, id); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Listing submitted for verification"})
}

func MarkListingSold(c *fiber.Ctx) error {
	return markListing(c, models.StatusSold)
}

func MarkListingInactive(c *fiber.Ctx) error {
	return markListing(c, models.StatusInactive)
}

func markListing(c *fiber.Ctx, status string) error {
	principal, err := utils.ExtractPrincipalFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid listing id"})
	}

	if err := listingService().MarkListing(c.Context(), principal, id, status); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Listing status updated", "status": status})
}

func MyListings(c *fiber.Ctx) error {
	principal, err := utils.ExtractPrincipalFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	listings, err := listingService().MyListings(c.Context(), principal)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"listings": listings})
}
