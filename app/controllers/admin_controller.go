package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/propmitra/propmitra-backend/app/models"
	"github.com/propmitra/propmitra-backend/pkg/utils"
)

func PendingListings(c *fiber.Ctx) error {
	principal, err := utils.ExtractPrincipalFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	listings, err := listingService().PendingListings(c.Context(), principal)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"listings": listings})
}

func ApproveListing(c *fiber.Ctx) error {
	principal, err := utils.ExtractPrincipalFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid listing id"})
	}

	if err := listingService().ApproveListing(c.Context(), principal, id); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Listing approved", "status": models.StatusLive})
}

func RejectListing(c *fiber.Ctx) error {
	principal, err := utils.ExtractPrincipalFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid listing id"})
	}

	req := &models.RejectListingRequest{}
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := listingService().RejectListing(c.Context(), principal, id, req.Reason); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Listing rejected", "status": models.StatusRejected})
}
