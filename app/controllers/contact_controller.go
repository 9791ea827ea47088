package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/propmitra/propmitra-backend/app/queries"
	"github.com/propmitra/propmitra-backend/app/services"
	"github.com/propmitra/propmitra-backend/pkg/database"
	"github.com/propmitra/propmitra-backend/pkg/utils"
)

func contactService() *services.ContactService {
	return services.NewContactService(
		&queries.ListingQueries{DB: database.DB},
		&queries.UnlockQueries{DB: database.DB},
		&queries.UserQueries{DB: database.DB},
		utils.DefaultNotifier,
	)
}

// GetContactView serves the seller contact for a listing. Works without a
// token; an anonymous or not-yet-unlocked caller gets the masked phone.
func GetContactView(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid listing id"})
	}

	var userID *uuid.UUID
	if principal, err := utils.ExtractPrincipalFromHeader(c.Get("Authorization")); err == nil {
		userID = &principal.UserID
	}

	view, err := contactService().GetContactView(c.Context(), listingID, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(view)
}

// UnlockContact records a free unlock for the calling user.
func UnlockContact(c *fiber.Ctx) error {
	principal, err := utils.ExtractPrincipalFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	listingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid listing id"})
	}

	result, err := contactService().UnlockContact(c.Context(), listingID, principal.UserID)
	if err != nil {
		return respondError(c, err)
	}

	status := fiber.StatusCreated
	if result.AlreadyUnlocked {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(result)
}
