package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/propmitra/propmitra-backend/app/queries"
	"github.com/propmitra/propmitra-backend/pkg/database"
	"github.com/propmitra/propmitra-backend/pkg/utils"
)

func UserProfile(c *fiber.Ctx) error {
	principal, err := utils.ExtractPrincipalFromHeader(c.Get("Authorization"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	userQueries := queries.UserQueries{DB: database.DB}
	user, err := userQueries.GetUserByID(c.Context(), principal.UserID)
	if err != nil {
		return respondError(c, err)
	}

	user.PasswordHash = ""

	return c.Status(fiber.StatusOK).JSON(user)
}
