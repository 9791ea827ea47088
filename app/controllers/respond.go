package controllers

import (
	"github.com/gofiber/fiber/v2"
	apperrors "github.com/propmitra/propmitra-backend/pkg/errors"
	"github.com/propmitra/propmitra-backend/pkg/logger"
	"go.uber.org/zap"
)

// respondError maps a service error kind to its HTTP status and a stable
// caller-facing message.
func respondError(c *fiber.Ctx, err error) error {
	status := apperrors.HTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		logger.L().Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": apperrors.Message(err)})
}
