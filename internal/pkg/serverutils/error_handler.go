package serverutils

import (
	"errors"

	"ai-assistant-client/internal/dto"
	"ai-assistant-client/internal/pkg/apperror"
	"ai-assistant-client/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// NewErrorHandler renders every error as a FastAPI-style {"detail": "..."} body.
func NewErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		detail := err.Error()

		var appErr *apperror.ApplicationError
		var validationErr *apperror.ValidationError
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &appErr):
			status, detail = appErr.Status, appErr.Message
		case errors.As(err, &validationErr):
			status = fiber.StatusUnprocessableEntity
		case errors.As(err, &fiberErr):
			status, detail = fiberErr.Code, fiberErr.Message
		}

		if status >= fiber.StatusInternalServerError {
			log.Error("HTTP", "Request failed", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"error":  err.Error(),
			})
		}
		return ctx.Status(status).JSON(dto.ErrorResponse{Detail: detail})
	}
}
