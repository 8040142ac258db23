package serverutils

import (
	"errors"

	"notes-app/internal/pkg/apperror"
	"notes-app/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

const errorHandlerModule = "ErrorHandler"

// ErrorHandler maps error kinds onto status codes. Bodies always have the
// shape {"error": "..."} and carry the sentinel's message, never the
// wrapped detail.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		status, message := classify(err)

		if status >= fiber.StatusInternalServerError {
			log.Error(errorHandlerModule, "Unhandled error", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"error":  err.Error(),
			})
		}

		return JSON(ctx, status, ErrorResponse(message))
	}
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return fiber.StatusBadRequest, apperror.ErrValidation.Error()
	case errors.Is(err, apperror.ErrMalformedBody):
		return fiber.StatusBadRequest, apperror.ErrMalformedBody.Error()
	case errors.Is(err, apperror.ErrNotFound):
		return fiber.StatusNotFound, apperror.ErrNotFound.Error()
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		if fiberErr.Code == fiber.StatusNotFound {
			return fiberErr.Code, apperror.ErrNotFound.Error()
		}
		return fiberErr.Code, fiberErr.Message
	}

	return fiber.StatusInternalServerError, "internal server error"
}
