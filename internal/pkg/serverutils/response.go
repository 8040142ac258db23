package serverutils

import (
	"notes-app/internal/dto"

	"github.com/gofiber/fiber/v2"
)

func ErrorResponse(message string) dto.ErrorResponse {
	return dto.ErrorResponse{Error: message}
}

// JSON writes status and body in one call.
func JSON(ctx *fiber.Ctx, status int, body interface{}) error {
	return ctx.Status(status).JSON(body)
}
