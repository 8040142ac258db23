package serverutils

import (
	"time"

	"notes-app/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger logs one line per request after the handler chain (and the
// error handler) has produced a status.
func RequestLogger(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()

		chainErr := ctx.Next()
		if chainErr != nil {
			if err := ctx.App().ErrorHandler(ctx, chainErr); err != nil {
				_ = ctx.SendStatus(fiber.StatusInternalServerError)
			}
		}

		log.Info("HTTP", "request", map[string]interface{}{
			"method":     ctx.Method(),
			"path":       ctx.Path(),
			"status":     ctx.Response().StatusCode(),
			"latency_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}
}
