package middleware

import (
	"time"

	"catalog/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger is a Fiber middleware writing one structured log line per request.
// 5xx responses are logged at error level and 4xx at warn.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()
		if err != nil {
			// Let the app's error handler pick the status before we read it.
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		duration := time.Since(start)
		status := c.Response().StatusCode()

		log := logger.WithContext(c.UserContext())
		event := log.Info()
		if status >= fiber.StatusInternalServerError {
			event = log.Error()
		} else if status >= fiber.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", duration).
			Str("ip", c.IP()).
			Str("request_id", c.Get(fiber.HeaderXRequestID)).
			Err(err).
			Msg("Request completed")

		return nil
	}
}
