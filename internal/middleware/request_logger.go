package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"contacthub/internal/logger"
	"contacthub/internal/metrics"
)

// RequestLogger logs every request and records it in m. It resolves handler
// errors through the app's ErrorHandler first so the final status is known.
func RequestLogger(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().Config().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		elapsed := time.Since(start)
		route := c.Route().Path

		if m != nil {
			m.HTTPRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
			m.HTTPDuration.WithLabelValues(c.Method(), route).Observe(elapsed.Seconds())
		}

		logger.GetLogger().Infow("request",
			"method", c.Method(),
			"path", c.Path(),
			"route", route,
			"status", status,
			"duration_ms", elapsed.Milliseconds(),
			"remote_addr", c.IP(),
			"request_id", c.Locals("requestid"),
		)
		return nil
	}
}
