package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"contacthub/internal/config"
)

// CORS allows every origin in development and only cfg.AllowedOrigins in production.
func CORS(cfg *config.Config) fiber.Handler {
	corsConfig := cors.Config{
		AllowOrigins: "*",
		AllowMethods: strings.Join([]string{
			fiber.MethodGet,
			fiber.MethodPost,
			fiber.MethodDelete,
			fiber.MethodOptions,
		}, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		MaxAge:       12 * 60 * 60,
	}
	if cfg.IsProduction() && len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = strings.Join(cfg.AllowedOrigins, ",")
	}
	return cors.New(corsConfig)
}
