package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

// Headers the browser client may read on a cross-origin response. It reads
// the X-RateLimit-* values to hold back channel lookups until the window
// resets, and shows the request id when a failed analysis is reported.
var exposedHeaders = []string{
	RequestIDHeader,
	"X-RateLimit-Limit",
	"X-RateLimit-Remaining",
	"X-RateLimit-Reset",
}

// NewCORS allows read-only cross-origin access from corsOrigins, a
// comma-separated origin list where "*" or "" means any origin.
func NewCORS(corsOrigins string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:  parseOrigins(corsOrigins),
		AllowMethods:  []string{fiber.MethodGet, fiber.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", RequestIDHeader},
		ExposeHeaders: exposedHeaders,
		MaxAge:        86400,
	})
}

func parseOrigins(corsOrigins string) []string {
	if corsOrigins == "" || corsOrigins == "*" {
		return []string{"*"}
	}
	var origins []string
	for _, o := range strings.Split(corsOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
