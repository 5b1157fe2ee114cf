package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/sukantabhun/socioyt-go/internal/handler"
	"github.com/sukantabhun/socioyt-go/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Channel       *handler.ChannelHandler
	Video         *handler.VideoHandler
	Health        *handler.HealthHandler
	Metrics       fiber.Handler
	LookupLimiter *middleware.RateLimiter
}

// Setup configures the middleware stack and all routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))

	app.Get("/", handler.Root)

	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	if h.Metrics != nil {
		app.Get("/metrics", h.Metrics)
	}

	if h.LookupLimiter != nil {
		app.Get("/channel/lookup", h.LookupLimiter.Handler(), h.Channel.Lookup)
	} else {
		app.Get("/channel/lookup", h.Channel.Lookup)
	}

	app.Get("/video/:video_id", h.Video.Analyze)
}
