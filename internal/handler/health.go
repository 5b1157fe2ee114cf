package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
)

// QuotaReader reports the YouTube quota units charged today.
type QuotaReader interface {
	Used(ctx context.Context) (int64, error)
}

type HealthHandler struct {
	rdb     *redis.Client
	quota   QuotaReader
	budget  int64
	version string
	startAt time.Time
}

func NewHealthHandler(rdb *redis.Client, quota QuotaReader, budget int64, version string) *HealthHandler {
	return &HealthHandler{
		rdb:     rdb,
		quota:   quota,
		budget:  budget,
		version: version,
		startAt: time.Now(),
	}
}

// Live handles GET /health/live (liveness probe).
func (h *HealthHandler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready handles GET /health/ready (readiness probe with dependency checks).
// Redis is optional: a missing client reports "disabled" and stays healthy.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	checks := make(fiber.Map)
	overallStatus := "healthy"

	redisCheck := checkRedis(ctx, h.rdb)
	checks["redis"] = redisCheck
	if redisCheck["status"] == "down" {
		overallStatus = "degraded"
	}

	if h.quota != nil && h.budget > 0 {
		quotaCheck := fiber.Map{"budget": h.budget}
		if used, err := h.quota.Used(ctx); err == nil {
			quotaCheck["used"] = used
			quotaCheck["status"] = "ok"
			if used >= h.budget {
				quotaCheck["status"] = "exhausted"
				overallStatus = "degraded"
			}
		} else {
			quotaCheck["status"] = "unknown"
		}
		checks["youtube_quota"] = quotaCheck
	}

	resp := fiber.Map{
		"status":         overallStatus,
		"checks":         checks,
		"uptime_seconds": int(time.Since(h.startAt).Seconds()),
		"version":        h.version,
	}

	status := fiber.StatusOK
	if overallStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(resp)
}

func checkRedis(ctx context.Context, rdb *redis.Client) fiber.Map {
	if rdb == nil {
		return fiber.Map{
			"status": "disabled",
		}
	}

	start := time.Now()
	err := rdb.Ping(ctx).Err()
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return fiber.Map{
			"status":     "down",
			"latency_ms": latency,
			"error":      "connection failed",
		}
	}
	return fiber.Map{
		"status":     "up",
		"latency_ms": latency,
	}
}
