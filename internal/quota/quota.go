// Package quota meters YouTube Data API quota units per Pacific-time day in
// Redis so the service refuses work before the upstream does.
package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/sukantabhun/socioyt-go/internal/apperr"
	"github.com/sukantabhun/socioyt-go/internal/metrics"
)

const (
	keyPrefix = "quota:youtube:"
	keyTTL    = 48 * time.Hour
)

// YouTube quota days roll over at midnight Pacific time.
var resetZone = loadResetZone()

func loadResetZone() *time.Location {
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		return time.UTC
	}
	return loc
}

// Connect opens a Redis client for redisURL. It returns nil when the URL is
// empty, invalid or unreachable; a nil client disables metering.
func Connect(ctx context.Context, redisURL string, logger zerolog.Logger) *redis.Client {
	if redisURL == "" {
		logger.Info().Msg("redis: no URL configured, quota metering disabled")
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("redis: invalid URL, quota metering disabled")
		return nil
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Msg("redis: connection failed, quota metering disabled")
		_ = rdb.Close()
		return nil
	}

	logger.Info().Msg("redis: connected, quota metering enabled")
	return rdb
}

// Meter charges quota units against a daily budget.
type Meter struct {
	rdb    *redis.Client
	budget int64
	logger zerolog.Logger
	now    func() time.Time
}

// NewMeter creates a Meter. A nil client or a zero budget makes every Charge a no-op.
func NewMeter(rdb *redis.Client, budget int64, logger zerolog.Logger) *Meter {
	return &Meter{
		rdb:    rdb,
		budget: budget,
		logger: logger,
		now:    time.Now,
	}
}

// Charge records units against today's budget. It fails with an upstream
// error once the budget is exceeded, and fails open when Redis errors.
func (m *Meter) Charge(ctx context.Context, units int64) error {
	if m == nil || m.rdb == nil || m.budget == 0 {
		return nil
	}

	key := m.key()
	used, err := m.rdb.IncrBy(ctx, key, units).Result()
	if err != nil {
		m.logger.Warn().Err(err).Str("key", key).Msg("quota: increment failed, continuing unmetered")
		return nil
	}
	if used == units {
		if err := m.rdb.Expire(ctx, key, keyTTL).Err(); err != nil {
			m.logger.Warn().Err(err).Str("key", key).Msg("quota: failed to set expiry")
		}
	}

	if used > m.budget {
		return apperr.Upstream("daily YouTube quota exhausted", nil).
			WithContext("used", used).
			WithContext("budget", m.budget)
	}

	metrics.QuotaUnitsSpent.Add(float64(units))
	return nil
}

// Used returns the units charged today.
func (m *Meter) Used(ctx context.Context) (int64, error) {
	if m == nil || m.rdb == nil {
		return 0, nil
	}
	used, err := m.rdb.Get(ctx, m.key()).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read quota usage: %w", err)
	}
	return used, nil
}

func (m *Meter) key() string {
	return keyPrefix + m.now().In(resetZone).Format("20060102")
}
