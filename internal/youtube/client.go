// Package youtube wraps the YouTube Data API v3 service with the resilience
// every list call needs: a client-side throttle, daily quota accounting, a
// circuit breaker, per-attempt timeouts and exponential retry.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/sukantabhun/socioyt-go/internal/apperr"
	"github.com/sukantabhun/socioyt-go/internal/metrics"
	"github.com/sukantabhun/socioyt-go/internal/model"
)

var (
	channelParts  = []string{"snippet", "contentDetails", "statistics"}
	playlistParts = []string{"contentDetails"}
	videoParts    = []string{"snippet", "statistics"}
)

// Charger accounts quota units before each upstream attempt.
type Charger interface {
	Charge(ctx context.Context, units int64) error
}

type noopCharger struct{}

func (noopCharger) Charge(context.Context, int64) error { return nil }

// Options configures a Client.
type Options struct {
	APIKey         string
	Timeout        time.Duration
	MaxAttempts    int
	RPS            float64
	InitialBackoff time.Duration
	Quota          Charger
	Logger         zerolog.Logger
	// ClientOptions are appended after the API key, e.g. an endpoint override.
	ClientOptions []option.ClientOption
}

// Client issues channels.list, playlistItems.list and videos.list calls.
// It is safe for concurrent use.
type Client struct {
	svc            *yt.Service
	limiter        *rate.Limiter
	breaker        *gobreaker.CircuitBreaker
	quota          Charger
	timeout        time.Duration
	maxAttempts    int
	initialBackoff time.Duration
	logger         zerolog.Logger
}

// New creates a Client.
func New(ctx context.Context, opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, errors.New("youtube: API key is required")
	}

	clientOpts := append([]option.ClientOption{option.WithAPIKey(opts.APIKey)}, opts.ClientOptions...)
	svc, err := yt.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("youtube.NewService: %w", err)
	}

	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	if opts.RPS <= 0 {
		opts.RPS = 10
	}
	if opts.InitialBackoff <= 0 {
		opts.InitialBackoff = 500 * time.Millisecond
	}
	if opts.Quota == nil {
		opts.Quota = noopCharger{}
	}

	c := &Client{
		svc:            svc,
		limiter:        rate.NewLimiter(rate.Limit(opts.RPS), int(math.Max(1, math.Ceil(opts.RPS)))),
		quota:          opts.Quota,
		timeout:        opts.Timeout,
		maxAttempts:    opts.MaxAttempts,
		initialBackoff: opts.InitialBackoff,
		logger:         opts.Logger,
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "youtube",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 && counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: healthyResponse,
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.BreakerState.Set(float64(to))
			c.logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("youtube: circuit breaker state changed")
		},
	})
	return c, nil
}

// ListChannels looks up channels by handle, legacy username or id.
func (c *Client) ListChannels(ctx context.Context, mode model.LookupMode, value string) ([]*yt.Channel, error) {
	return do(ctx, c, "channels.list", func(ctx context.Context) ([]*yt.Channel, error) {
		call := c.svc.Channels.List(channelParts)
		switch mode {
		case model.LookupByHandle:
			call = call.ForHandle(value)
		case model.LookupByUsername:
			call = call.ForUsername(value)
		default:
			call = call.Id(value)
		}
		resp, err := call.Context(ctx).Do()
		if err != nil {
			return nil, err
		}
		return resp.Items, nil
	})
}

// ListPlaylistItems fetches one page of a playlist. An empty pageToken
// requests the first page.
func (c *Client) ListPlaylistItems(ctx context.Context, playlistID, pageToken string, pageSize int64) (*yt.PlaylistItemListResponse, error) {
	return do(ctx, c, "playlistItems.list", func(ctx context.Context) (*yt.PlaylistItemListResponse, error) {
		call := c.svc.PlaylistItems.List(playlistParts).
			PlaylistId(playlistID).
			MaxResults(pageSize)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		return call.Context(ctx).Do()
	})
}

// ListVideos fetches snippet and statistics for up to 50 ids.
func (c *Client) ListVideos(ctx context.Context, ids []string) ([]*yt.Video, error) {
	return do(ctx, c, "videos.list", func(ctx context.Context) ([]*yt.Video, error) {
		resp, err := c.svc.Videos.List(videoParts).Id(ids...).Context(ctx).Do()
		if err != nil {
			return nil, err
		}
		return resp.Items, nil
	})
}

func do[T any](ctx context.Context, c *Client, op string, call func(context.Context) (T, error)) (T, error) {
	attempt := 0
	operation := func() (T, error) {
		var zero T
		attempt++
		if attempt > 1 {
			metrics.UpstreamRetries.WithLabelValues(op).Inc()
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return zero, backoff.Permanent(err)
		}
		if err := c.quota.Charge(ctx, 1); err != nil {
			return zero, backoff.Permanent(err)
		}

		res, err := c.breaker.Execute(func() (any, error) {
			attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
			defer cancel()

			start := time.Now()
			res, err := call(attemptCtx)
			metrics.UpstreamDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
			return res, err
		})
		if err != nil {
			classified := c.classify(ctx, op, err)
			c.logger.Debug().Err(err).Str("operation", op).Int("attempt", attempt).Msg("youtube: attempt failed")
			return zero, classified
		}

		metrics.UpstreamCalls.WithLabelValues(op, "ok").Inc()
		return res.(T), nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.initialBackoff
	bo.MaxInterval = 5 * time.Second

	res, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(uint(c.maxAttempts)),
		backoff.WithMaxElapsedTime(time.Duration(c.maxAttempts)*(c.timeout+bo.MaxInterval)),
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, ctxErr
		}
		return res, err
	}
	return res, nil
}

// classify turns a raw attempt error into an apperr, marking it permanent
// when retrying cannot help.
func (c *Client) classify(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		metrics.UpstreamCalls.WithLabelValues(op, "cancelled").Inc()
		return backoff.Permanent(ctxErr)
	}

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		metrics.UpstreamCalls.WithLabelValues(op, "breaker_open").Inc()
		return backoff.Permanent(apperr.Upstream(op+": circuit open", err))
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch {
		case gerr.Code == http.StatusNotFound:
			metrics.UpstreamCalls.WithLabelValues(op, "not_found").Inc()
			return backoff.Permanent(apperr.NotFound(op + ": resource not found"))
		case isQuotaExceeded(gerr):
			metrics.UpstreamCalls.WithLabelValues(op, "quota_exceeded").Inc()
			return backoff.Permanent(apperr.Upstream("YouTube quota exceeded", err))
		case isRetryableStatus(gerr.Code) || isRateLimited(gerr):
			metrics.UpstreamCalls.WithLabelValues(op, "retryable").Inc()
			return apperr.Upstream(fmt.Sprintf("%s: status %d", op, gerr.Code), err)
		default:
			metrics.UpstreamCalls.WithLabelValues(op, "rejected").Inc()
			return backoff.Permanent(apperr.Upstream(fmt.Sprintf("%s: status %d", op, gerr.Code), err))
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		metrics.UpstreamCalls.WithLabelValues(op, "timeout").Inc()
		return apperr.Upstream(op+": timed out", err)
	}

	metrics.UpstreamCalls.WithLabelValues(op, "transport").Inc()
	return apperr.Upstream(op+": transport failure", err)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

func isQuotaExceeded(gerr *googleapi.Error) bool {
	if gerr.Code != http.StatusForbidden {
		return false
	}
	for _, item := range gerr.Errors {
		switch item.Reason {
		case "quotaExceeded", "dailyLimitExceeded":
			return true
		}
	}
	return false
}

func isRateLimited(gerr *googleapi.Error) bool {
	if gerr.Code != http.StatusForbidden {
		return false
	}
	for _, item := range gerr.Errors {
		switch item.Reason {
		case "rateLimitExceeded", "userRateLimitExceeded":
			return true
		}
	}
	return false
}

// healthyResponse reports whether err says nothing about upstream health.
// Missing resources and rejected requests should not trip the breaker.
func healthyResponse(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code >= 400 && gerr.Code < 500 &&
			!isRetryableStatus(gerr.Code) && !isQuotaExceeded(gerr) && !isRateLimited(gerr)
	}
	return false
}
