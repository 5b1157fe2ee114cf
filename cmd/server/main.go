package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/sukantabhun/socioyt-go/internal/config"
	"github.com/sukantabhun/socioyt-go/internal/handler"
	"github.com/sukantabhun/socioyt-go/internal/inference"
	"github.com/sukantabhun/socioyt-go/internal/metrics"
	"github.com/sukantabhun/socioyt-go/internal/middleware"
	"github.com/sukantabhun/socioyt-go/internal/quota"
	"github.com/sukantabhun/socioyt-go/internal/router"
	"github.com/sukantabhun/socioyt-go/internal/service"
	"github.com/sukantabhun/socioyt-go/internal/suggest"
	"github.com/sukantabhun/socioyt-go/internal/youtube"
)

const (
	serviceName     = "socioyt-api"
	version         = "1.0.0"
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	middleware.InitLogger(cfg.LogLevel, serviceName)
	log := middleware.Logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.Register(reg)

	rdb := quota.Connect(ctx, cfg.RedisURL, log)
	if rdb != nil {
		defer rdb.Close()
	}
	meter := quota.NewMeter(rdb, cfg.YouTubeDailyQuota, log)

	yt, err := youtube.New(ctx, youtube.Options{
		APIKey:      cfg.YouTubeAPIKey,
		Timeout:     cfg.UpstreamTimeout,
		MaxAttempts: cfg.UpstreamMaxAttempts,
		RPS:         cfg.UpstreamRPS,
		Quota:       meter,
		Logger:      log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create YouTube client")
	}

	channelSvc := service.NewChannelService(
		service.NewChannelResolver(yt, log),
		service.NewPlaylistPaginator(yt, log),
		service.NewBatchStatsFetcher(yt, cfg.FetchWorkers, log),
		cfg.TopN,
		log,
	)
	classifier := service.NewSentimentClassifier(
		inference.NewClient(cfg.SentimentModelURL, cfg.HFAPIToken, cfg.ModelTimeout),
		log,
	)
	videoSvc := service.NewVideoService(
		yt,
		classifier,
		suggest.NewGenerator(cfg.LLMAPIBase, cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.LLMTimeout, log),
		log,
	)

	lookupLimiter := middleware.NewLookupRateLimiter(cfg.LookupRateLimit)
	defer lookupLimiter.Stop()

	app := fiber.New(fiber.Config{
		AppName:      "SocioYT API",
		ServerHeader: "SocioYT",
		ErrorHandler: middleware.ErrorHandler,
	})
	router.Setup(app, &router.Handlers{
		Channel:       handler.NewChannelHandler(channelSvc),
		Video:         handler.NewVideoHandler(videoSvc),
		Health:        handler.NewHealthHandler(rdb, meter, cfg.YouTubeDailyQuota, version),
		Metrics:       handler.MetricsHandler(reg),
		LookupLimiter: lookupLimiter,
	}, cfg.CORSOrigins)

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().
		Str("port", cfg.Port).
		Str("env", cfg.Environment).
		Int("fetch_workers", cfg.FetchWorkers).
		Msg("server starting")
	if err := app.Listen(":"+cfg.Port, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
