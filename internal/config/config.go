package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

const maxFetchWorkers = 16

type Config struct {
	Port        string `env:"PORT" default:"8000"`
	LogLevel    string `env:"LOG_LEVEL" default:"info"`
	Environment string `env:"ENVIRONMENT" default:"development"`
	CORSOrigins string `env:"CORS_ORIGINS" default:"*"`
	RedisURL    string `env:"REDIS_URL"`

	YouTubeAPIKey       string        `env:"YOUTUBE_API_KEY"`
	YouTubeDailyQuota   int64         `env:"YOUTUBE_DAILY_QUOTA" default:"10000"`
	UpstreamTimeout     time.Duration `env:"UPSTREAM_TIMEOUT" default:"10s"`
	UpstreamMaxAttempts int           `env:"UPSTREAM_MAX_ATTEMPTS" default:"4"`
	UpstreamRPS         float64       `env:"UPSTREAM_RPS" default:"10"`
	FetchWorkers        int           `env:"FETCH_WORKERS" default:"6"`
	TopN                int           `env:"TOP_N" default:"10"`
	LookupRateLimit     int           `env:"LOOKUP_RATE_LIMIT" default:"30"`

	LLMAPIBase        string        `env:"LLM_API_BASE" default:"https://api.openai.com/v1"`
	OpenAIAPIKey      string        `env:"OPENAI_API_KEY"`
	OpenAIModel       string        `env:"OPENAI_MODEL" default:"gpt-4o-mini"`
	LLMTimeout        time.Duration `env:"LLM_TIMEOUT" default:"60s"`
	HFAPIToken        string        `env:"HF_API_TOKEN"`
	SentimentModelURL string        `env:"SENTIMENT_MODEL_URL" default:"https://api-inference.huggingface.co/models/nlptown/bert-base-multilingual-uncased-sentiment"`
	ModelTimeout      time.Duration `env:"MODEL_TIMEOUT" default:"30s"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.YouTubeAPIKey == "" {
		return errors.New("YOUTUBE_API_KEY is required")
	}
	if c.FetchWorkers < 1 || c.FetchWorkers > maxFetchWorkers {
		return fmt.Errorf("FETCH_WORKERS must be between 1 and %d, got %d", maxFetchWorkers, c.FetchWorkers)
	}
	if c.UpstreamMaxAttempts < 1 {
		return fmt.Errorf("UPSTREAM_MAX_ATTEMPTS must be at least 1, got %d", c.UpstreamMaxAttempts)
	}
	if c.UpstreamTimeout <= 0 {
		return errors.New("UPSTREAM_TIMEOUT must be positive")
	}
	if c.UpstreamRPS <= 0 {
		return errors.New("UPSTREAM_RPS must be positive")
	}
	if c.TopN < 1 {
		return fmt.Errorf("TOP_N must be at least 1, got %d", c.TopN)
	}
	if c.LookupRateLimit < 1 {
		return fmt.Errorf("LOOKUP_RATE_LIMIT must be at least 1, got %d", c.LookupRateLimit)
	}
	if c.ModelTimeout <= 0 {
		return errors.New("MODEL_TIMEOUT must be positive")
	}
	if c.LLMTimeout <= 0 {
		return errors.New("LLM_TIMEOUT must be positive")
	}
	if c.YouTubeDailyQuota < 0 {
		return errors.New("YOUTUBE_DAILY_QUOTA must not be negative")
	}
	return nil
}
