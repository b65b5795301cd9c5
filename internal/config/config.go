package config

import (
	"log/slog"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds runtime configuration for the meeting-notes server.
type Config struct {
	// Server
	Port           int           `env:"PORT" envDefault:"8080"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`

	// LLM
	LLMProvider  string `env:"LLM_PROVIDER" envDefault:"openai"` // "openai" (any OpenAI-compatible endpoint)
	LLMAPIKey    string `env:"LLM_API_KEY"`
	LLMBaseURL   string `env:"LLM_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	LLMModel     string `env:"LLM_MODEL" envDefault:"llama-3.1-70b-versatile"`
	LLMMaxTokens int64  `env:"LLM_MAX_TOKENS" envDefault:"1000"`

	// Notifications
	NotifyProvider string        `env:"NOTIFY_PROVIDER" envDefault:"log"` // "log" (placeholder) or "ses"
	NotifyDelay    time.Duration `env:"NOTIFY_DELAY" envDefault:"1s"`
	NotifyFrom     string        `env:"NOTIFY_FROM"`
	NotifySubject  string        `env:"NOTIFY_SUBJECT" envDefault:"Meeting summary"`
	AWSRegion      string        `env:"AWS_REGION" envDefault:"us-east-1"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}
