package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/openai/openai-go/v3"

	"meeting-notes/internal/config"
	"meeting-notes/internal/llm"
	"meeting-notes/internal/logger"
	"meeting-notes/internal/metrics"
	"meeting-notes/internal/notify"
	"meeting-notes/internal/summarize"
)

// Deps bundles common runtime dependencies for the server.
type Deps struct {
	Config     config.Config
	Log        *slog.Logger
	Metrics    *metrics.Recorder
	Summarizer *summarize.Service
	Notifier   *notify.Service
}

// Build loads env, config, and shared components. A missing .env file is not an error.
func Build(ctx context.Context) (Deps, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Deps{}, fmt.Errorf("failed to load environment variables: %w", err)
	}
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)
	rec := metrics.New()

	llmClient, err := buildLLM(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize LLM: %w", err)
	}
	sender, err := buildSender(ctx, cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize notifier: %w", err)
	}
	return Deps{
		Config:     cfg,
		Log:        log,
		Metrics:    rec,
		Summarizer: summarize.NewService(llmClient, cfg.LLMMaxTokens, rec),
		Notifier:   notify.NewService(sender, rec, log),
	}, nil
}

func buildLLM(cfg config.Config, log *slog.Logger) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		if cfg.LLMAPIKey == "" {
			return nil, fmt.Errorf("LLM_API_KEY is required when LLM_PROVIDER=openai")
		}
		client, err := llm.NewOpenAIClient(cfg.LLMAPIKey, cfg.LLMBaseURL, openai.ChatModel(cfg.LLMModel))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
		}
		log.Info("using OpenAI-compatible LLM client", "model", cfg.LLMModel, "base_url", cfg.LLMBaseURL)
		return client, nil
	default:
		return nil, fmt.Errorf("invalid LLM_PROVIDER: %s (valid option: openai)", cfg.LLMProvider)
	}
}

func buildSender(ctx context.Context, cfg config.Config, log *slog.Logger) (notify.Sender, error) {
	switch cfg.NotifyProvider {
	case "log":
		log.Info("using placeholder notifier", "delay", cfg.NotifyDelay)
		return notify.NewLogSender(log, cfg.NotifyDelay), nil
	case "ses":
		if cfg.NotifyFrom == "" {
			return nil, fmt.Errorf("NOTIFY_FROM is required when NOTIFY_PROVIDER=ses")
		}
		client, err := notify.NewSESClient(ctx, cfg.AWSRegion)
		if err != nil {
			return nil, err
		}
		log.Info("using SES notifier", "region", cfg.AWSRegion, "from", cfg.NotifyFrom)
		return notify.NewSESSender(client, cfg.NotifyFrom, cfg.NotifySubject, log)
	default:
		return nil, fmt.Errorf("invalid NOTIFY_PROVIDER: %s (valid options: log, ses)", cfg.NotifyProvider)
	}
}
