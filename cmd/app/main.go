// File: cmd/app/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homework-status-bot/internal/config"
	"homework-status-bot/internal/domain/ports/adapter"
	"homework-status-bot/internal/infra/adapters/practicum"
	tele "homework-status-bot/internal/infra/adapters/telegram"
	httpapi "homework-status-bot/internal/infra/http"
	"homework-status-bot/internal/infra/logging"
	"homework-status-bot/internal/infra/metrics"
	"homework-status-bot/internal/infra/sched"
	"homework-status-bot/internal/usecase"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to optional YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (noop bot, console logs)")
	flag.Parse()

	envErr := godotenv.Load()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLog.Fatal().Err(err).Msg("config")
	}

	// ---- Logging ----
	baseLog, logCloser, err := logging.New(cfg.Log, cfg.Runtime.Dev)
	if err != nil {
		bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLog.Fatal().Err(err).Msg("logging")
	}
	defer logCloser.Close()

	ctx := logging.WithInstanceID(context.Background(), uuid.NewString())
	logger := logging.With(ctx, baseLog)
	if envErr != nil {
		logger.Debug().Msg("No .env file found, relying on environment variables")
	}

	// ---- Credentials ----
	// Nothing touches the network before this check passes.
	if missing := cfg.MissingCredentials(); len(missing) > 0 {
		logger.WithLevel(zerolog.FatalLevel).Strs("missing", missing).Msg("Отсутствуют необходимые переменные окружения")
		_ = logCloser.Close()
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error().Err(err).Msg("invalid configuration")
		_ = logCloser.Close()
		os.Exit(1)
	}
	logger.Info().
		Str("practicum_token", logging.Redact(cfg.Credentials.PracticumToken, cfg.Runtime.Dev)).
		Str("telegram_token", logging.Redact(cfg.Credentials.TelegramToken, cfg.Runtime.Dev)).
		Str("bot_mode", cfg.Bot.Mode).
		Str("version", version).
		Msg("credentials loaded")

	// ---- Metrics ----
	metrics.MustRegister(nil)
	metrics.SetBuildInfo(version, commit)

	// ---- Telegram ----
	var bot adapter.TelegramBotAdapter
	if cfg.Bot.Mode == "noop" {
		bot = tele.NewNoopBotAdapter(logger)
	} else {
		realBot, err := tele.NewRealTelegramBotAdapter(cfg.Credentials.TelegramToken, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("telegram")
		}
		bot = realBot
	}

	// ---- Homework API ----
	api, err := practicum.NewClient(cfg.Practicum.Endpoint, cfg.Credentials.PracticumToken, cfg.Practicum.Timeout, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("practicum client")
	}

	// ---- Use cases ----
	cursor := time.Now().Unix()
	if !cfg.Poll.AdvanceCursor {
		logger.Warn().Int64("from_date", cursor).Msg("poll cursor is fixed at startup; set poll.advance_cursor to move it after each cycle")
	}
	homeworkUC := usecase.NewHomeworkUseCase(api, cursor, cfg.Poll.AdvanceCursor, logger)
	notifUC := usecase.NewNotificationUseCase(bot, cfg.Credentials.TelegramChatID, logger)

	worker := sched.NewStatusWorker(cfg.Poll.RetryPeriod, homeworkUC, notifUC, logger)

	// ---- Graceful shutdown ----
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ---- Admin HTTP (health + metrics) ----
	var srv *httpapi.Server
	if cfg.Admin.Port > 0 {
		srv = httpapi.NewServer(cfg.Admin.Port, worker, nil, 2*cfg.Poll.RetryPeriod+cfg.Practicum.Timeout, logger)
		go func() {
			if err := srv.Start(); err != nil {
				logger.Error().Err(err).Msg("http server error")
			}
		}()
	}

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("status worker stopped")
	}
	logger.Info().Msg("shutdown requested")

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("http shutdown")
		}
	}
}
