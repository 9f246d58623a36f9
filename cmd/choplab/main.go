package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"choplab/internal/bot"
	"choplab/internal/config"
	"choplab/internal/models/auth"
	"choplab/internal/repository"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := initLogger(cfg.Level())
	logger.Debug("config loaded", slog.String("config", cfg.String()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dir, verifier := auth.Defaults()
	if cfg.DBConnectionString != "" {
		repo, err := repository.New(ctx, cfg, logger)
		if err != nil {
			logger.Error("failed to connect to storage", slog.Any("error", err))
			os.Exit(1)
		}
		defer repo.Close()
		dir = repo
	}

	api, err := bot.NewAPI(cfg, logger)
	if err != nil {
		logger.Error("failed to connect to telegram", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("starting bot", slog.String("account", api.Self.UserName))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		api.StopReceivingUpdates()
	}()

	bot.New(api, dir, verifier, logger).Start(ctx, updates)
	logger.Info("bot stopped")
}

func initLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(
		os.Stdout,
		&slog.HandlerOptions{
			Level: level,
		},
	))
}
