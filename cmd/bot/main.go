package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/infra/config"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/practicum"
	"homework_status_bot/internal/infra/scheduler"
	"homework_status_bot/internal/infra/telegram"
)

func main() {
	fmt.Println("Homework Status Bot starting...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	baseLogger, closeLog := logger.New(cfg)
	mainLogger := baseLogger.WithField("component", "main")
	fatal := func(err error, msg string) {
		mainLogger.WithError(err).Error(msg)
		_ = closeLog()
		os.Exit(1)
	}
	mainLogger.Infof("Configuration loaded. LogLevel: %s, Environment: %s, Schedule: %s", cfg.LogLevel, cfg.Environment, cfg.PollSchedule)

	if missing := cfg.MissingCredentials(); len(missing) > 0 {
		for _, name := range missing {
			mainLogger.WithField("variable", name).Error("Required environment variable is not set")
		}
		if cfg.StrictConfig {
			fatal(fmt.Errorf("missing %v", missing), "Refusing to start with STRICT_CONFIG enabled")
		}
	}

	pollScheduler, err := scheduler.NewPollScheduler(cfg.PollSchedule, baseLogger.WithField("component", "scheduler"))
	if err != nil {
		fatal(err, "Could not parse poll schedule")
	}

	bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramAPIURL)
	if err != nil {
		fatal(err, "Could not create Telegram bot")
	}
	mainLogger.WithField("bot", bot.Me.Username).Info("Telegram bot initialized.")

	apiClient := practicum.NewClient(cfg.PracticumEndpoint, cfg.PracticumToken, practicum.WithTimeout(cfg.RequestTimeout))

	poller := app.NewPoller(
		apiClient,
		telegram.NewTelebotAdapter(bot),
		pollScheduler,
		cfg.TelegramChatID,
		time.Now().Unix(),
		baseLogger.WithField("component", "poller"),
	)

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	poller.Notify(app.StartupMessage)
	poller.Run(ctx) // Blocks until a signal is received

	mainLogger.Info("Application shut down gracefully.")
	if err := closeLog(); err != nil {
		log.Printf("ERROR: Could not close log file: %v", err)
	}
}
