package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/habithack/habithack/internal/config"
	"github.com/habithack/habithack/internal/logger"
	"github.com/habithack/habithack/internal/metrics"
	"github.com/habithack/habithack/internal/session"
	"github.com/habithack/habithack/internal/storage"
	"github.com/habithack/habithack/internal/telegram"
	"github.com/habithack/habithack/internal/tracker"
)

var configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Setup logging with level support
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("Configuration loaded from %s", *configPath)

	// Initialize the event log and user registry
	eventLog, err := storage.NewCSVLog(cfg.Storage.LogPath)
	if err != nil {
		logger.Fatal("Failed to initialize event log: %v", err)
	}
	registry, err := storage.NewFileRegistry(cfg.Storage.UsersPath)
	if err != nil {
		logger.Fatal("Failed to initialize user registry: %v", err)
	}

	// Initialize the tracker core
	sessions := session.NewManager()
	core := tracker.New(eventLog, sessions, cfg.Session.StrictCategories)

	// Initialize the Telegram transport
	bot, err := telegram.NewBot(cfg.Telegram.BotToken, core, registry, telegram.Options{
		AdminUsername: cfg.Telegram.AdminUsername,
		UpdateTimeout: cfg.Telegram.UpdateTimeout,
		SendRate:      cfg.Telegram.SendRate,
		SendBurst:     cfg.Telegram.SendBurst,
		RetryDelay:    cfg.Telegram.RetryDelay,
		ReminderText:  cfg.Reminder.Message,
		LogPath:       eventLog.Path(),
	})
	if err != nil {
		logger.Fatal("Failed to initialize Telegram bot: %v", err)
	}
	logger.Info("Telegram bot initialized successfully")

	// Liveness and metrics endpoint
	metrics.StartServer(cfg.Server.Addr)
	logger.Info("Liveness endpoint listening on %s", cfg.Server.Addr)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, cleaning up...")
		cancel()
	}()

	// Reminder broadcast loop
	if cfg.Reminder.Enabled {
		logger.Info("Reminder broadcast enabled (interval: %v)", cfg.Reminder.Interval)
		go reminderLoop(ctx, bot, cfg.Reminder.Interval)
	} else {
		logger.Debug("Reminder broadcast disabled")
	}

	// Consume updates until shutdown
	bot.Run(ctx)
	logger.Info("Service stopped")
}

func reminderLoop(ctx context.Context, bot *telegram.Bot, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			bot.Broadcast(ctx)
		}
	}
}
