package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appService "remindbot/internal/application/service"

	"remindbot/internal/config"
	"remindbot/internal/infrastructure/database/sqlite"
	"remindbot/internal/infrastructure/scheduler"
	"remindbot/internal/infrastructure/telegram"
	"remindbot/internal/interfaces/api/router"
	"remindbot/internal/interfaces/bot"
	appLogger "remindbot/internal/pkg/logger"

	_ "github.com/joho/godotenv/autoload" // Automatically load .env file
	"gorm.io/gorm"
)

func gracefulShutdown(
	apiServer *http.Server,
	tgClient *telegram.Client,
	tickScheduler *scheduler.Scheduler,
	db *gorm.DB,
	log appLogger.Logger,
	done chan bool,
) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	log.Info("Shutting down gracefully, press Ctrl+C again to force")

	// Stop consuming updates first so no new flows start.
	tgClient.Stop()

	// Let an in-flight tick finish rather than interrupt a partially
	// sent batch.
	log.Info("Stopping scheduler...")
	tickScheduler.Stop()

	log.Info("Closing database connection...")
	if err := sqlite.CloseDB(db); err != nil {
		log.Error("Error closing database", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err)
	}

	log.Info("Server exiting")
	done <- true
}

func main() {
	log := appLogger.New("")
	log.Info("Logger initialized.")

	cfg, err := config.New()
	if err != nil {
		log.Error("Failed to parse configuration", err)
		os.Exit(1)
	}

	// --- Infrastructure ---
	db, err := sqlite.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Error("Failed to initialize database", err)
		os.Exit(1)
	}
	userRepo := sqlite.NewUserRepository(db)
	reminderRepo := sqlite.NewReminderRepository(db)
	log.Info("Database and repositories initialized.")

	tgClient, err := telegram.NewClient(cfg.TelegramBotToken, cfg.NotifierTimeout, appLogger.New("telegram"))
	if err != nil {
		log.Error("Failed to create Telegram client", err)
		os.Exit(1)
	}

	// --- Application services ---
	sessions := appService.NewSessionStore(cfg.SessionTTL)
	userSvc := appService.NewUserService(userRepo, appLogger.New("user"))
	convSvc := appService.NewConversationService(reminderRepo, userSvc, sessions, appLogger.New("conversation"))
	dispatcherSvc := appService.NewDispatcherService(reminderRepo, tgClient, appLogger.New("dispatcher"))
	log.Info("Application services initialized.")

	// --- Dispatcher tick loop ---
	tickScheduler := scheduler.NewScheduler(appLogger.New("scheduler"))
	if err := tickScheduler.Start(cfg.TickInterval, func() {
		if err := dispatcherSvc.Tick(context.Background()); err != nil {
			log.Error("Dispatcher tick failed", err)
		}
	}); err != nil {
		log.Error("Failed to start scheduler", err)
		os.Exit(1)
	}

	// --- Telegram update loop ---
	handler := bot.NewHandler(tgClient, convSvc, appLogger.New("bot"))
	go handler.Run(context.Background())

	// --- Ops HTTP server ---
	echoRouter := router.NewRouter(&router.Config{DB: db, Logger: log})
	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      echoRouter,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, tgClient, tickScheduler, db, log, done)

	log.Info(fmt.Sprintf("Ops server starting on port %d", cfg.Port))
	if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("HTTP server ListenAndServe error", err)
		panic(fmt.Sprintf("http server error: %s", err))
	}

	<-done
	log.Info("Graceful shutdown complete.")
}
