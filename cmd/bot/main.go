package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"am_summary_bot/internal/app"
	"am_summary_bot/internal/domain/observation"
	"am_summary_bot/internal/domain/school"
	"am_summary_bot/internal/domain/summary"
	"am_summary_bot/internal/infra/config"
	idb "am_summary_bot/internal/infra/database"
	"am_summary_bot/internal/infra/logger"
	"am_summary_bot/internal/infra/memstore"
	"am_summary_bot/internal/infra/scheduler"
	"am_summary_bot/internal/infra/telegram"

	"gopkg.in/telebot.v3"
)

func main() {
	fmt.Println("AM Summary Bot starting...")

	mainLogger := log.New(os.Stdout, "MAIN: ", log.LstdFlags|log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		mainLogger.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	baseLogger := logger.Log.WithField("app", "am_summary_bot")
	mainLogger.Printf("INFO: Configuration loaded. LogLevel: %s, Environment: %s, Trainer ID: %d, Storage: %s",
		cfg.LogLevel, cfg.Environment, cfg.TrainerTelegramID, cfg.StorageBackend)

	// Initialize Repositories
	var obsRepo observation.Repository
	var schoolRepo school.Repository
	var sentRepo summary.SentRepository

	switch cfg.StorageBackend {
	case "postgres":
		db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
		if err != nil {
			mainLogger.Fatalf("FATAL: Could not connect to database: %v", err)
		}
		defer db.Close()
		mainLogger.Println("INFO: Database connection established successfully.")

		obsRepo = idb.NewPostgresObservationRepository(db, baseLogger.WithField("repo", "observations"))
		schoolRepo = idb.NewPostgresSchoolRepository(db)
		sentRepo = idb.NewPostgresSentRepository(db)
	case "memory":
		store := memstore.NewStore()
		obsRepo = memstore.NewObservationRepository(store, baseLogger.WithField("repo", "observations"))
		schoolRepo = memstore.NewSchoolRepository()
		sentRepo = memstore.NewSentRepository(store)
		mainLogger.Println("INFO: In-memory storage backend initialized (data is not durable).")
	}
	mainLogger.Println("INFO: Repositories initialized.")

	// Initialize application services
	summaryService := app.NewSummaryService(
		obsRepo,
		schoolRepo,
		sentRepo,
		baseLogger.WithField("service", "summary"),
		app.PersistFailurePolicy(cfg.OnPersistFailure),
	)
	schoolAdminService := app.NewSchoolAdminService(schoolRepo, cfg.TrainerTelegramID)
	mainLogger.Println("INFO: Application services initialized.")

	// Initialize Telegram Bot
	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) { // Global error handler
			log.Printf("ERROR (telebot): %v", err)
			if c != nil && c.Sender() != nil && c.Chat() != nil {
				log.Printf("ERROR (telebot context): Message: %s, Sender: %d, Chat: %d", c.Text(), c.Sender().ID, c.Chat().ID)
			}
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		mainLogger.Fatalf("FATAL: Could not create Telegram bot: %v", err)
	}

	// Register Handlers
	ctx := context.Background()
	telegram.RegisterTrainerHandlers(ctx, bot, summaryService, cfg.TrainerTelegramID, cfg.TrainerName, baseLogger)
	telegram.RegisterSchoolAdminHandlers(ctx, bot, schoolAdminService, baseLogger)
	mainLogger.Println("INFO: Command handlers registered.")

	// Initialize the month-end nudge scheduler
	schedulerLogger := log.New(os.Stdout, "SCHEDULER: ", log.LstdFlags|log.Lshortfile)
	nudgeScheduler := scheduler.NewNudgeScheduler(
		summaryService,
		telegram.NewTelebotAdapter(bot),
		cfg.TrainerTelegramID,
		schedulerLogger,
		cfg.CronSpecNudge,
	)
	nudgeScheduler.Start()

	mainLogger.Println("INFO: Application setup complete. Bot and scheduler are starting...")

	// Start bot in a goroutine so it doesn't block graceful shutdown handling
	go bot.Start()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	mainLogger.Println("INFO: Shutting down application...")
	nudgeScheduler.Stop()
	mainLogger.Println("INFO: Application shut down gracefully.")
}
