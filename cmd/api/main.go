package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/pantau-go-api/internal/config"
	"github.com/noah-isme/pantau-go-api/internal/database"
	"github.com/noah-isme/pantau-go-api/internal/handler"
	"github.com/noah-isme/pantau-go-api/internal/middleware"
	"github.com/noah-isme/pantau-go-api/internal/repository"
	"github.com/noah-isme/pantau-go-api/internal/router"
	"github.com/noah-isme/pantau-go-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	var (
		studentRepo      repository.StudentRepository
		interventionRepo repository.InterventionRepository
		dailyLogRepo     repository.DailyLogRepository
	)

	if cfg.UsesMemoryStore() {
		logger.Warn().Msg("no database configured, using in-process store")
		store := repository.NewMemoryStore()
		studentRepo = store.Students()
		interventionRepo = store.Interventions()
		dailyLogRepo = store.DailyLogs()
	} else {
		db, err := database.ConnectPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		if err := database.Migrate(db); err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}
		studentRepo = repository.NewStudentRepository(db)
		interventionRepo = repository.NewInterventionRepository(db)
		dailyLogRepo = repository.NewDailyLogRepository(db)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	var natsConn *nats.Conn
	if cfg.NATSUrl != "" {
		natsConn, err = nats.Connect(cfg.NATSUrl)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Drain()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	statusCache := service.NewStatusCache(redisClient, cfg.StatusCacheTTL, logger)
	notifier := service.NewNotifier(cfg.WebhookURL, cfg.WebhookTimeout, natsConn, cfg.NATSSubject, logger)

	checkInService := service.NewCheckInService(studentRepo, interventionRepo, dailyLogRepo, notifier, statusCache, validate, logger)
	statusService := service.NewStudentStatusService(studentRepo, interventionRepo, statusCache, logger)
	interventionService := service.NewInterventionService(studentRepo, interventionRepo, statusCache, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, router.Dependencies{
		CheckInHandler:      handler.NewCheckInHandler(checkInService, logger),
		StudentHandler:      handler.NewStudentHandler(statusService, logger),
		InterventionHandler: handler.NewInterventionHandler(interventionService, logger),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
