package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/rela-go-api/internal/config"
	"github.com/noah-isme/rela-go-api/internal/database"
	"github.com/noah-isme/rela-go-api/internal/handler"
	"github.com/noah-isme/rela-go-api/internal/middleware"
	"github.com/noah-isme/rela-go-api/internal/models"
	"github.com/noah-isme/rela-go-api/internal/repository"
	"github.com/noah-isme/rela-go-api/internal/router"
	"github.com/noah-isme/rela-go-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Organization{},
		&models.Volunteer{},
		&models.Membership{},
		&models.HourLog{},
		&models.Event{},
		&models.EventApplication{},
		&models.Attendance{},
		&models.ComplianceRequirement{},
		&models.ComplianceDocument{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	validate := validator.New(validator.WithRequiredStructEnabled())

	hourLogRepo := repository.NewHourLogRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	eventRepo := repository.NewEventRepository(db)
	complianceRepo := repository.NewComplianceRepository(db)

	metricsService := service.NewMetricsService(hourLogRepo, membershipRepo, eventRepo, complianceRepo, logger)
	metricsHandler := handler.NewMetricsHandler(metricsService, redisClient, cfg.MetricsCacheTTL, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		MetricsHandler: metricsHandler,
		JWTMiddleware:  middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app, cfg)
}

func waitForShutdown(app *fiber.App, cfg config.Config) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
