package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"catalog/internal/config"
	"catalog/internal/handlers"
	"catalog/internal/middleware"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/pkg/database"
	"catalog/pkg/logger"
	"catalog/pkg/rabbitmq"
	"catalog/pkg/tracing"
)

const shutdownTimeout = 10 * time.Second

// NewApp wires the product routes, health check and metrics onto a new Fiber app.
// events may be nil, in which case product events are not published.
func NewApp(cfg *config.Config, db *gorm.DB, events handlers.EventPublisher) *fiber.App {
	productRepo := repositories.NewTracingProductRepository(repositories.NewGORMProductRepository(db))
	productService := services.NewProductService(productRepo)

	productHandler := handlers.NewProductHandler(productService, events)
	healthHandler := handlers.NewHealthHandler(func(ctx context.Context) error {
		return database.Ping(ctx, db)
	})

	app := fiber.New(fiber.Config{
		AppName:               cfg.ServiceName,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(middleware.Tracing(cfg.ServiceName))
	app.Use(middleware.RequestLogger())

	healthHandler.RegisterRoutes(app)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	productHandler.RegisterRoutes(app)

	return app
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("catalog", false)
		logger.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.ServiceName, cfg.LogPretty)
	logger.SetLevel(cfg.LogLevel)

	ctx := context.Background()

	tp, err := tracing.Init(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracing")
	}

	db, err := database.Open(database.Config{Driver: cfg.DBDriver, DSN: cfg.DatabaseDSN}, &models.Product{})
	if err != nil {
		logger.Logger.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("Failed to open database")
	}

	var events handlers.EventPublisher
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to initialize RabbitMQ client")
		}
		events = mqClient

		if err := mqClient.ConsumeProductEvents(rabbitmq.LogProductEvent); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to start product event consumer")
		}
	} else {
		logger.Logger.Info().Msg("RABBITMQ_URL is empty, product events are disabled")
	}

	app := NewApp(cfg, db, events)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Logger.Info().Str("port", cfg.AppPort).Msg("Starting server")
		if err := app.Listen(cfg.AppPort); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	<-quit
	logger.Logger.Info().Msg("Shutting down server...")

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Logger.Error().Err(err).Msg("Error during Fiber shutdown")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := tp.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("Error shutting down tracer provider")
	}

	if mqClient != nil {
		if err := mqClient.Close(); err != nil {
			logger.Logger.Error().Err(err).Msg("Error closing RabbitMQ client")
		}
	}

	if err := database.Close(db); err != nil {
		logger.Logger.Error().Err(err).Msg("Error closing database")
	}

	logger.Logger.Info().Msg("Server gracefully stopped")
}
