package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/bikeshare/dashboard/internal/config"
	"github.com/bikeshare/dashboard/internal/delivery/http"
	"github.com/bikeshare/dashboard/internal/logging"
	"github.com/bikeshare/dashboard/internal/metrics"
	"github.com/bikeshare/dashboard/internal/render"
	"github.com/bikeshare/dashboard/internal/repository/flatfile"
	"github.com/bikeshare/dashboard/internal/repository/postgres"
	"github.com/bikeshare/dashboard/internal/service"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	// Data source: Postgres when configured, the flat file otherwise
	var source service.RentalSource
	if cfg.UsePostgres() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err == nil {
			err = pool.Ping(ctx)
		}
		cancel()
		if err != nil {
			slog.Error("could not connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer pool.Close()
		source = postgres.NewPostgresRepository(pool)
		slog.Info("connected to PostgreSQL")
	} else {
		source = flatfile.NewRepository(cfg.DataPath, cfg.DataBaseDir, cfg.DataSheet)
	}

	// Dependency Injection: Services
	recorder := metrics.NewRecorder()
	cache := service.NewDatasetCache(source, recorder)
	reportSvc := service.NewReportService(cache, recorder, cfg.Variant())
	renderer := render.NewRenderer(cfg.ChartWidth, cfg.ChartHeight, recorder)

	// Warm the cache; a missing dataset is reported on every request instead
	if _, err := cache.Get(context.Background()); err != nil {
		slog.Warn("dataset not loaded at startup", slog.String("source", source.Describe()), slog.String("error", err.Error()))
	}

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "Bike Rental Dashboard v1.0",
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: http.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Routes
	http.SetupRoutes(app, reportSvc, renderer, recorder)

	// Graceful shutdown
	go func() {
		slog.Info("server starting", slog.String("port", cfg.Port), slog.String("source", source.Describe()))
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}
	slog.Info("server exited gracefully")
}
