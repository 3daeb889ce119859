package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"managerapi/internal/config"
	"managerapi/internal/database"
	"managerapi/internal/database/migration"
	handlers "managerapi/internal/http/handler"
	"managerapi/internal/http/middleware"
	"managerapi/internal/logger"
	"managerapi/internal/otel"
	"managerapi/internal/repository/postgres"
	"managerapi/internal/service"
	"managerapi/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// The reporter is the sidecar that aggregates managers into reports and
// writes report snapshots to object storage.
func main() {
	cfg := config.Load()
	loc := cfg.Location()
	log := logger.Setup(cfg.Log, loc, "reporter")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, "managerapi-reporter", log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Error().Err(err).Msg("tracing shutdown failed")
		}
	}()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Either binary may start first against a fresh database
	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}

	objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize object storage")
	}

	builder := service.NewReportBuilder(postgres.NewManagerPostgres(db), objStore, cfg.Report.Prefix)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register metrics")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})
	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(metrics.Handler())

	app.Get(middleware.MetricsPath, handlers.Metrics(reg))
	handlers.RegisterReporterRoutes(app, db, builder)

	addr := ":" + cfg.ReporterPort
	go func() {
		log.Info().Str("addr", addr).Msg("reporter listening")
		if err := app.Listen(addr); err != nil {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
