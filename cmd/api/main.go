package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/uniform-stock/internal/application/inventory"
	"github.com/jhoicas/uniform-stock/internal/application/report"
	"github.com/jhoicas/uniform-stock/internal/domain/invoice"
	"github.com/jhoicas/uniform-stock/internal/domain/repository"
	"github.com/jhoicas/uniform-stock/internal/infrastructure/blob"
	infraexcel "github.com/jhoicas/uniform-stock/internal/infrastructure/excel"
	"github.com/jhoicas/uniform-stock/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/uniform-stock/internal/infrastructure/pdf"
	"github.com/jhoicas/uniform-stock/internal/infrastructure/vision"
	httpRouter "github.com/jhoicas/uniform-stock/internal/interfaces/http"
	"github.com/jhoicas/uniform-stock/pkg/config"
	"github.com/jhoicas/uniform-stock/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("starting application")

	ctx := context.Background()

	blobs, cleanup, err := newBlobStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("blob storage")
	}
	defer cleanup()

	ledgerStore := inventory.NewLedgerStore(blobs, cfg.Storage.Key, log)
	inventoryUC := inventory.NewUseCase(ctx, ledgerStore, log)

	reportUC := report.NewUseCase(inventoryUC, map[string]report.Encoder{
		report.FormatExcel: infraexcel.NewReportEncoder(),
		report.FormatPDF:   infrapdf.NewReportEncoder(),
	})

	ocrService := vision.NewGoogleVisionService(cfg.Vision.APIKey, cfg.Vision.Endpoint)
	extractor := invoice.NewExtractor(invoice.DefaultVocabulary())
	collectors := metrics.New()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    12 * 1024 * 1024, // invoice photos up to 10MB plus form overhead
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Uniform Stock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Inventory: inventoryUC,
		Reports:   reportUC,
		OCR:       ocrService,
		Extractor: extractor,
		Metrics:   collectors,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}

// newBlobStore builds the configured BlobStore backend and a cleanup func
// for whatever connections it holds.
func newBlobStore(ctx context.Context, cfg *config.Config) (repository.BlobStore, func(), error) {
	noop := func() {}

	switch cfg.Storage.Driver {
	case "redis":
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store, err := blob.NewRedisStore(ctx, client, "uniform-stock:")
		if err != nil {
			_ = client.Close()
			return nil, noop, err
		}
		return store, func() { _ = client.Close() }, nil

	case "postgres":
		pool, err := blob.NewPool(ctx, cfg.DB.DSN())
		if err != nil {
			return nil, noop, err
		}
		store, err := blob.NewPostgresStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, noop, err
		}
		return store, pool.Close, nil

	default: // file
		store, err := blob.NewFileStore(cfg.Storage.Dir)
		return store, noop, err
	}
}
