package main

// docs/swagger.json is generated from the handler annotations; rerun after changing them:
//
//go:generate swag init -g main.go -d .,../../internal/interfaces/http,../../internal/application/dto -o ../../docs --outputTypes json

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	"github.com/kdevnel/device-portal/internal/application/admin"
	appanalytics "github.com/kdevnel/device-portal/internal/application/analytics"
	"github.com/kdevnel/device-portal/internal/application/quote"
	"github.com/kdevnel/device-portal/internal/application/usecase"
	"github.com/kdevnel/device-portal/internal/domain/repository"
	"github.com/kdevnel/device-portal/internal/infrastructure/memory"
	infrapdf "github.com/kdevnel/device-portal/internal/infrastructure/pdf"
	"github.com/kdevnel/device-portal/internal/infrastructure/postgres"
	httpRouter "github.com/kdevnel/device-portal/internal/interfaces/http"
	"github.com/kdevnel/device-portal/pkg/config"
	"github.com/kdevnel/device-portal/pkg/logger"
)

// repositories the storage adapters selected by STORAGE_DRIVER.
type repositories struct {
	devices   repository.DeviceRepository
	quotes    repository.QuoteRepository
	shipments repository.ShipmentRepository
	tx        repository.ShipmentTxRunner
	analytics repository.AnalyticsRepository
	close     func()
}

// @title        Device Portal API
// @version      1.0
// @description  Device leasing administration: devices, quotes and shipments.
// @BasePath     /

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load config: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("starting")

	ctx := context.Background()
	repos, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("storage")
	}
	defer repos.close()

	deviceUC := usecase.NewDeviceUseCase(repos.devices)
	shipmentUC := usecase.NewShipmentUseCase(repos.shipments, repos.tx)
	quoteUC := quote.NewUseCase(repos.quotes, repos.devices)
	dashboardUC := appanalytics.NewDashboardUseCase(repos.devices, repos.quotes, repos.shipments, repos.analytics)

	// PDF: printable quote
	pdfGenerator := infrapdf.NewMarotoQuoteGenerator(cfg.App.Name)
	quotePDFUC := quote.NewPDFUseCase(repos.quotes, pdfGenerator)

	var extra []fiber.Handler
	if cfg.HTTP.DocsEnabled {
		// Swagger UI: http://localhost:<port>/docs
		extra = append(extra, swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Device Portal API",
		}))
	}

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:           cfg.App.Name,
		AllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
		Extra:          extra,
	}, httpRouter.RouterDeps{
		DeviceUC:    deviceUC,
		ShipmentUC:  shipmentUC,
		QuoteUC:     quoteUC,
		QuotePDF:    quotePDFUC,
		DashboardUC: dashboardUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("http server stopped")
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

	log.Info().Msg("stopped")
}

// openStorage connects to PostgreSQL and applies pending migrations, or builds
// an in-memory store preloaded with the sample devices.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repositories, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		store := memory.NewStore()
		repos := &repositories{
			devices:   memory.NewDeviceRepository(store),
			quotes:    memory.NewQuoteRepository(store),
			shipments: memory.NewShipmentRepository(store),
			tx:        memory.NewTxRunner(store),
			analytics: memory.NewAnalyticsRepository(store),
			close:     func() {},
		}
		report, err := admin.NewMaintenance(repos.devices, repos.quotes).Seed(ctx)
		if err != nil {
			return nil, err
		}
		log.Info().Int("devices", report.Created).Msg("in-memory store seeded")
		return repos, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	log.Info().Int("applied", applied).Msg("migrations up to date")

	return &repositories{
		devices:   postgres.NewDeviceRepository(pool),
		quotes:    postgres.NewQuoteRepository(pool),
		shipments: postgres.NewShipmentRepository(pool),
		tx:        postgres.NewTxRunner(pool),
		analytics: postgres.NewAnalyticsRepository(pool),
		close:     pool.Close,
	}, nil
}
