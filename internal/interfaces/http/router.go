package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/kdevnel/device-portal/internal/application/analytics"
	"github.com/kdevnel/device-portal/internal/application/quote"
	"github.com/kdevnel/device-portal/internal/application/usecase"
)

// RouterDeps use cases behind the API.
type RouterDeps struct {
	DeviceUC    *usecase.DeviceUseCase
	ShipmentUC  *usecase.ShipmentUseCase
	QuoteUC     *quote.UseCase
	QuotePDF    *quote.PDFUseCase
	DashboardUC *appanalytics.DashboardUseCase
}

// AppConfig server-level options for NewApp.
type AppConfig struct {
	Name           string
	AllowedOrigins string // comma separated
	// Extra middleware installed after CORS and before the API routes (e.g. Swagger UI).
	Extra []fiber.Handler
}

// NewApp builds the fiber application: recover, request logging, CORS,
// /health and the /api routes. Every error body is a dto.ErrorResponse.
func NewApp(cfg AppConfig, deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: ErrorHandler,
	})
	app.Use(RequestLogger())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(cfg.AllowedOrigins),
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept," + RequestIDHeader,
	}))
	for _, h := range cfg.Extra {
		app.Use(h)
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.Name})
	})

	Router(app, deps)
	return app
}

// Router registers the API routes. Fixed paths are registered before /:id.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	devices := api.Group("/devices")
	deviceHandler := NewDeviceHandler(deps.DeviceUC)
	devices.Get("/", deviceHandler.List)
	devices.Post("/", deviceHandler.Create)
	devices.Get("/status-distribution", deviceHandler.StatusDistribution)
	devices.Get("/:id", deviceHandler.GetByID)
	devices.Delete("/:id", deviceHandler.Delete)
	devices.Patch("/:id/status", deviceHandler.UpdateStatus)

	quotes := api.Group("/quotes")
	quoteHandler := NewQuoteHandler(deps.QuoteUC, deps.QuotePDF)
	quotes.Get("/", quoteHandler.List)
	quotes.Post("/", quoteHandler.Create)
	quotes.Post("/calculate", quoteHandler.Calculate)
	quotes.Get("/support-tier-distribution", quoteHandler.TierDistribution)
	quotes.Get("/:id", quoteHandler.GetByID)
	quotes.Get("/:id/pdf", quoteHandler.DownloadPDF)

	shipments := api.Group("/shipments")
	shipmentHandler := NewShipmentHandler(deps.ShipmentUC)
	shipments.Get("/", shipmentHandler.List)
	shipments.Post("/", shipmentHandler.Create)
	shipments.Get("/status-distribution", shipmentHandler.StatusDistribution)
	shipments.Get("/track/:tracking_number", shipmentHandler.Track)
	shipments.Get("/:id", shipmentHandler.GetByID)
	shipments.Patch("/:id/status", shipmentHandler.UpdateStatus)

	dashboard := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
}

func normalizeOrigins(raw string) string {
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return "*"
	}
	return strings.Join(out, ",")
}
