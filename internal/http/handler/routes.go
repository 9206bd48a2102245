package handler

import (
	"database/sql"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Elisha-Seme/assetqr/docs"
	"github.com/Elisha-Seme/assetqr/internal/artifact"
	"github.com/Elisha-Seme/assetqr/internal/http/middleware"
	"github.com/Elisha-Seme/assetqr/internal/report"
	"github.com/Elisha-Seme/assetqr/internal/service"
)

// timeNow stamps export filenames.
var timeNow = time.Now

// Deps are the collaborators the HTTP surface is built from.
type Deps struct {
	DB        *sql.DB
	Assets    service.AssetService
	Settings  service.SettingsService
	Reports   *report.Builder
	Artifacts artifact.Store
	// Gatherer backs /metrics. Nil leaves the endpoint unregistered.
	Gatherer prometheus.Gatherer
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin; business rules live in the service layer.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())

	if d.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	api := app.Group("/api")
	api.Get("/assets", ListAssets(d.Assets))
	api.Post("/assets", CreateAsset(d.Assets))
	api.Post("/assets/bulk", BulkImportAssets(d.Assets))
	api.Get("/assets/:id", GetAsset(d.Assets))
	api.Put("/assets/:id", UpdateAsset(d.Assets))
	api.Delete("/assets/:id", DeleteAsset(d.Assets))
	api.Post("/assets/:id/regen-qr", RegenerateQR(d.Assets))
	api.Get("/stats", Stats(d.Assets))
	api.Get("/categories", Categories(d.Assets))
	api.Get("/settings", GetSettings(d.Settings))
	api.Post("/settings", UpdateSettings(d.Settings))

	app.Get("/asset/:identifier", AssetDetail(d.Assets, d.Settings))
	app.Get("/qrcodes/:file", middleware.NoCache(), ServeArtifact(d.Artifacts))

	export := app.Group("/export", middleware.NoCache())
	export.Get("/pdf", Export(report.KindInventory, d.Assets, d.Settings, d.Reports))
	export.Get("/labels", Export(report.KindLabels, d.Assets, d.Settings, d.Reports))
	export.Get("/csv", Export(report.KindCSV, d.Assets, d.Settings, d.Reports))
}
