// Package app wires the registry's collaborators from configuration. Both
// the HTTP server and the assetctl CLI build on it.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Elisha-Seme/assetqr/internal/artifact"
	"github.com/Elisha-Seme/assetqr/internal/config"
	"github.com/Elisha-Seme/assetqr/internal/database"
	"github.com/Elisha-Seme/assetqr/internal/database/migration"
	"github.com/Elisha-Seme/assetqr/internal/qrcode"
	"github.com/Elisha-Seme/assetqr/internal/report"
	"github.com/Elisha-Seme/assetqr/internal/repository/sqlstore"
	"github.com/Elisha-Seme/assetqr/internal/service"
	"github.com/Elisha-Seme/assetqr/internal/settings"
)

// App is a fully wired registry.
type App struct {
	Config    *config.AppConfig
	Log       *slog.Logger
	DB        *sql.DB
	Dialect   database.Dialect
	Artifacts artifact.Store
	Settings  *settings.Store
	QR        *qrcode.Generator
	Assets    service.AssetService
	Configure service.SettingsService
	Reports   *report.Builder
}

// New opens the database, migrates it, selects the artifact store and builds
// the services. reg receives the domain metrics and may be nil.
func New(ctx context.Context, cfg *config.AppConfig, log *slog.Logger, reg prometheus.Registerer) (*App, error) {
	db, dialect, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := migration.EnsureMigrated(ctx, db, dialect, log); err != nil {
		_ = db.Close()
		return nil, err
	}

	store, err := artifact.Open(ctx, cfg)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open artifact store: %w", err)
	}

	st := settings.New(sqlstore.NewSettingStore(db, dialect), cfg.BaseURLOverride)
	gen, err := qrcode.NewGenerator(st, store, reg, log)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("qr generator: %w", err)
	}

	assets := service.NewAssetService(sqlstore.NewAssetStore(db, dialect), gen, log)
	log.Info("app_ready",
		"event", "app_ready",
		"db_driver", string(dialect),
		"artifact_driver", string(store.Driver()),
		"base_url_override", st.BaseURLOverridden(),
	)

	return &App{
		Config:    cfg,
		Log:       log,
		DB:        db,
		Dialect:   dialect,
		Artifacts: store,
		Settings:  st,
		QR:        gen,
		Assets:    assets,
		Configure: service.NewSettingsService(st, assets, log),
		Reports:   report.NewBuilder(gen, log),
	}, nil
}

// Close releases the database handle.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}
