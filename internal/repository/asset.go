package repository

import (
	"context"

	"github.com/Elisha-Seme/assetqr/internal/model"
)

// AssetRepository defines data access for assets using SQL queries only.
// No business logic here: identifiers are minted and artifacts rendered by
// the service layer. Each call commits on its own.
type AssetRepository interface {
	// Create inserts a new asset. ID, CreatedAt and UpdatedAt are assigned here.
	// An identifier that already exists yields ErrConflict.
	Create(ctx context.Context, a *model.Asset) (*model.Asset, error)

	// FindByID returns an asset by its internal row id.
	FindByID(ctx context.Context, id int64) (*model.Asset, error)

	// FindByIdentifier returns an asset by its public identifier.
	FindByIdentifier(ctx context.Context, identifier string) (*model.Asset, error)

	// List returns assets matching f ordered by name.
	List(ctx context.Context, f model.AssetFilter) ([]model.Asset, error)

	// Recent returns the newest assets by creation time.
	Recent(ctx context.Context, limit int) ([]model.Asset, error)

	// Update persists every mutable field of a and refreshes UpdatedAt.
	// The identifier and artifact path are not written.
	Update(ctx context.Context, a *model.Asset) (*model.Asset, error)

	// SetArtifactPath records where the QR image of an asset lives.
	SetArtifactPath(ctx context.Context, id int64, path string) error

	// Delete removes an asset. It returns nil if the row did not exist.
	Delete(ctx context.Context, id int64) error

	// Count returns the number of stored assets.
	Count(ctx context.Context) (int, error)

	// IdentifierExists reports whether identifier is taken.
	IdentifierExists(ctx context.Context, identifier string) (bool, error)

	// Categories returns the distinct non-empty categories in order.
	Categories(ctx context.Context) ([]string, error)

	// Stats summarises the registry, keeping the topN largest categories.
	Stats(ctx context.Context, topN int) (*model.Stats, error)
}

// SettingRepository persists key/value settings.
type SettingRepository interface {
	// Get returns the stored value or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set inserts or replaces key.
	Set(ctx context.Context, key, value string) error
	// All returns every stored setting.
	All(ctx context.Context) (map[string]string, error)
}
