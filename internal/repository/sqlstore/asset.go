package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Elisha-Seme/assetqr/internal/database"
	"github.com/Elisha-Seme/assetqr/internal/model"
	"github.com/Elisha-Seme/assetqr/internal/repository"
)

// Nullable legacy columns are coalesced so older rows scan into plain strings.
const assetColumns = `id, asset_id, name,
	COALESCE(category, ''), COALESCE(description, ''), COALESCE(location, ''),
	COALESCE(status, ''), COALESCE(serial_number, ''), COALESCE(purchase_date, ''),
	COALESCE(custodian, ''), COALESCE(donor, ''), COALESCE(value_ksh, ''),
	COALESCE(notes, ''), COALESCE(qr_code_path, ''), created_at, updated_at`

// searchColumns are matched case-insensitively by AssetFilter.Query.
var searchColumns = []string{"name", "asset_id", "location", "description", "serial_number"}

// AssetStore is a database/sql implementation of repository.AssetRepository.
type AssetStore struct {
	db      *sql.DB
	dialect database.Dialect
	now     func() time.Time
}

// NewAssetStore creates a new AssetStore.
func NewAssetStore(db *sql.DB, dialect database.Dialect) *AssetStore {
	return &AssetStore{db: db, dialect: dialect, now: time.Now}
}

var _ repository.AssetRepository = (*AssetStore)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAsset(row rowScanner) (*model.Asset, error) {
	var a model.Asset
	if err := row.Scan(
		&a.ID,
		&a.Identifier,
		&a.Name,
		&a.Category,
		&a.Description,
		&a.Location,
		&a.Status,
		&a.SerialNumber,
		&a.PurchaseDate,
		&a.Custodian,
		&a.Donor,
		&a.Value,
		&a.Notes,
		&a.ArtifactPath,
		timestamp{&a.CreatedAt},
		timestamp{&a.UpdatedAt},
	); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssetStore) queryAssets(ctx context.Context, q string, args ...any) ([]model.Asset, error) {
	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(q), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Asset, 0)
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Create inserts a new asset row and returns the stored record.
func (r *AssetStore) Create(ctx context.Context, a *model.Asset) (*model.Asset, error) {
	const q = `
		INSERT INTO assets (asset_id, name, category, description, location, status,
			serial_number, purchase_date, custodian, donor, value_ksh, notes,
			qr_code_path, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`
	now := r.now().UTC()
	out := *a
	out.CreatedAt = now
	out.UpdatedAt = now

	err := r.db.QueryRowContext(ctx, r.dialect.Rebind(q),
		out.Identifier,
		out.Name,
		out.Category,
		out.Description,
		out.Location,
		out.Status,
		out.SerialNumber,
		out.PurchaseDate,
		out.Custodian,
		out.Donor,
		out.Value,
		out.Notes,
		out.ArtifactPath,
		now,
		now,
	).Scan(&out.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", repository.ErrConflict, a.Identifier)
		}
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single asset by its row id.
func (r *AssetStore) FindByID(ctx context.Context, id int64) (*model.Asset, error) {
	q := `SELECT ` + assetColumns + ` FROM assets WHERE id = ?`
	a, err := scanAsset(r.db.QueryRowContext(ctx, r.dialect.Rebind(q), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// FindByIdentifier fetches a single asset by its public identifier.
func (r *AssetStore) FindByIdentifier(ctx context.Context, identifier string) (*model.Asset, error) {
	q := `SELECT ` + assetColumns + ` FROM assets WHERE asset_id = ?`
	a, err := scanAsset(r.db.QueryRowContext(ctx, r.dialect.Rebind(q), identifier))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// List returns assets matching the filter ordered by name. A non-empty ID
// set takes precedence over the text, category and status predicates.
func (r *AssetStore) List(ctx context.Context, f model.AssetFilter) ([]model.Asset, error) {
	var (
		where []string
		args  []any
	)
	if len(f.IDs) > 0 {
		where = append(where, "id IN ("+placeholders(len(f.IDs))+")")
		for _, id := range f.IDs {
			args = append(args, id)
		}
	} else {
		if q := strings.TrimSpace(f.Query); q != "" {
			like := "%" + strings.ToLower(escapeLike(q)) + "%"
			parts := make([]string, 0, len(searchColumns))
			for _, col := range searchColumns {
				parts = append(parts, fmt.Sprintf(`LOWER(COALESCE(%s, '')) LIKE ? ESCAPE '\'`, col))
				args = append(args, like)
			}
			where = append(where, "("+strings.Join(parts, " OR ")+")")
		}
		if f.Category != "" {
			where = append(where, "category = ?")
			args = append(args, f.Category)
		}
		if f.Status != "" {
			where = append(where, "status = ?")
			args = append(args, f.Status)
		}
	}

	q := `SELECT ` + assetColumns + ` FROM assets`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY name ASC, id ASC`
	return r.queryAssets(ctx, q, args...)
}

// Recent returns the newest assets first.
func (r *AssetStore) Recent(ctx context.Context, limit int) ([]model.Asset, error) {
	q := `SELECT ` + assetColumns + ` FROM assets ORDER BY created_at DESC, id DESC LIMIT ?`
	return r.queryAssets(ctx, q, limit)
}

// Update writes the mutable fields of a and returns the stored record.
func (r *AssetStore) Update(ctx context.Context, a *model.Asset) (*model.Asset, error) {
	const q = `
		UPDATE assets SET
			name = ?, category = ?, description = ?, location = ?, status = ?,
			serial_number = ?, purchase_date = ?, custodian = ?, donor = ?,
			value_ksh = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(q),
		a.Name,
		a.Category,
		a.Description,
		a.Location,
		a.Status,
		a.SerialNumber,
		a.PurchaseDate,
		a.Custodian,
		a.Donor,
		a.Value,
		a.Notes,
		r.now().UTC(),
		a.ID,
	)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, repository.ErrNotFound
	}
	return r.FindByID(ctx, a.ID)
}

// SetArtifactPath records the QR artifact location without touching other fields.
func (r *AssetStore) SetArtifactPath(ctx context.Context, id int64, path string) error {
	const q = `UPDATE assets SET qr_code_path = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(q), path, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes an asset by id. It does not return an error if the row does not exist.
func (r *AssetStore) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM assets WHERE id = ?`
	_, err := r.db.ExecContext(ctx, r.dialect.Rebind(q), id)
	return err
}

// Count returns the number of assets.
func (r *AssetStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM assets`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// IdentifierExists reports whether an asset already uses identifier.
func (r *AssetStore) IdentifierExists(ctx context.Context, identifier string) (bool, error) {
	const q = `SELECT COUNT(*) FROM assets WHERE asset_id = ?`
	var n int
	if err := r.db.QueryRowContext(ctx, r.dialect.Rebind(q), identifier).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Categories returns distinct non-empty categories alphabetically.
func (r *AssetStore) Categories(ctx context.Context) ([]string, error) {
	const q = `SELECT DISTINCT category FROM assets WHERE category <> '' ORDER BY category`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Stats computes dashboard totals and the topN categories by size.
func (r *AssetStore) Stats(ctx context.Context, topN int) (*model.Stats, error) {
	const qTotals = `
		SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'maintenance' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'retired' THEN 1 ELSE 0 END), 0)
		FROM assets
	`
	var s model.Stats
	if err := r.db.QueryRowContext(ctx, qTotals).Scan(&s.Total, &s.Active, &s.Maintenance, &s.Retired); err != nil {
		return nil, fmt.Errorf("totals: %w", err)
	}

	const qDistinct = `SELECT COUNT(DISTINCT category) FROM assets WHERE category <> ''`
	if err := r.db.QueryRowContext(ctx, qDistinct).Scan(&s.Categories); err != nil {
		return nil, fmt.Errorf("distinct categories: %w", err)
	}

	const qTop = `
		SELECT category, COUNT(*) AS cnt
		FROM assets
		WHERE category <> ''
		GROUP BY category
		ORDER BY cnt DESC, category ASC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(qTop), topN)
	if err != nil {
		return nil, fmt.Errorf("top categories: %w", err)
	}
	defer rows.Close()

	s.ByCategory = make([]model.CategoryCount, 0, topN)
	for rows.Next() {
		var cc model.CategoryCount
		if err := rows.Scan(&cc.Category, &cc.Count); err != nil {
			return nil, err
		}
		s.ByCategory = append(s.ByCategory, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &s, nil
}
