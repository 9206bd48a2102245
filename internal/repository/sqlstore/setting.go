package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Elisha-Seme/assetqr/internal/database"
	"github.com/Elisha-Seme/assetqr/internal/repository"
)

// SettingStore is a database/sql implementation of repository.SettingRepository.
type SettingStore struct {
	db      *sql.DB
	dialect database.Dialect
}

// NewSettingStore creates a new SettingStore.
func NewSettingStore(db *sql.DB, dialect database.Dialect) *SettingStore {
	return &SettingStore{db: db, dialect: dialect}
}

var _ repository.SettingRepository = (*SettingStore)(nil)

func (r *SettingStore) Get(ctx context.Context, key string) (string, error) {
	const q = `SELECT value FROM settings WHERE key = ?`
	var v string
	if err := r.db.QueryRowContext(ctx, r.dialect.Rebind(q), key).Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%w: setting %s", repository.ErrNotFound, key)
		}
		return "", err
	}
	return v, nil
}

func (r *SettingStore) Set(ctx context.Context, key, value string) error {
	const q = `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`
	_, err := r.db.ExecContext(ctx, r.dialect.Rebind(q), key, value)
	return err
}

func (r *SettingStore) All(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, rows.Err()
}
