// Package settings reads and writes the key/value settings that shape QR
// payloads and rendering. base_url and qr_color are read from the
// repository on every call, since another process (assetctl) may change them
// under a running server. Other keys go through a short-lived cache.
package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/Elisha-Seme/assetqr/internal/model"
	"github.com/Elisha-Seme/assetqr/internal/repository"
)

const (
	DefaultExpiration      = 5 * time.Second
	DefaultCleanupInterval = time.Minute
)

// Store is the settings reader/writer shared by the QR generator, services
// and handlers. It is safe for concurrent use.
type Store struct {
	repo            repository.SettingRepository
	cache           *gocache.Cache
	baseURLOverride string
}

// New returns a Store over repo. A non-empty baseURLOverride shadows the
// stored base_url for reads; writes still reach the repository.
func New(repo repository.SettingRepository, baseURLOverride string) *Store {
	return &Store{
		repo:            repo,
		cache:           gocache.New(DefaultExpiration, DefaultCleanupInterval),
		baseURLOverride: baseURLOverride,
	}
}

// readThrough lists the keys that shape rendered artifacts and are never
// served from the cache.
var readThrough = map[string]bool{
	model.SettingBaseURL: true,
	model.SettingQRColor: true,
}

// Get returns the value of key, or def when the key has never been stored.
func (s *Store) Get(ctx context.Context, key, def string) (string, error) {
	if key == model.SettingBaseURL && s.baseURLOverride != "" {
		return s.baseURLOverride, nil
	}
	if readThrough[key] {
		return s.load(ctx, key, def)
	}
	if v, ok := s.cache.Get(key); ok {
		if str, ok := v.(string); ok {
			return str, nil
		}
	}
	v, err := s.load(ctx, key, def)
	if err != nil {
		return "", err
	}
	s.cache.SetDefault(key, v)
	return v, nil
}

func (s *Store) load(ctx context.Context, key, def string) (string, error) {
	v, err := s.repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return def, nil
		}
		return "", fmt.Errorf("read setting %s: %w", key, err)
	}
	return v, nil
}

// Set upserts key and refreshes the cached copy.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.repo.Set(ctx, key, value); err != nil {
		s.cache.Delete(key)
		return fmt.Errorf("write setting %s: %w", key, err)
	}
	s.cache.SetDefault(key, value)
	return nil
}

// All returns every stored setting with the base_url override applied.
func (s *Store) All(ctx context.Context) (map[string]string, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	for k, v := range all {
		s.cache.SetDefault(k, v)
	}
	if s.baseURLOverride != "" {
		all[model.SettingBaseURL] = s.baseURLOverride
	}
	return all, nil
}

// BaseURL is the prefix of every QR payload.
func (s *Store) BaseURL(ctx context.Context) (string, error) {
	return s.Get(ctx, model.SettingBaseURL, model.DefaultBaseURL)
}

// QRColor is the foreground color of rendered codes.
func (s *Store) QRColor(ctx context.Context) (string, error) {
	return s.Get(ctx, model.SettingQRColor, model.DefaultQRColor)
}

// CompanyName is printed on pages and reports.
func (s *Store) CompanyName(ctx context.Context) (string, error) {
	return s.Get(ctx, model.SettingCompanyName, model.DefaultCompanyName)
}

// BaseURLOverridden reports whether the environment pins base_url.
func (s *Store) BaseURLOverridden() bool {
	return s.baseURLOverride != ""
}

// Invalidate drops cached values so the next read hits the repository.
func (s *Store) Invalidate() {
	s.cache.Flush()
}
