package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/Elisha-Seme/assetqr/internal/model"
	"github.com/Elisha-Seme/assetqr/internal/qrcode"
)

// SettingsStore is the subset of *settings.Store the service writes through.
type SettingsStore interface {
	All(ctx context.Context) (map[string]string, error)
	Set(ctx context.Context, key, value string) error
}

// SettingsUpdateResult reports what an update touched.
type SettingsUpdateResult struct {
	Updated     []string     `json:"updated"`
	Regenerated *RegenResult `json:"regenerated,omitempty"`
}

// SettingsService reads and updates registry settings.
type SettingsService interface {
	// All returns every setting, with the environment base_url override applied.
	All(ctx context.Context) (map[string]string, error)

	// Update upserts every supplied key. When base_url or qr_color is among
	// them, every artifact is regenerated so payloads match the new settings.
	Update(ctx context.Context, values map[string]string) (*SettingsUpdateResult, error)
}

type settingsService struct {
	store  SettingsStore
	assets AssetService
	log    *slog.Logger
}

// NewSettingsService constructs a new SettingsService.
func NewSettingsService(store SettingsStore, assets AssetService, log *slog.Logger) SettingsService {
	if log == nil {
		log = slog.Default()
	}
	return &settingsService{store: store, assets: assets, log: log.With("component", "settings_service")}
}

func (s *settingsService) All(ctx context.Context) (map[string]string, error) {
	return s.store.All(ctx)
}

// affectsArtifacts lists the settings a rendered QR depends on.
var affectsArtifacts = map[string]bool{
	model.SettingBaseURL: true,
	model.SettingQRColor: true,
}

func normalizeSetting(key, value string) (string, error) {
	switch key {
	case model.SettingQRColor:
		value = strings.TrimSpace(value)
		if _, err := qrcode.ParseColor(value); err != nil {
			return "", fmt.Errorf("%w: qr_color must be a hex color like #000000", ErrValidation)
		}
	case model.SettingBaseURL:
		value = strings.TrimRight(strings.TrimSpace(value), "/")
		if value == "" {
			return "", fmt.Errorf("%w: base_url cannot be blank", ErrValidation)
		}
	}
	return value, nil
}

func (s *settingsService) Update(ctx context.Context, values map[string]string) (res *SettingsUpdateResult, err error) {
	ctx, span := startSpan(ctx, "SettingsService.Update")
	defer func() { endSpan(span, err) }()

	keys := make([]string, 0, len(values))
	normalized := make(map[string]string, len(values))
	for k, v := range values {
		k = strings.TrimSpace(k)
		if k == "" {
			return nil, fmt.Errorf("%w: setting key cannot be blank", ErrValidation)
		}
		nv, err := normalizeSetting(k, v)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
		normalized[k] = nv
	}
	sort.Strings(keys)

	res = &SettingsUpdateResult{Updated: keys}
	regen := false
	for _, k := range keys {
		if err := s.store.Set(ctx, k, normalized[k]); err != nil {
			return nil, err
		}
		regen = regen || affectsArtifacts[k]
	}
	s.log.Info("settings_updated", "event", "settings_updated", "status", "success", "keys", keys)

	if regen {
		if res.Regenerated, err = s.assets.RegenerateAll(ctx); err != nil {
			return nil, fmt.Errorf("regenerate artifacts: %w", err)
		}
	}
	return res, nil
}
