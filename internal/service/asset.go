package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Elisha-Seme/assetqr/internal/identifier"
	"github.com/Elisha-Seme/assetqr/internal/model"
	"github.com/Elisha-Seme/assetqr/internal/qrcode"
	"github.com/Elisha-Seme/assetqr/internal/repository"
)

const (
	// TopCategories is how many categories the dashboard breaks down.
	TopCategories = 8
	// RecentAssets is how many new records the dashboard lists.
	RecentAssets = 10
	// BlankNameSkipped is reported for bulk items without a name.
	BlankNameSkipped = "Blank name skipped"
)

// BulkResult summarises a bulk import. Errors are in input order.
type BulkResult struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}

// UpsertResult summarises a register import that may overwrite records.
type UpsertResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}

// RegenResult summarises a regenerate-all pass.
type RegenResult struct {
	Regenerated int      `json:"regenerated"`
	Failed      int      `json:"failed"`
	FailedIDs   []string `json:"failed_ids"`
}

// Dashboard is the registry overview.
type Dashboard struct {
	Stats  model.Stats   `json:"stats"`
	Recent []model.Asset `json:"recent"`
}

// AssetService defines the use cases for the asset registry.
type AssetService interface {
	// Create validates the input, resolves or mints the identifier, stores the
	// record and renders its QR artifact. Artifact failures are logged only.
	Create(ctx context.Context, in model.AssetInput) (*model.Asset, error)

	// Get returns a single asset by its row id.
	Get(ctx context.Context, id int64) (*model.Asset, error)

	// GetByIdentifier returns a single asset by its public identifier.
	GetByIdentifier(ctx context.Context, identifier string) (*model.Asset, error)

	// List returns assets matching f ordered by name.
	List(ctx context.Context, f model.AssetFilter) ([]model.Asset, error)

	// Update applies a partial update. Absent fields keep their values.
	Update(ctx context.Context, id int64, p model.AssetPatch) (*model.Asset, error)

	// Delete removes the record, then its artifact on a best-effort basis.
	Delete(ctx context.Context, id int64) error

	// RegenerateQR re-renders one artifact and returns its public path.
	RegenerateQR(ctx context.Context, id int64) (string, error)

	// RegenerateAll re-renders every artifact from the current settings.
	RegenerateAll(ctx context.Context) (*RegenResult, error)

	// BulkImport inserts items sequentially, never failing the whole batch.
	BulkImport(ctx context.Context, items []model.AssetInput) BulkResult

	// Upsert overwrites records whose identifier exists and inserts the rest.
	Upsert(ctx context.Context, items []model.AssetInput) UpsertResult

	// Dashboard returns totals, the largest categories and recent records.
	Dashboard(ctx context.Context) (*Dashboard, error)

	// Categories returns the distinct categories in use.
	Categories(ctx context.Context) ([]string, error)
}

// assetService is a concrete implementation of AssetService.
type assetService struct {
	repo repository.AssetRepository
	qr   Artifacts
	log  *slog.Logger

	// mintMu serialises identifier resolution with the insert that claims it.
	mintMu sync.Mutex
}

// NewAssetService constructs a new AssetService.
func NewAssetService(repo repository.AssetRepository, qr Artifacts, log *slog.Logger) AssetService {
	if log == nil {
		log = slog.Default()
	}
	return &assetService{repo: repo, qr: qr, log: log.With("component", "asset_service")}
}

func mapRepoErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrConflict):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	default:
		return err
	}
}

func newAsset(id, name string, in model.AssetInput) *model.Asset {
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = model.StatusActive
	}
	return &model.Asset{
		Identifier:   id,
		Name:         name,
		Category:     in.Category,
		Description:  in.Description,
		Location:     in.Location,
		Status:       status,
		SerialNumber: in.SerialNumber,
		PurchaseDate: in.PurchaseDate,
		Custodian:    in.Custodian,
		Donor:        in.Donor,
		Value:        in.Value,
		Notes:        in.Notes,
	}
}

func (s *assetService) Create(ctx context.Context, in model.AssetInput) (out *model.Asset, err error) {
	ctx, span := startSpan(ctx, "AssetService.Create")
	defer func() { endSpan(span, err) }()

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	a, err := s.insert(ctx, in, name, false)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("asset.identifier", a.Identifier))
	s.attachArtifact(ctx, a)
	return a, nil
}

// insert resolves the identifier and stores the row while holding mintMu, so
// two callers in this process never mint the same candidate. With dedupe set
// a taken identifier gets "-x" suffixes instead of failing.
func (s *assetService) insert(ctx context.Context, in model.AssetInput, name string, dedupe bool) (*model.Asset, error) {
	s.mintMu.Lock()
	defer s.mintMu.Unlock()

	id, err := identifier.MintOrAccept(ctx, in.Identifier, name, s.repo)
	if err != nil {
		return nil, fmt.Errorf("resolve identifier: %w", err)
	}
	if dedupe {
		if id, err = identifier.Dedupe(ctx, id, s.repo); err != nil {
			return nil, fmt.Errorf("dedupe identifier: %w", err)
		}
	}
	stored, err := s.repo.Create(ctx, newAsset(id, name, in))
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%w: %s", ErrConflict, id)
		}
		return nil, err
	}
	return stored, nil
}

// attachArtifact renders the QR of a and records its path. Failures are
// logged and leave the record without (or with its previous) artifact path.
func (s *assetService) attachArtifact(ctx context.Context, a *model.Asset) bool {
	path, err := s.qr.Generate(ctx, a.Identifier)
	if err != nil {
		s.log.Warn("qr_generate_failed",
			"event", "qr_generate_failed",
			"status", "error",
			"asset_id", a.Identifier,
			"error_message", err.Error(),
		)
		return false
	}
	if path == a.ArtifactPath {
		return true
	}
	if err := s.repo.SetArtifactPath(ctx, a.ID, path); err != nil {
		s.log.Warn("qr_path_save_failed",
			"event", "qr_path_save_failed",
			"status", "error",
			"asset_id", a.Identifier,
			"error_message", err.Error(),
		)
		return false
	}
	a.ArtifactPath = path
	return true
}

func (s *assetService) Get(ctx context.Context, id int64) (*model.Asset, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return a, nil
}

func (s *assetService) GetByIdentifier(ctx context.Context, ident string) (*model.Asset, error) {
	if strings.TrimSpace(ident) == "" {
		return nil, ErrNotFound
	}
	a, err := s.repo.FindByIdentifier(ctx, ident)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return a, nil
}

func (s *assetService) List(ctx context.Context, f model.AssetFilter) ([]model.Asset, error) {
	return s.repo.List(ctx, f)
}

func (s *assetService) Update(ctx context.Context, id int64, p model.AssetPatch) (out *model.Asset, err error) {
	ctx, span := startSpan(ctx, "AssetService.Update")
	defer func() { endSpan(span, err) }()

	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be blank", ErrValidation)
		}
		p.Name = &name
	}
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Apply(a)
	out, err = s.repo.Update(ctx, a)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return out, nil
}

func (s *assetService) Delete(ctx context.Context, id int64) (err error) {
	ctx, span := startSpan(ctx, "AssetService.Delete")
	defer func() { endSpan(span, err) }()

	a, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if a.ArtifactPath != "" {
		if err := s.qr.Remove(ctx, a.Identifier); err != nil {
			s.log.Warn("qr_remove_failed",
				"event", "qr_remove_failed",
				"status", "error",
				"asset_id", a.Identifier,
				"error_message", err.Error(),
			)
		}
	}
	return nil
}

func (s *assetService) RegenerateQR(ctx context.Context, id int64) (pub string, err error) {
	ctx, span := startSpan(ctx, "AssetService.RegenerateQR")
	defer func() { endSpan(span, err) }()

	a, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	path, err := s.qr.Generate(ctx, a.Identifier)
	if err != nil {
		return "", err
	}
	if err := s.repo.SetArtifactPath(ctx, a.ID, path); err != nil {
		return "", mapRepoErr(err)
	}
	return qrcode.PublicPath(a.Identifier), nil
}

func (s *assetService) RegenerateAll(ctx context.Context) (res *RegenResult, err error) {
	ctx, span := startSpan(ctx, "AssetService.RegenerateAll")
	defer func() { endSpan(span, err) }()

	items, err := s.repo.List(ctx, model.AssetFilter{})
	if err != nil {
		return nil, err
	}
	res = &RegenResult{FailedIDs: []string{}}
	for i := range items {
		if s.attachArtifact(ctx, &items[i]) {
			res.Regenerated++
			continue
		}
		res.Failed++
		res.FailedIDs = append(res.FailedIDs, items[i].Identifier)
	}
	s.log.Info("qr_regenerate_all",
		"event", "qr_regenerate_all",
		"status", "success",
		"regenerated", res.Regenerated,
		"failed", res.Failed,
	)
	span.SetAttributes(attribute.Int("assets.regenerated", res.Regenerated))
	return res, nil
}

func (s *assetService) BulkImport(ctx context.Context, items []model.AssetInput) BulkResult {
	ctx, span := startSpan(ctx, "AssetService.BulkImport")
	defer span.End()

	res := BulkResult{Errors: []string{}}
	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			res.Failed++
			res.Errors = append(res.Errors, BlankNameSkipped)
			continue
		}
		a, err := s.insert(ctx, item, name, true)
		if err != nil {
			res.Failed++
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		s.attachArtifact(ctx, a)
		res.Success++
	}
	span.SetAttributes(
		attribute.Int("bulk.success", res.Success),
		attribute.Int("bulk.failed", res.Failed),
	)
	return res
}

func (s *assetService) Upsert(ctx context.Context, items []model.AssetInput) UpsertResult {
	ctx, span := startSpan(ctx, "AssetService.Upsert")
	defer span.End()

	res := UpsertResult{Errors: []string{}}
	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			res.Failed++
			res.Errors = append(res.Errors, BlankNameSkipped)
			continue
		}
		created, err := s.upsertOne(ctx, item, name)
		if err != nil {
			res.Failed++
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		if created {
			res.Created++
		} else {
			res.Updated++
		}
	}
	return res
}

func (s *assetService) upsertOne(ctx context.Context, item model.AssetInput, name string) (bool, error) {
	ident := strings.TrimSpace(item.Identifier)
	if ident != "" {
		existing, err := s.repo.FindByIdentifier(ctx, ident)
		switch {
		case err == nil:
			next := newAsset(ident, name, item)
			next.ID = existing.ID
			next.Status = model.StatusActive
			next.ArtifactPath = existing.ArtifactPath
			updated, err := s.repo.Update(ctx, next)
			if err != nil {
				return false, mapRepoErr(err)
			}
			s.attachArtifact(ctx, updated)
			return false, nil
		case !errors.Is(err, repository.ErrNotFound):
			return false, err
		}
	}
	item.Status = model.StatusActive
	a, err := s.insert(ctx, item, name, false)
	if err != nil {
		return false, err
	}
	s.attachArtifact(ctx, a)
	return true, nil
}

func (s *assetService) Dashboard(ctx context.Context) (*Dashboard, error) {
	stats, err := s.repo.Stats(ctx, TopCategories)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.Recent(ctx, RecentAssets)
	if err != nil {
		return nil, err
	}
	return &Dashboard{Stats: *stats, Recent: recent}, nil
}

func (s *assetService) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}
