package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Elisha-Seme/assetqr/internal/logger"
	"github.com/Elisha-Seme/assetqr/internal/model"
	"github.com/Elisha-Seme/assetqr/internal/qrcode"
	qrMocks "github.com/Elisha-Seme/assetqr/internal/qrcode/mocks"
	"github.com/Elisha-Seme/assetqr/internal/repository"
	repoMocks "github.com/Elisha-Seme/assetqr/internal/repository/mocks"
)

func strPtr(s string) *string { return &s }

func newMocked() (*assetService, *repoMocks.MockAssetRepository, *qrMocks.MockGenerator) {
	repo := new(repoMocks.MockAssetRepository)
	gen := new(qrMocks.MockGenerator)
	svc := NewAssetService(repo, gen, logger.Discard()).(*assetService)
	return svc, repo, gen
}

func TestAssetService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		in         model.AssetInput
		setupMocks func(repo *repoMocks.MockAssetRepository, gen *qrMocks.MockGenerator)
		wantErr    error
		wantID     string
		wantPath   string
	}{
		{
			name: "happy path mints identifier",
			in:   model.AssetInput{Name: "  Office Desk ", Category: "Furniture"},
			setupMocks: func(repo *repoMocks.MockAssetRepository, gen *qrMocks.MockGenerator) {
				repo.On("Count", mock.Anything).Return(2, nil)
				repo.On("IdentifierExists", mock.Anything, "office-desk-0003").Return(false, nil)
				repo.On("Create", mock.Anything, mock.MatchedBy(func(a *model.Asset) bool {
					return a.Identifier == "office-desk-0003" && a.Name == "Office Desk" && a.Status == model.StatusActive
				})).Return(&model.Asset{ID: 3, Identifier: "office-desk-0003", Name: "Office Desk"}, nil)
				gen.On("Generate", mock.Anything, "office-desk-0003").Return("static/qrcodes/qr_office-desk-0003.png", nil)
				repo.On("SetArtifactPath", mock.Anything, int64(3), "static/qrcodes/qr_office-desk-0003.png").Return(nil)
			},
			wantID:   "office-desk-0003",
			wantPath: "static/qrcodes/qr_office-desk-0003.png",
		},
		{
			name:       "validation error - blank name",
			in:         model.AssetInput{Name: "   "},
			setupMocks: func(*repoMocks.MockAssetRepository, *qrMocks.MockGenerator) {},
			wantErr:    ErrValidation,
		},
		{
			name: "explicit identifier already taken",
			in:   model.AssetInput{Identifier: "AFOSI-001", Name: "Safe"},
			setupMocks: func(repo *repoMocks.MockAssetRepository, gen *qrMocks.MockGenerator) {
				repo.On("Create", mock.Anything, mock.MatchedBy(func(a *model.Asset) bool {
					return a.Identifier == "AFOSI-001"
				})).Return(nil, fmt.Errorf("%w: AFOSI-001", repository.ErrConflict))
			},
			wantErr: ErrConflict,
		},
		{
			name: "artifact failure does not fail create",
			in:   model.AssetInput{Identifier: "tv-0001", Name: "TV", Status: "maintenance"},
			setupMocks: func(repo *repoMocks.MockAssetRepository, gen *qrMocks.MockGenerator) {
				repo.On("Create", mock.Anything, mock.MatchedBy(func(a *model.Asset) bool {
					return a.Status == model.StatusMaintenance
				})).Return(&model.Asset{ID: 1, Identifier: "tv-0001", Name: "TV"}, nil)
				gen.On("Generate", mock.Anything, "tv-0001").Return("", qrcode.ErrArtifactWrite)
			},
			wantID: "tv-0001",
		},
		{
			name: "count error",
			in:   model.AssetInput{Name: "Desk"},
			setupMocks: func(repo *repoMocks.MockAssetRepository, gen *qrMocks.MockGenerator) {
				repo.On("Count", mock.Anything).Return(0, errors.New("db down"))
			},
			wantErr: errors.New("resolve identifier: count assets: db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, gen := newMocked()
			tt.setupMocks(repo, gen)

			got, err := svc.Create(ctx, tt.in)

			switch {
			case tt.wantErr == nil:
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, got.Identifier)
				assert.Equal(t, tt.wantPath, got.ArtifactPath)
			case errors.Is(err, tt.wantErr):
				assert.Nil(t, got)
			default:
				assert.EqualError(t, err, tt.wantErr.Error())
			}
			repo.AssertExpectations(t)
			gen.AssertExpectations(t)
			if tt.wantPath == "" {
				repo.AssertNotCalled(t, "SetArtifactPath", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestAssetService_Get(t *testing.T) {
	svc, repo, _ := newMocked()
	repo.On("FindByID", mock.Anything, int64(9)).Return(nil, repository.ErrNotFound)
	repo.On("FindByIdentifier", mock.Anything, "x-0001").Return(&model.Asset{ID: 1, Identifier: "x-0001"}, nil)

	_, err := svc.Get(context.Background(), 9)
	assert.ErrorIs(t, err, ErrNotFound)

	a, err := svc.GetByIdentifier(context.Background(), "x-0001")
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID)

	_, err = svc.GetByIdentifier(context.Background(), " ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssetService_Update(t *testing.T) {
	ctx := context.Background()
	stored := func() *model.Asset {
		return &model.Asset{
			ID: 4, Identifier: "desk-0004", Name: "Desk", Location: "Hall",
			Status: model.StatusActive, ArtifactPath: "static/qrcodes/qr_desk-0004.png",
		}
	}

	t.Run("partial status update keeps other fields", func(t *testing.T) {
		svc, repo, _ := newMocked()
		repo.On("FindByID", mock.Anything, int64(4)).Return(stored(), nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(a *model.Asset) bool {
			return a.Status == model.StatusRetired && a.Name == "Desk" && a.Location == "Hall" &&
				a.Identifier == "desk-0004" && a.ArtifactPath == "static/qrcodes/qr_desk-0004.png"
		})).Return(&model.Asset{ID: 4, Status: model.StatusRetired}, nil)

		out, err := svc.Update(ctx, 4, model.AssetPatch{Status: strPtr(model.StatusRetired)})
		require.NoError(t, err)
		assert.Equal(t, model.StatusRetired, out.Status)
		repo.AssertExpectations(t)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		svc, repo, _ := newMocked()
		_, err := svc.Update(ctx, 4, model.AssetPatch{Name: strPtr(" ")})
		assert.ErrorIs(t, err, ErrValidation)
		repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		svc, repo, _ := newMocked()
		repo.On("FindByID", mock.Anything, int64(5)).Return(nil, repository.ErrNotFound)
		_, err := svc.Update(ctx, 5, model.AssetPatch{})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAssetService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("artifact removal failure is ignored", func(t *testing.T) {
		svc, repo, gen := newMocked()
		repo.On("FindByID", mock.Anything, int64(1)).
			Return(&model.Asset{ID: 1, Identifier: "a-0001", ArtifactPath: "p"}, nil)
		repo.On("Delete", mock.Anything, int64(1)).Return(nil)
		gen.On("Remove", mock.Anything, "a-0001").Return(errors.New("permission denied"))

		assert.NoError(t, svc.Delete(ctx, 1))
		repo.AssertExpectations(t)
		gen.AssertExpectations(t)
	})

	t.Run("no artifact recorded", func(t *testing.T) {
		svc, repo, gen := newMocked()
		repo.On("FindByID", mock.Anything, int64(2)).Return(&model.Asset{ID: 2, Identifier: "a-0002"}, nil)
		repo.On("Delete", mock.Anything, int64(2)).Return(nil)

		assert.NoError(t, svc.Delete(ctx, 2))
		gen.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
	})

	t.Run("row delete failure keeps artifact", func(t *testing.T) {
		svc, repo, gen := newMocked()
		repo.On("FindByID", mock.Anything, int64(3)).
			Return(&model.Asset{ID: 3, Identifier: "a-0003", ArtifactPath: "p"}, nil)
		repo.On("Delete", mock.Anything, int64(3)).Return(errors.New("locked"))

		assert.EqualError(t, svc.Delete(ctx, 3), "locked")
		gen.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		svc, repo, _ := newMocked()
		repo.On("FindByID", mock.Anything, int64(4)).Return(nil, repository.ErrNotFound)
		assert.ErrorIs(t, svc.Delete(ctx, 4), ErrNotFound)
	})
}

func TestAssetService_RegenerateQR(t *testing.T) {
	ctx := context.Background()

	t.Run("success returns public path", func(t *testing.T) {
		svc, repo, gen := newMocked()
		repo.On("FindByID", mock.Anything, int64(7)).Return(&model.Asset{ID: 7, Identifier: "pc-0007"}, nil)
		gen.On("Generate", mock.Anything, "pc-0007").Return("static/qrcodes/qr_pc-0007.png", nil)
		repo.On("SetArtifactPath", mock.Anything, int64(7), "static/qrcodes/qr_pc-0007.png").Return(nil)

		pub, err := svc.RegenerateQR(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, "/qrcodes/qr_pc-0007.png", pub)
	})

	t.Run("artifact failure surfaces", func(t *testing.T) {
		svc, repo, gen := newMocked()
		repo.On("FindByID", mock.Anything, int64(7)).Return(&model.Asset{ID: 7, Identifier: "pc-0007"}, nil)
		gen.On("Generate", mock.Anything, "pc-0007").Return("", fmt.Errorf("%w: disk full", qrcode.ErrArtifactWrite))

		_, err := svc.RegenerateQR(ctx, 7)
		assert.ErrorIs(t, err, qrcode.ErrArtifactWrite)
		repo.AssertNotCalled(t, "SetArtifactPath", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAssetService_RegenerateAll(t *testing.T) {
	svc, repo, gen := newMocked()
	repo.On("List", mock.Anything, model.AssetFilter{}).Return([]model.Asset{
		{ID: 1, Identifier: "a-0001", ArtifactPath: "p1"},
		{ID: 2, Identifier: "a-0002"},
		{ID: 3, Identifier: "a-0003", ArtifactPath: "p3"},
	}, nil)
	gen.On("Generate", mock.Anything, "a-0001").Return("p1", nil)
	gen.On("Generate", mock.Anything, "a-0002").Return("p2", nil)
	gen.On("Generate", mock.Anything, "a-0003").Return("", qrcode.ErrArtifactWrite)
	repo.On("SetArtifactPath", mock.Anything, int64(2), "p2").Return(nil)

	res, err := svc.RegenerateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Regenerated)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, []string{"a-0003"}, res.FailedIDs)
	repo.AssertExpectations(t)
	repo.AssertNumberOfCalls(t, "SetArtifactPath", 1)
}

func TestAssetService_BulkImport_ContinuesAfterErrors(t *testing.T) {
	svc, repo, gen := newMocked()
	repo.On("IdentifierExists", mock.Anything, "a-1").Return(false, nil)
	repo.On("IdentifierExists", mock.Anything, "b-1").Return(false, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(a *model.Asset) bool { return a.Identifier == "a-1" })).
		Return(nil, errors.New("disk I/O error"))
	repo.On("Create", mock.Anything, mock.MatchedBy(func(a *model.Asset) bool { return a.Identifier == "b-1" })).
		Return(&model.Asset{ID: 2, Identifier: "b-1"}, nil)
	gen.On("Generate", mock.Anything, "b-1").Return("", qrcode.ErrArtifactWrite)

	res := svc.BulkImport(context.Background(), []model.AssetInput{
		{Identifier: "a-1", Name: "Alpha"},
		{Name: ""},
		{Identifier: "b-1", Name: "Beta"},
	})
	assert.Equal(t, 1, res.Success)
	assert.Equal(t, 2, res.Failed)
	assert.Equal(t, []string{"Alpha: disk I/O error", BlankNameSkipped}, res.Errors)
}

func TestAssetService_Dashboard(t *testing.T) {
	svc, repo, _ := newMocked()
	repo.On("Stats", mock.Anything, TopCategories).Return(&model.Stats{Total: 3, Active: 2}, nil)
	repo.On("Recent", mock.Anything, RecentAssets).Return([]model.Asset{{ID: 3}}, nil)

	d, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, d.Stats.Total)
	assert.Len(t, d.Recent, 1)

	repo2 := new(repoMocks.MockAssetRepository)
	repo2.On("Stats", mock.Anything, TopCategories).Return(nil, errors.New("boom"))
	_, err = NewAssetService(repo2, nil, nil).Dashboard(context.Background())
	assert.Error(t, err)
}

func TestMapRepoErr(t *testing.T) {
	assert.ErrorIs(t, mapRepoErr(repository.ErrNotFound), ErrNotFound)
	assert.ErrorIs(t, mapRepoErr(repository.ErrConflict), ErrConflict)
	other := errors.New("x")
	assert.Equal(t, other, mapRepoErr(other))
}
