package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Elisha-Seme/assetqr/internal/model"
	"github.com/Elisha-Seme/assetqr/internal/service"
)

type MockAssetService struct {
	mock.Mock
}

func (m *MockAssetService) Create(ctx context.Context, in model.AssetInput) (*model.Asset, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Asset), args.Error(1)
}

func (m *MockAssetService) Get(ctx context.Context, id int64) (*model.Asset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Asset), args.Error(1)
}

func (m *MockAssetService) GetByIdentifier(ctx context.Context, identifier string) (*model.Asset, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Asset), args.Error(1)
}

func (m *MockAssetService) List(ctx context.Context, f model.AssetFilter) ([]model.Asset, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Asset), args.Error(1)
}

func (m *MockAssetService) Update(ctx context.Context, id int64, p model.AssetPatch) (*model.Asset, error) {
	args := m.Called(ctx, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Asset), args.Error(1)
}

func (m *MockAssetService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAssetService) RegenerateQR(ctx context.Context, id int64) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockAssetService) RegenerateAll(ctx context.Context) (*service.RegenResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RegenResult), args.Error(1)
}

func (m *MockAssetService) BulkImport(ctx context.Context, items []model.AssetInput) service.BulkResult {
	args := m.Called(ctx, items)
	return args.Get(0).(service.BulkResult)
}

func (m *MockAssetService) Upsert(ctx context.Context, items []model.AssetInput) service.UpsertResult {
	args := m.Called(ctx, items)
	return args.Get(0).(service.UpsertResult)
}

func (m *MockAssetService) Dashboard(ctx context.Context) (*service.Dashboard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Dashboard), args.Error(1)
}

func (m *MockAssetService) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
