package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Elisha-Seme/assetqr/internal/config"
	"github.com/Elisha-Seme/assetqr/internal/database"
	"github.com/Elisha-Seme/assetqr/internal/database/migration"
	"github.com/Elisha-Seme/assetqr/internal/logger"
	"github.com/Elisha-Seme/assetqr/internal/model"
	"github.com/Elisha-Seme/assetqr/internal/repository"
	repoMocks "github.com/Elisha-Seme/assetqr/internal/repository/mocks"
	"github.com/Elisha-Seme/assetqr/internal/repository/sqlstore"
)

func TestStore_GetCachesRepositoryValue(t *testing.T) {
	ctx := context.Background()
	repo := new(repoMocks.MockSettingRepository)
	repo.On("Get", ctx, model.SettingCompanyName).Return("AFOSI", nil).Once()

	s := New(repo, "")
	for i := 0; i < 3; i++ {
		v, err := s.CompanyName(ctx)
		require.NoError(t, err)
		assert.Equal(t, "AFOSI", v)
	}
	repo.AssertExpectations(t)
}

func TestStore_ArtifactSettingsReadThrough(t *testing.T) {
	ctx := context.Background()
	repo := new(repoMocks.MockSettingRepository)
	repo.On("Get", ctx, model.SettingQRColor).Return("#000000", nil).Once()
	repo.On("Get", ctx, model.SettingQRColor).Return("#ff0000", nil).Once()
	repo.On("Get", ctx, model.SettingBaseURL).Return("http://a", nil).Once()
	repo.On("Get", ctx, model.SettingBaseURL).Return("http://b", nil).Once()

	s := New(repo, "")
	v, _ := s.QRColor(ctx)
	assert.Equal(t, "#000000", v)
	v, _ = s.QRColor(ctx)
	assert.Equal(t, "#ff0000", v)

	v, _ = s.BaseURL(ctx)
	assert.Equal(t, "http://a", v)
	v, _ = s.BaseURL(ctx)
	assert.Equal(t, "http://b", v)
	repo.AssertExpectations(t)
}

func TestStore_GetMissingReturnsDefault(t *testing.T) {
	ctx := context.Background()
	repo := new(repoMocks.MockSettingRepository)
	repo.On("Get", ctx, model.SettingCompanyName).Return("", repository.ErrNotFound)

	v, err := New(repo, "").CompanyName(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultCompanyName, v)
}

func TestStore_GetError(t *testing.T) {
	ctx := context.Background()
	repo := new(repoMocks.MockSettingRepository)
	repo.On("Get", ctx, "k").Return("", errors.New("db down"))

	_, err := New(repo, "").Get(ctx, "k", "def")
	assert.EqualError(t, err, "read setting k: db down")
}

func TestStore_BaseURLOverride(t *testing.T) {
	ctx := context.Background()
	repo := new(repoMocks.MockSettingRepository)
	repo.On("All", ctx).Return(map[string]string{
		model.SettingBaseURL: "http://stored",
		model.SettingQRColor: "#000000",
	}, nil)

	s := New(repo, "https://assets.example.org")
	assert.True(t, s.BaseURLOverridden())

	v, err := s.BaseURL(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://assets.example.org", v)

	all, err := s.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://assets.example.org", all[model.SettingBaseURL])
	repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestStore_SetWritesThrough(t *testing.T) {
	ctx := context.Background()
	repo := new(repoMocks.MockSettingRepository)
	repo.On("Get", ctx, model.SettingCompanyName).Return("Old", nil).Once()
	repo.On("Set", ctx, model.SettingCompanyName, "New").Return(nil).Once()

	s := New(repo, "")
	v, _ := s.CompanyName(ctx)
	assert.Equal(t, "Old", v)

	require.NoError(t, s.Set(ctx, model.SettingCompanyName, "New"))
	v, err := s.CompanyName(ctx)
	require.NoError(t, err)
	assert.Equal(t, "New", v)
	repo.AssertExpectations(t)
}

func TestStore_SetFailureDropsCache(t *testing.T) {
	ctx := context.Background()
	repo := new(repoMocks.MockSettingRepository)
	repo.On("Get", ctx, model.SettingCompanyName).Return("Old", nil).Twice()
	repo.On("Set", ctx, model.SettingCompanyName, "New").Return(errors.New("locked")).Once()

	s := New(repo, "")
	_, _ = s.CompanyName(ctx)

	err := s.Set(ctx, model.SettingCompanyName, "New")
	assert.Error(t, err)

	v, err := s.CompanyName(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Old", v)
	repo.AssertExpectations(t)
}

func TestStore_Invalidate(t *testing.T) {
	ctx := context.Background()
	repo := new(repoMocks.MockSettingRepository)
	repo.On("Get", ctx, model.SettingCompanyName).Return("Old", nil).Once()
	repo.On("Get", ctx, model.SettingCompanyName).Return("Renamed", nil).Once()

	s := New(repo, "")
	v, _ := s.CompanyName(ctx)
	assert.Equal(t, "Old", v)

	s.Invalidate()
	v, _ = s.CompanyName(ctx)
	assert.Equal(t, "Renamed", v)
	repo.AssertExpectations(t)
}

// Two stores over one database stand in for the API server and assetctl.
func TestStore_SharedDatabaseSeesOtherWriters(t *testing.T) {
	ctx := context.Background()
	db, err := database.NewSQLite(config.DatabaseConfig{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migration.EnsureMigrated(ctx, db, database.DialectSQLite, logger.Discard()))

	server := New(sqlstore.NewSettingStore(db, database.DialectSQLite), "")
	cli := New(sqlstore.NewSettingStore(db, database.DialectSQLite), "")

	v, err := server.QRColor(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultQRColor, v)
	v, err = server.BaseURL(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultBaseURL, v)

	require.NoError(t, cli.Set(ctx, model.SettingQRColor, "#ff0000"))
	require.NoError(t, cli.Set(ctx, model.SettingBaseURL, "https://assets.example.org"))

	v, err = server.QRColor(ctx)
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", v)
	v, err = server.BaseURL(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://assets.example.org", v)
}
