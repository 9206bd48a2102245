package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Elisha-Seme/assetqr/internal/logger"
	"github.com/Elisha-Seme/assetqr/internal/model"
)

type mockSettingsStore struct{ mock.Mock }

func (m *mockSettingsStore) All(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(map[string]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSettingsStore) Set(ctx context.Context, key, value string) error {
	return m.Called(ctx, key, value).Error(0)
}

// regenAssets satisfies AssetService; only RegenerateAll is expected.
type regenAssets struct {
	AssetService
	calls int
	res   *RegenResult
	err   error
}

func (r *regenAssets) RegenerateAll(context.Context) (*RegenResult, error) {
	r.calls++
	return r.res, r.err
}

func TestSettingsService_Update(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		in        map[string]string
		setup     func(st *mockSettingsStore)
		wantErr   error
		wantKeys  []string
		wantRegen bool
	}{
		{
			name: "company name only",
			in:   map[string]string{model.SettingCompanyName: "AFOSI"},
			setup: func(st *mockSettingsStore) {
				st.On("Set", mock.Anything, model.SettingCompanyName, "AFOSI").Return(nil)
			},
			wantKeys: []string{model.SettingCompanyName},
		},
		{
			name: "base url is trimmed and triggers regeneration",
			in:   map[string]string{model.SettingBaseURL: " https://assets.example.org/ ", model.SettingCompanyName: "X"},
			setup: func(st *mockSettingsStore) {
				st.On("Set", mock.Anything, model.SettingBaseURL, "https://assets.example.org").Return(nil).Once()
				st.On("Set", mock.Anything, model.SettingCompanyName, "X").Return(nil).Once()
			},
			wantKeys:  []string{model.SettingBaseURL, model.SettingCompanyName},
			wantRegen: true,
		},
		{
			name: "qr color triggers regeneration",
			in:   map[string]string{model.SettingQRColor: "#1a7f37"},
			setup: func(st *mockSettingsStore) {
				st.On("Set", mock.Anything, model.SettingQRColor, "#1a7f37").Return(nil)
			},
			wantKeys:  []string{model.SettingQRColor},
			wantRegen: true,
		},
		{
			name:    "invalid color",
			in:      map[string]string{model.SettingQRColor: "red"},
			setup:   func(*mockSettingsStore) {},
			wantErr: ErrValidation,
		},
		{
			name:    "blank base url",
			in:      map[string]string{model.SettingBaseURL: " / "},
			setup:   func(*mockSettingsStore) {},
			wantErr: ErrValidation,
		},
		{
			name:    "blank key",
			in:      map[string]string{" ": "v"},
			setup:   func(*mockSettingsStore) {},
			wantErr: ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := new(mockSettingsStore)
			tt.setup(st)
			assets := &regenAssets{res: &RegenResult{Regenerated: 2, FailedIDs: []string{}}}
			svc := NewSettingsService(st, assets, logger.Discard())

			out, err := svc.Update(ctx, tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, out)
				st.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
				assert.Zero(t, assets.calls)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKeys, out.Updated)
			if tt.wantRegen {
				assert.Equal(t, 1, assets.calls)
				require.NotNil(t, out.Regenerated)
				assert.Equal(t, 2, out.Regenerated.Regenerated)
			} else {
				assert.Zero(t, assets.calls)
				assert.Nil(t, out.Regenerated)
			}
			st.AssertExpectations(t)
		})
	}
}

func TestSettingsService_Update_StoreFailure(t *testing.T) {
	st := new(mockSettingsStore)
	st.On("Set", mock.Anything, model.SettingQRColor, "#000000").Return(errors.New("disk full"))
	assets := &regenAssets{}
	svc := NewSettingsService(st, assets, logger.Discard())

	_, err := svc.Update(context.Background(), map[string]string{model.SettingQRColor: "#000000"})
	assert.EqualError(t, err, "disk full")
	assert.Zero(t, assets.calls)
}

func TestSettingsService_Update_RegenerateFailure(t *testing.T) {
	st := new(mockSettingsStore)
	st.On("Set", mock.Anything, model.SettingQRColor, "#ff0000").Return(nil)
	assets := &regenAssets{err: errors.New("db down")}
	svc := NewSettingsService(st, assets, logger.Discard())

	_, err := svc.Update(context.Background(), map[string]string{model.SettingQRColor: "#ff0000"})
	assert.EqualError(t, err, "regenerate artifacts: db down")
}

func TestSettingsService_All(t *testing.T) {
	st := new(mockSettingsStore)
	st.On("All", mock.Anything).Return(map[string]string{model.SettingCompanyName: "AFOSI"}, nil)
	svc := NewSettingsService(st, &regenAssets{}, logger.Discard())

	got, err := svc.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AFOSI", got[model.SettingCompanyName])
}
