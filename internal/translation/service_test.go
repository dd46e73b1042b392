package translation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_translation "github.com/at-ishikawa/mizodict/internal/mocks/translation"
)

func TestService_Translate(t *testing.T) {
	tests := []struct {
		name        string
		direction   Direction
		text        string
		prepare     func(cache *MemoryCache)
		setupMock   func(m *mock_translation.MockProvider)
		want        Translation
		wantErrorIs error
	}{
		{
			name:      "cache miss calls the provider",
			direction: MizoToEnglish,
			text:      " In ",
			setupMock: func(m *mock_translation.MockProvider) {
				m.EXPECT().Translate(gomock.Any(), "In", "lus", "en").Return("house", nil)
			},
			want: Translation{Input: "In", Output: "house", Direction: MizoToEnglish, Model: "mock"},
		},
		{
			name:      "cache hit skips the provider",
			direction: EnglishToMizo,
			text:      "House",
			prepare: func(cache *MemoryCache) {
				cache.Set(EnglishToMizo, "house", "in")
			},
			setupMock: func(m *mock_translation.MockProvider) {},
			want:      Translation{Input: "House", Output: "in", Direction: EnglishToMizo, Model: "mock", Cached: true},
		},
		{
			name:        "empty text",
			direction:   EnglishToMizo,
			text:        "   ",
			setupMock:   func(m *mock_translation.MockProvider) {},
			wantErrorIs: ErrEmptyText,
		},
		{
			name:      "provider failure",
			direction: EnglishToMizo,
			text:      "house",
			setupMock: func(m *mock_translation.MockProvider) {
				m.EXPECT().Translate(gomock.Any(), "house", "en", "lus").Return("", errors.New("response error 403: forbidden"))
			},
			wantErrorIs: ErrNoTranslation,
		},
		{
			name:      "empty provider output",
			direction: EnglishToMizo,
			text:      "house",
			setupMock: func(m *mock_translation.MockProvider) {
				m.EXPECT().Translate(gomock.Any(), "house", "en", "lus").Return("  ", nil)
			},
			wantErrorIs: ErrNoTranslation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			provider := mock_translation.NewMockProvider(ctrl)
			provider.EXPECT().Name().Return("mock").AnyTimes()
			tt.setupMock(provider)

			cache := NewMemoryCache("service-test")
			if tt.prepare != nil {
				tt.prepare(cache)
			}
			service := NewService(provider, cache, 0, nil)

			got, err := service.Translate(context.Background(), tt.direction, tt.text)
			if tt.wantErrorIs != nil {
				assert.ErrorIs(t, err, tt.wantErrorIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_TranslateCachesResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mock_translation.NewMockProvider(ctrl)
	provider.EXPECT().Name().Return("mock").AnyTimes()
	provider.EXPECT().Translate(gomock.Any(), "house", "en", "lus").Return("in", nil).Times(1)

	service := NewService(provider, NewMemoryCache("service-test"), 0, nil)

	first, err := service.Translate(context.Background(), EnglishToMizo, "house")
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := service.Translate(context.Background(), EnglishToMizo, "HOUSE")
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, "in", second.Output)
}

func TestService_BatchTranslate(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mock_translation.NewMockProvider(ctrl)
	provider.EXPECT().Name().Return("mock").AnyTimes()
	provider.EXPECT().Translate(gomock.Any(), "in", "lus", "en").Return("house", nil)
	provider.EXPECT().Translate(gomock.Any(), "tui", "lus", "en").Return("", errors.New("response error 400"))

	service := NewService(provider, NewMemoryCache("service-test"), 2, nil)

	got := service.BatchTranslate(context.Background(), MizoToEnglish, []string{"in", "tui", "mei"})
	assert.Equal(t, []BatchItem{
		{Input: "in", Output: "house", Direction: MizoToEnglish},
	}, got)
}

func TestService_StatusAndClearCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mock_translation.NewMockProvider(ctrl)
	provider.EXPECT().Name().Return("Google Cloud Translate").AnyTimes()
	provider.EXPECT().Configured().Return(true).AnyTimes()

	cache := NewMemoryCache("service-test")
	cache.Set(MizoToEnglish, "in", "house")
	cache.Set(MizoToEnglish, "tui", "water")
	cache.Set(EnglishToMizo, "fire", "mei")
	service := NewService(provider, cache, 0, nil)

	assert.Equal(t, Status{
		ModelLoaded:      true,
		ModelName:        "Google Cloud Translate",
		APIKeyConfigured: true,
		CacheSize:        CacheSize{MizoToEnglish: 2, EnglishToMizo: 1},
		Status:           "online",
	}, service.Status())

	service.ClearCache()
	assert.Equal(t, CacheSize{}, service.Status().CacheSize)
}
