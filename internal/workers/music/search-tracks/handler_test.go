package searchtracks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"campaign-workers/internal/common/logger"
	"campaign-workers/internal/models"
)

// ==========================
// Mock Implementations
// ==========================

type MockTrackSearcher struct {
	SearchTracksFunc func(ctx context.Context, query string, limit int) ([]models.Track, error)
	calls            int
}

func (m *MockTrackSearcher) SearchTracks(ctx context.Context, query string, limit int) ([]models.Track, error) {
	m.calls++
	return m.SearchTracksFunc(ctx, query, limit)
}

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Timeout:      5 * time.Second,
		CacheTTL:     time.Minute,
		DefaultLimit: 10,
	}
}

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

func createTestCache(t *testing.T) *redis.Client {
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func sampleTracks() []models.Track {
	return []models.Track{
		{
			ID:         "3n3Ppam7vgaVa1iaRUc9Lp",
			Name:       "Night Drive",
			Artists:    []string{"Luna Park"},
			Album:      "Midnight Sessions",
			DurationMS: 214000,
		},
		{
			ID:         "7ouMYWpwJ422jRcDASZB7P",
			Name:       "Night Drive (Remix)",
			Artists:    []string{"Luna Park", "DJ Rook"},
			Album:      "Midnight Sessions Deluxe",
			DurationMS: 198000,
		},
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	searcher := &MockTrackSearcher{
		SearchTracksFunc: func(ctx context.Context, query string, limit int) ([]models.Track, error) {
			assert.Equal(t, "night drive", query)
			assert.Equal(t, 10, limit)
			return sampleTracks(), nil
		},
	}

	handler := NewHandler(createTestConfig(), searcher, createTestCache(t), createTestLogger(t))
	output, err := handler.Execute(context.Background(), &Input{Query: "night drive"})

	require.NoError(t, err)
	assert.Equal(t, 2, output.Total)
	assert.False(t, output.FromCache)
	assert.Equal(t, "Night Drive", output.Tracks[0].Name)
}

func TestHandler_Execute_CacheHit(t *testing.T) {
	searcher := &MockTrackSearcher{
		SearchTracksFunc: func(ctx context.Context, query string, limit int) ([]models.Track, error) {
			return sampleTracks(), nil
		},
	}

	handler := NewHandler(createTestConfig(), searcher, createTestCache(t), createTestLogger(t))

	first, err := handler.Execute(context.Background(), &Input{Query: "night drive"})
	require.NoError(t, err)
	assert.False(t, first.FromCache)

	second, err := handler.Execute(context.Background(), &Input{Query: "night drive"})
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Tracks, second.Tracks)
	assert.Equal(t, 1, searcher.calls, "second lookup must come from cache")
}

func TestHandler_Execute_DifferentLimitsMissCache(t *testing.T) {
	searcher := &MockTrackSearcher{
		SearchTracksFunc: func(ctx context.Context, query string, limit int) ([]models.Track, error) {
			return sampleTracks()[:1], nil
		},
	}

	handler := NewHandler(createTestConfig(), searcher, createTestCache(t), createTestLogger(t))

	_, err := handler.Execute(context.Background(), &Input{Query: "night drive", Limit: 5})
	require.NoError(t, err)
	_, err = handler.Execute(context.Background(), &Input{Query: "night drive", Limit: 20})
	require.NoError(t, err)

	assert.Equal(t, 2, searcher.calls)
}

func TestHandler_Execute_SearchFailure(t *testing.T) {
	searcher := &MockTrackSearcher{
		SearchTracksFunc: func(ctx context.Context, query string, limit int) ([]models.Track, error) {
			return nil, errors.New("upstream 503")
		},
	}

	handler := NewHandler(createTestConfig(), searcher, createTestCache(t), createTestLogger(t))
	output, err := handler.Execute(context.Background(), &Input{Query: "night drive"})

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrTrackSearchFailed)
	assert.Nil(t, output)
}

func TestHandler_Execute_EmptyResultNotCached(t *testing.T) {
	searcher := &MockTrackSearcher{
		SearchTracksFunc: func(ctx context.Context, query string, limit int) ([]models.Track, error) {
			return []models.Track{}, nil
		},
	}

	handler := NewHandler(createTestConfig(), searcher, createTestCache(t), createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{Query: "obscure song"})
	require.NoError(t, err)
	assert.Equal(t, 0, output.Total)

	_, err = handler.Execute(context.Background(), &Input{Query: "obscure song"})
	require.NoError(t, err)
	assert.Equal(t, 2, searcher.calls, "empty results should not be cached")
}

// ==========================
// Edge Cases
// ==========================

func TestHandler_EdgeCases(t *testing.T) {
	t.Run("empty query", func(t *testing.T) {
		handler := NewHandler(createTestConfig(), &MockTrackSearcher{}, nil, createTestLogger(t))
		output, err := handler.Execute(context.Background(), &Input{})
		assert.Error(t, err)
		assert.ErrorIs(t, err, ErrTrackSearchFailed)
		assert.Nil(t, output)
	})

	t.Run("nil input", func(t *testing.T) {
		handler := NewHandler(createTestConfig(), &MockTrackSearcher{}, nil, createTestLogger(t))
		output, err := handler.Execute(context.Background(), nil)
		assert.Error(t, err)
		assert.Nil(t, output)
	})

	t.Run("works without cache", func(t *testing.T) {
		searcher := &MockTrackSearcher{
			SearchTracksFunc: func(ctx context.Context, query string, limit int) ([]models.Track, error) {
				return sampleTracks(), nil
			},
		}
		handler := NewHandler(createTestConfig(), searcher, nil, createTestLogger(t))
		output, err := handler.Execute(context.Background(), &Input{Query: "night drive"})
		require.NoError(t, err)
		assert.Equal(t, 2, output.Total)
	})
}

func TestHandler_Execute_CacheUnavailable(t *testing.T) {
	cache, mock := redismock.NewClientMock()
	cacheKey := "tracks:search:night drive:10"
	mock.ExpectGet(cacheKey).SetErr(errors.New("connection refused"))
	mock.Regexp().ExpectSet(cacheKey, `.*`, time.Minute).SetErr(errors.New("connection refused"))

	searcher := &MockTrackSearcher{
		SearchTracksFunc: func(ctx context.Context, query string, limit int) ([]models.Track, error) {
			return sampleTracks(), nil
		},
	}
	handler := NewHandler(createTestConfig(), searcher, cache, createTestLogger(t))

	// A broken cache must never fail the search itself.
	output, err := handler.Execute(context.Background(), &Input{Query: "night drive"})
	require.NoError(t, err)
	assert.False(t, output.FromCache)
	assert.Len(t, output.Tracks, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
