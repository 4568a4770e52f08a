package recommendinfluencers

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"campaign-workers/internal/common/logger"
	"campaign-workers/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Timeout:       5 * time.Second,
		MaxResults:    20,
		DefaultGender: "Female",
	}
}

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

func createTestHandler(t *testing.T) *Handler {
	return NewHandler(createTestConfig(), createTestLogger(t))
}

func strPtr(s string) *string {
	return &s
}

func candidate(id int64, price string, instagramFollowers string) models.InfluencerProfile {
	return models.InfluencerProfile{
		ID:                 id,
		Handle:             fmt.Sprintf("handle%d", id),
		DisplayName:        fmt.Sprintf("Creator %d", id),
		Gender:             "Female",
		Price:              price,
		InstagramFollowers: strPtr(instagramFollowers),
	}
}

// ==========================
// Eligibility Tests
// ==========================

// Budget 1000 gives a selection window of [200, 800] in every test below.

func TestHandler_Execute_PriceEligibility(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		expected bool
	}{
		{name: "range inside window", price: "$300 - $500", expected: true},
		{name: "range straddling window", price: "$700 - $1,200", expected: true},
		{name: "range entirely above window", price: "$900 - $2,000", expected: false},
		{name: "range entirely below window", price: "$50 - $150", expected: false},
		{name: "range touching lower bound", price: "$100 - $200", expected: true},
		{name: "range touching upper bound", price: "$800 - $1,500", expected: true},
		{name: "upper bound cheap", price: "< $250", expected: true},
		{name: "upper bound too cheap", price: "< $150", expected: false},
		{name: "lower bound overlapping", price: "$600 >", expected: true},
		{name: "lower bound too expensive", price: "$900 >", expected: false},
		{name: "empty price kept", price: "", expected: true},
		{name: "unknown price kept", price: "unknown", expected: true},
		{name: "unknown mixed case kept", price: "UnKnOwN", expected: true},
		{name: "garbage price kept", price: "call my agent", expected: true},
		{name: "bare number kept", price: "$500", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := createTestHandler(t)
			output, err := handler.Execute(context.Background(), &Input{
				Region:     "US",
				Budget:     1000,
				Candidates: []models.InfluencerProfile{candidate(1, tt.price, "10,000")},
			})

			require.NoError(t, err)
			assert.Equal(t, 1, output.PoolCount)
			if tt.expected {
				assert.Len(t, output.Influencers, 1, "expected candidate to be kept")
			} else {
				assert.Empty(t, output.Influencers, "expected candidate to be dropped")
			}
		})
	}
}

func TestHandler_Execute_ExcludesBrandsAndDeleted(t *testing.T) {
	handler := createTestHandler(t)

	brand := candidate(1, "$300 - $500", "900,000")
	brand.IsBrand = true
	deleted := candidate(2, "$300 - $500", "800,000")
	deleted.IsDeleted = true
	keeper := candidate(3, "$300 - $500", "1,000")

	output, err := handler.Execute(context.Background(), &Input{
		Budget:     1000,
		Candidates: []models.InfluencerProfile{brand, deleted, keeper},
	})

	require.NoError(t, err)
	assert.Equal(t, 3, output.PoolCount)
	assert.Equal(t, 1, output.EligibleCount)
	require.Len(t, output.Influencers, 1)
	assert.Equal(t, "3", output.Influencers[0].ID)
}

// ==========================
// Ranking Tests
// ==========================

func TestHandler_Execute_RanksByReachDescending(t *testing.T) {
	handler := createTestHandler(t)

	small := candidate(1, "$300 - $500", "50")
	big := candidate(2, "$300 - $500", "5,000")
	mid := candidate(3, "$300 - $500", "500")

	output, err := handler.Execute(context.Background(), &Input{
		Budget:     1000,
		Candidates: []models.InfluencerProfile{small, big, mid},
	})

	require.NoError(t, err)
	require.Len(t, output.Influencers, 3)
	assert.Equal(t, int64(5000), output.Influencers[0].Reach)
	assert.Equal(t, int64(500), output.Influencers[1].Reach)
	assert.Equal(t, int64(50), output.Influencers[2].Reach)
}

func TestHandler_Execute_ReachIsMaxAcrossPlatforms(t *testing.T) {
	handler := createTestHandler(t)

	profile := models.InfluencerProfile{
		ID:                 7,
		Handle:             "crossplatform",
		Gender:             "Female",
		Price:              "$300 - $500",
		InstagramFollowers: strPtr("10,000"),
		TikTokFollowers:    strPtr("250,000"),
		YouTubeFollowers:   strPtr("not tracked"),
	}

	output, err := handler.Execute(context.Background(), &Input{
		Budget:     1000,
		Candidates: []models.InfluencerProfile{profile},
	})

	require.NoError(t, err)
	require.Len(t, output.Influencers, 1)
	assert.Equal(t, int64(250000), output.Influencers[0].Reach)
}

func TestHandler_Execute_StableOrderOnTies(t *testing.T) {
	handler := createTestHandler(t)

	first := candidate(10, "$300 - $500", "1,000")
	second := candidate(11, "$300 - $500", "1,000")
	third := candidate(12, "$300 - $500", "1,000")

	output, err := handler.Execute(context.Background(), &Input{
		Budget:     1000,
		Candidates: []models.InfluencerProfile{first, second, third},
	})

	require.NoError(t, err)
	require.Len(t, output.Influencers, 3)
	assert.Equal(t, "10", output.Influencers[0].ID)
	assert.Equal(t, "11", output.Influencers[1].ID)
	assert.Equal(t, "12", output.Influencers[2].ID)
}

func TestHandler_Execute_TruncatesToMaxResults(t *testing.T) {
	handler := createTestHandler(t)

	candidates := make([]models.InfluencerProfile, 0, 25)
	for i := 0; i < 25; i++ {
		candidates = append(candidates, candidate(int64(i+1), "$300 - $500", fmt.Sprintf("%d", (i+1)*100)))
	}

	output, err := handler.Execute(context.Background(), &Input{
		Budget:     1000,
		Candidates: candidates,
	})

	require.NoError(t, err)
	assert.Equal(t, 25, output.PoolCount)
	assert.Equal(t, 25, output.EligibleCount)
	require.Len(t, output.Influencers, 20)
	assert.Equal(t, int64(2500), output.Influencers[0].Reach)
	assert.Equal(t, int64(600), output.Influencers[19].Reach)
}

// ==========================
// Edge Cases
// ==========================

func TestHandler_EdgeCases(t *testing.T) {
	t.Run("nil input", func(t *testing.T) {
		handler := createTestHandler(t)
		output, err := handler.Execute(context.Background(), nil)
		assert.Error(t, err)
		assert.ErrorIs(t, err, ErrRecommendationFailed)
		assert.Nil(t, output)
	})

	t.Run("empty pool is not an error", func(t *testing.T) {
		handler := createTestHandler(t)
		output, err := handler.Execute(context.Background(), &Input{
			Budget:     1000,
			Candidates: []models.InfluencerProfile{},
		})
		require.NoError(t, err)
		assert.Empty(t, output.Influencers)
		assert.Equal(t, 0, output.PoolCount)
		assert.Equal(t, 0, output.EligibleCount)
	})

	t.Run("nil candidates is not an error", func(t *testing.T) {
		handler := createTestHandler(t)
		output, err := handler.Execute(context.Background(), &Input{Budget: 1000})
		require.NoError(t, err)
		assert.Empty(t, output.Influencers)
	})

	t.Run("cancelled context", func(t *testing.T) {
		handler := createTestHandler(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		output, err := handler.Execute(ctx, &Input{Budget: 1000})
		assert.Error(t, err)
		assert.Nil(t, output)
	})

	t.Run("zero budget keeps only unknown prices", func(t *testing.T) {
		handler := createTestHandler(t)
		priced := candidate(1, "$300 - $500", "1,000")
		unknown := candidate(2, "unknown", "500")
		output, err := handler.Execute(context.Background(), &Input{
			Budget:     0,
			Candidates: []models.InfluencerProfile{priced, unknown},
		})
		require.NoError(t, err)
		require.Len(t, output.Influencers, 1)
		assert.Equal(t, "2", output.Influencers[0].ID)
	})
}

// ==========================
// Wire Format Tests
// ==========================

func TestHandler_Execute_IDsSurviveJSONRoundTrip(t *testing.T) {
	handler := createTestHandler(t)

	profile := candidate(9007199254740993, "$300 - $500", "1,000")

	output, err := handler.Execute(context.Background(), &Input{
		Budget:     1000,
		Candidates: []models.InfluencerProfile{profile},
	})
	require.NoError(t, err)
	require.Len(t, output.Influencers, 1)
	assert.Equal(t, "9007199254740993", output.Influencers[0].ID)

	encoded, err := json.Marshal(output)
	require.NoError(t, err)

	var decoded Output
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, "9007199254740993", decoded.Influencers[0].ID)
}

func TestHandler_Execute_InputIDsDecodeFromStrings(t *testing.T) {
	handler := createTestHandler(t)

	payload := []byte(`{
		"region": "US",
		"budget": 1000,
		"candidates": [
			{"id": "9007199254740993", "handle": "bigid", "gender": "Female", "price": "$300 - $500", "instagramFollowers": "2,000"}
		]
	}`)

	var input Input
	require.NoError(t, json.Unmarshal(payload, &input))
	require.Len(t, input.Candidates, 1)
	assert.Equal(t, int64(9007199254740993), input.Candidates[0].ID)

	output, err := handler.Execute(context.Background(), &input)
	require.NoError(t, err)
	require.Len(t, output.Influencers, 1)
	assert.Equal(t, "9007199254740993", output.Influencers[0].ID)
}

// ==========================
// Benchmarks
// ==========================

func BenchmarkHandler_Execute(b *testing.B) {
	handler := NewHandler(createTestConfig(), logger.NewNoOpLogger())

	candidates := make([]models.InfluencerProfile, 0, 100)
	for i := 0; i < 100; i++ {
		candidates = append(candidates, candidate(int64(i+1), "$300 - $500", fmt.Sprintf("%d", (i+1)*37)))
	}
	input := &Input{Budget: 1000, Candidates: candidates}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := handler.Execute(context.Background(), input)
		if err != nil {
			b.Fatal(err)
		}
	}
}
