// internal/workers/infrastructure/build-response/handler_test.go
package buildresponse

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"campaign-workers/internal/common/logger"
)

// ==========================
// Test Helper Functions
// ==========================

const testRegistry = `{
	"templates": [
		{
			"id": "recommendation-list",
			"type": "recommendation-list",
			"version": "1.0.0",
			"schema": {
				"type": "object",
				"required": ["influencers"],
				"properties": {
					"influencers": {"type": "array"}
				}
			},
			"template": {
				"shortlist": "{{influencers}}",
				"poolCount": "{{poolCount}}",
				"summary": {
					"eligible": "{{eligibleCount}}",
					"territory": "{{campaign.territory}}"
				}
			}
		},
		{
			"id": "campaign-summary",
			"type": "campaign-summary",
			"version": "1.0.0",
			"schema": {},
			"template": {
				"campaignId": "{{campaignId}}",
				"status": "{{status}}",
				"track": {
					"id": "{{track.id}}",
					"name": "{{track.name}}"
				}
			}
		}
	]
}`

func writeTestRegistry(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "templates.json")
	require.NoError(t, os.WriteFile(path, []byte(testRegistry), 0o644))
	return path
}

func createTestHandler(t *testing.T) *Handler {
	config := &Config{
		TemplateRegistry: writeTestRegistry(t),
		CacheTTL:         time.Minute,
		AppVersion:       "test",
		Timeout:          10 * time.Second,
	}
	return NewHandler(config, logger.NewZapAdapter(zaptest.NewLogger(t)))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	handler := createTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{
		TemplateId: "recommendation-list",
		RequestId:  "req-123",
		Data: map[string]interface{}{
			"influencers": []interface{}{
				map[string]interface{}{"id": "101", "handle": "beatsbyluna"},
			},
			"poolCount":     float64(40),
			"eligibleCount": float64(12),
			"campaign": map[string]interface{}{
				"territory": "US",
			},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "req-123", output.Response.RequestId)
	assert.Equal(t, "success", output.Response.Status)
	assert.Equal(t, float64(40), output.Response.Data["poolCount"])

	shortlist, ok := output.Response.Data["shortlist"].([]interface{})
	require.True(t, ok)
	require.Len(t, shortlist, 1)
	assert.Equal(t, "beatsbyluna", shortlist[0].(map[string]interface{})["handle"])

	summary, ok := output.Response.Data["summary"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(12), summary["eligible"])
	assert.Equal(t, "US", summary["territory"])

	assert.NotEmpty(t, output.Response.Metadata.Timestamp)
	assert.Equal(t, "test", output.Response.Metadata.Version)
}

func TestHandler_Execute_TemplateNotFound(t *testing.T) {
	handler := createTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{
		TemplateId: "nonexistent-template",
		RequestId:  "req-123",
		Data:       map[string]interface{}{},
	})

	assert.ErrorIs(t, err, ErrTemplateNotFound)
	assert.Nil(t, output)
}

func TestHandler_Execute_SchemaValidationFailure(t *testing.T) {
	handler := createTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{
		TemplateId: "recommendation-list",
		RequestId:  "req-123",
		Data: map[string]interface{}{
			"poolCount": float64(40),
		},
	})

	assert.ErrorIs(t, err, ErrTemplateValidationFailed)
	assert.Nil(t, output)
}

func TestHandler_Execute_TemplateCaching(t *testing.T) {
	handler := createTestHandler(t)

	_, err := handler.Execute(context.Background(), &Input{
		TemplateId: "campaign-summary",
		RequestId:  "req-1",
		Data:       map[string]interface{}{"campaignId": "c-1", "status": "active"},
	})
	require.NoError(t, err)

	// Registry file is gone but the template stays cached.
	require.NoError(t, os.Remove(handler.config.TemplateRegistry))

	output, err := handler.Execute(context.Background(), &Input{
		TemplateId: "campaign-summary",
		RequestId:  "req-2",
		Data:       map[string]interface{}{"campaignId": "c-2", "status": "active"},
	})
	require.NoError(t, err)
	assert.Equal(t, "c-2", output.Response.Data["campaignId"])
}

// ==========================
// Wire Format Tests
// ==========================

func TestNormalizeWireNumbers(t *testing.T) {
	tests := []struct {
		name     string
		in       interface{}
		expected interface{}
	}{
		{name: "small int64 becomes float64", in: int64(42), expected: float64(42)},
		{name: "oversized int64 becomes decimal string", in: int64(9007199254740993), expected: "9007199254740993"},
		{name: "negative oversized int64", in: int64(-9007199254740993), expected: "-9007199254740993"},
		{name: "boundary value stays numeric", in: int64(1) << 53, expected: float64(int64(1) << 53)},
		{name: "json number above the boundary", in: json.Number("9007199254740993"), expected: "9007199254740993"},
		{name: "small json number", in: json.Number("12"), expected: float64(12)},
		{name: "fractional json number", in: json.Number("3.5"), expected: 3.5},
		{name: "oversized uint64", in: uint64(18446744073709551615), expected: "18446744073709551615"},
		{name: "string untouched", in: "hello", expected: "hello"},
		{name: "bool untouched", in: true, expected: true},
		{name: "float64 passes through", in: float64(500.25), expected: float64(500.25)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeWireNumbers(tt.in))
		})
	}
}

func TestNormalizeWireNumbers_WalksNestedStructures(t *testing.T) {
	normalized := normalizeWireNumbers(map[string]interface{}{
		"ids": []interface{}{int64(9007199254740993), int64(7)},
		"nested": map[string]interface{}{
			"trackKey": json.Number("18014398509481985"),
		},
	}).(map[string]interface{})

	ids := normalized["ids"].([]interface{})
	assert.Equal(t, "9007199254740993", ids[0])
	assert.Equal(t, float64(7), ids[1])

	nested := normalized["nested"].(map[string]interface{})
	assert.Equal(t, "18014398509481985", nested["trackKey"])
}

func TestHandler_Execute_LargeIDsSurviveJSONRoundTrip(t *testing.T) {
	handler := createTestHandler(t)

	output, err := handler.Execute(context.Background(), &Input{
		TemplateId: "campaign-summary",
		RequestId:  "req-123",
		Data: map[string]interface{}{
			"campaignId": "c-1",
			"status":     "active",
			"track": map[string]interface{}{
				"id":   int64(9007199254740993),
				"name": "Night Drive",
			},
		},
	})
	require.NoError(t, err)

	track := output.Response.Data["track"].(map[string]interface{})
	assert.Equal(t, "9007199254740993", track["id"])

	encoded, err := json.Marshal(output)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"9007199254740993"`)

	var decoded Output
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	decodedTrack := decoded.Response.Data["track"].(map[string]interface{})
	assert.Equal(t, "9007199254740993", decodedTrack["id"])
}

func TestHandler_Execute_LargeIDsFromJobVariables(t *testing.T) {
	handler := createTestHandler(t)

	// The id arrives as a bare JSON number, the shape real jobs carry.
	variables := `{
		"templateId": "campaign-summary",
		"requestId": "req-912",
		"data": {
			"campaignId": "c-1",
			"status": "active",
			"track": {"id": 9007199254740993, "name": "Neon Skyline"}
		}
	}`

	input, err := decodeInput(variables)
	require.NoError(t, err)

	output, err := handler.Execute(context.Background(), input)
	require.NoError(t, err)

	track := output.Response.Data["track"].(map[string]interface{})
	assert.Equal(t, "9007199254740993", track["id"])
	assert.Equal(t, "Neon Skyline", track["name"])

	encoded, err := json.Marshal(output)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"9007199254740993"`)
	assert.NotContains(t, string(encoded), "9.007199254740992e+15")
}

// ==========================
// Edge Cases
// ==========================

func TestHandler_EdgeCases(t *testing.T) {
	t.Run("missing placeholder yields nil value", func(t *testing.T) {
		handler := createTestHandler(t)

		output, err := handler.Execute(context.Background(), &Input{
			TemplateId: "campaign-summary",
			RequestId:  "req-123",
			Data:       map[string]interface{}{"campaignId": "c-1"},
		})
		require.NoError(t, err)
		assert.Nil(t, output.Response.Data["status"])
	})

	t.Run("missing registry file", func(t *testing.T) {
		config := &Config{
			TemplateRegistry: filepath.Join(t.TempDir(), "missing.json"),
			CacheTTL:         time.Minute,
			Timeout:          10 * time.Second,
		}
		handler := NewHandler(config, logger.NewZapAdapter(zaptest.NewLogger(t)))

		output, err := handler.Execute(context.Background(), &Input{
			TemplateId: "campaign-summary",
			RequestId:  "req-123",
			Data:       map[string]interface{}{},
		})
		assert.Error(t, err)
		assert.Nil(t, output)
	})

	t.Run("malformed registry", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "templates.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		config := &Config{
			TemplateRegistry: path,
			CacheTTL:         time.Minute,
			Timeout:          10 * time.Second,
		}
		handler := NewHandler(config, logger.NewZapAdapter(zaptest.NewLogger(t)))

		_, err := handler.Execute(context.Background(), &Input{
			TemplateId: "campaign-summary",
			RequestId:  "req-123",
			Data:       map[string]interface{}{},
		})
		assert.Error(t, err)
	})
}
