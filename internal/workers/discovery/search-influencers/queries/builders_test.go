package queries

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSearch_Errors(t *testing.T) {
	t.Run("missing index", func(t *testing.T) {
		_, err := BuildSearch(nil, InfluencerSearch{SearchType: "influencer_index"})
		assert.ErrorIs(t, err, ErrMissingIndex)
	})

	t.Run("unknown search type", func(t *testing.T) {
		_, err := BuildSearch(nil, InfluencerSearch{Index: "influencer_profiles", SearchType: "bogus"})
		assert.ErrorIs(t, err, ErrUnknownSearchType)
	})
}

func TestBuildSearch_AlwaysExcludesBrandsAndDeleted(t *testing.T) {
	req, err := BuildSearch(nil, InfluencerSearch{
		Index:      "influencer_profiles",
		SearchType: "influencer_index",
		Filters:    map[string]interface{}{},
	})
	require.NoError(t, err)

	raw, err := io.ReadAll(req.Body)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))

	boolQuery := body["query"].(map[string]interface{})["bool"].(map[string]interface{})
	filters := boolQuery["filter"].([]interface{})

	var sawBrand, sawDeleted bool
	for _, clause := range filters {
		term, ok := clause.(map[string]interface{})["term"].(map[string]interface{})
		if !ok {
			continue
		}
		if v, ok := term["is_brand"].(bool); ok && !v {
			sawBrand = true
		}
		if v, ok := term["is_deleted"].(bool); ok && !v {
			sawDeleted = true
		}
	}
	assert.True(t, sawBrand, "is_brand filter missing")
	assert.True(t, sawDeleted, "is_deleted filter missing")
}

func TestBuildSearch_SimilarInfluencersWithoutID(t *testing.T) {
	req, err := BuildSearch(nil, InfluencerSearch{
		Index:      "influencer_profiles",
		SearchType: "similar_influencers",
	})
	require.NoError(t, err)

	raw, err := io.ReadAll(req.Body)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))

	_, hasMatchNone := body["query"].(map[string]interface{})["match_none"]
	assert.True(t, hasMatchNone, "expected match_none when no influencer id is given")
}
