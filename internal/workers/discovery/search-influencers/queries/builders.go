// internal/workers/discovery/search-influencers/queries/builders.go
package queries

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var (
	ErrUnknownSearchType = errors.New("unknown search type")
	ErrMissingIndex      = errors.New("index name is required")
)

// InfluencerSearch defines the structure of a search request.
type InfluencerSearch struct {
	Index        string
	SearchType   string
	Filters      map[string]interface{}
	InfluencerID string
	Pagination   struct {
		From int
		Size int
	}
}

// BuildSearch builds an Elasticsearch search request based on search type and filters.
func BuildSearch(esClient *elasticsearch.Client, is InfluencerSearch) (*esapi.SearchRequest, error) {
	if is.Index == "" {
		return nil, ErrMissingIndex
	}

	var queryBody map[string]interface{}

	switch is.SearchType {
	case "influencer_index":
		queryBody = buildInfluencerSearchQuery(is)
	case "similar_influencers":
		queryBody = buildSimilarInfluencersQuery(is)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSearchType, is.SearchType)
	}

	body, _ := json.Marshal(queryBody)

	req := esapi.SearchRequest{
		Index:  []string{is.Index},
		Body:   strings.NewReader(string(body)),
		From:   &is.Pagination.From,
		Size:   &is.Pagination.Size,
		Pretty: true,
	}

	return &req, nil
}

// buildInfluencerSearchQuery assembles the main discovery query dynamically.
func buildInfluencerSearchQuery(is InfluencerSearch) map[string]interface{} {
	boolQuery := make(map[string]interface{})
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	if keywords, ok := is.Filters["keywords"].(string); ok && keywords != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  keywords,
				"fields": []string{"handle^3", "display_name^2", "bio"},
				"type":   "best_fields",
			},
		})
	}

	if gender, ok := is.Filters["gender"].(string); ok && gender != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"gender": gender},
		})
	}

	if verified, ok := is.Filters["verified"].(bool); ok && verified {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"verified": true},
		})
	}

	// Brands and deleted profiles never surface in discovery results.
	filterClauses = append(filterClauses,
		map[string]interface{}{"term": map[string]interface{}{"is_brand": false}},
		map[string]interface{}{"term": map[string]interface{}{"is_deleted": false}},
	)

	if reachRange, ok := is.Filters["reachRange"].(map[string]interface{}); ok {
		rangeClause := make(map[string]interface{})
		if min, exists := toFloat(reachRange["min"]); exists && min > 0 {
			rangeClause["gte"] = min
		}
		if max, exists := toFloat(reachRange["max"]); exists && max > 0 {
			rangeClause["lte"] = max
		}
		if len(rangeClause) > 0 {
			filterClauses = append(filterClauses, map[string]interface{}{
				"range": map[string]interface{}{"reach": rangeClause},
			})
		}
	}

	if regions, ok := is.Filters["regions"].([]interface{}); ok && len(regions) > 0 {
		terms := make([]string, 0, len(regions))
		for _, region := range regions {
			if s, ok := region.(string); ok {
				terms = append(terms, s)
			}
		}
		if len(terms) > 0 {
			filterClauses = append(filterClauses, map[string]interface{}{
				"terms": map[string]interface{}{"last_location": terms},
			})
		}
	}

	if len(mustClauses) == 0 {
		mustClauses = append(mustClauses, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	boolQuery["must"] = mustClauses
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQuery,
		},
	}

	if sortBy, ok := is.Filters["sortBy"].(string); ok {
		switch sortBy {
		case "reach":
			query["sort"] = []map[string]interface{}{{"reach": "desc"}}
		case "handle":
			query["sort"] = []map[string]interface{}{{"handle": "asc"}}
		}
	}

	return query
}

func toFloat(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// buildSimilarInfluencersQuery builds a "creators like this one" query.
func buildSimilarInfluencersQuery(is InfluencerSearch) map[string]interface{} {
	if is.InfluencerID == "" {
		return map[string]interface{}{
			"query": map[string]interface{}{
				"match_none": map[string]interface{}{},
			},
		}
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"more_like_this": map[string]interface{}{
				"fields": []string{"handle", "display_name", "bio"},
				"like": []map[string]interface{}{
					{"_index": is.Index, "_id": is.InfluencerID},
				},
				"min_term_freq":   1,
				"max_query_terms": 12,
				"min_doc_freq":    1,
				"min_word_length": 3,
			},
		},
	}
}
