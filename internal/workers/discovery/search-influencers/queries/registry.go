// internal/workers/discovery/search-influencers/queries/registry.go
package queries

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

type SearchResult struct {
	Data      []map[string]interface{}
	TotalHits int64
	MaxScore  float64
	Took      int64
}

func Execute(ctx context.Context, esClient *elasticsearch.Client, input map[string]interface{}) (*SearchResult, error) {
	is := InfluencerSearch{
		SearchType: "influencer_index",
		Filters:    map[string]interface{}{},
		Pagination: struct{ From, Size int }{0, 20},
	}

	if index, ok := input["indexName"].(string); ok {
		is.Index = index
	}
	if searchType, ok := input["searchType"].(string); ok && searchType != "" {
		is.SearchType = searchType
	}
	if filters, ok := input["filters"].(map[string]interface{}); ok {
		is.Filters = filters
	}
	if influencerID, ok := input["influencerId"].(string); ok {
		is.InfluencerID = influencerID
	}
	if pagination, ok := input["pagination"].(map[string]interface{}); ok {
		if from, exists := pagination["from"].(float64); exists {
			is.Pagination.From = int(from)
		}
		if size, exists := pagination["size"].(float64); exists {
			is.Pagination.Size = int(size)
			if is.Pagination.Size > 100 {
				is.Pagination.Size = 100
			}
			if is.Pagination.Size < 1 {
				is.Pagination.Size = 20
			}
		}
	}

	req, err := BuildSearch(esClient, is)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := req.Do(ctx, esClient)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search query failed: %s", res.String())
	}

	var r map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}

	hits, ok := r["hits"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("search response missing hits")
	}

	total := 0.0
	if totalObj, ok := hits["total"].(map[string]interface{}); ok {
		if v, ok := totalObj["value"].(float64); ok {
			total = v
		}
	}
	maxScore := 0.0
	if ms, ok := hits["max_score"].(float64); ok {
		maxScore = ms
	}

	var data []map[string]interface{}
	if hitList, ok := hits["hits"].([]interface{}); ok {
		for _, hit := range hitList {
			if source, ok := hit.(map[string]interface{})["_source"].(map[string]interface{}); ok {
				data = append(data, source)
			}
		}
	}

	return &SearchResult{
		Data:      data,
		TotalHits: int64(total),
		MaxScore:  maxScore,
		Took:      time.Since(start).Milliseconds(),
	}, nil
}
