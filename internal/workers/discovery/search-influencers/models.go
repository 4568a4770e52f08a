// internal/workers/discovery/search-influencers/models.go
package searchinfluencers

type Input struct {
	IndexName    string                 `json:"indexName"`
	SearchType   string                 `json:"searchType"`
	Filters      map[string]interface{} `json:"filters"`
	InfluencerID string                 `json:"influencerId,omitempty"`
	Pagination   map[string]interface{} `json:"pagination,omitempty"`
}

type Output struct {
	Data      []map[string]interface{} `json:"data"`
	TotalHits int64                    `json:"totalHits"`
	MaxScore  float64                  `json:"maxScore"`
	Took      int64                    `json:"took"`
}
