// internal/workers/data-access/query-influencers/models.go
package queryinfluencers

import "campaign-workers/internal/models"

type Input struct {
	QueryType    string `json:"queryType"`
	Gender       string `json:"gender,omitempty"`
	Region       string `json:"region,omitempty"`
	Limit        int    `json:"limit,omitempty"`
	InfluencerID string `json:"influencerId,omitempty"`
	CampaignID   string `json:"campaignId,omitempty"`
}

type Output struct {
	Candidates         interface{} `json:"candidates"`
	RowCount           int         `json:"rowCount"`
	QueryExecutionTime int64       `json:"queryExecutionTime"` // milliseconds
}

type QueryType = models.QueryType

var (
	QueryTypeInfluencerCandidatePool = models.QueryTypeInfluencerCandidatePool
	QueryTypeInfluencerProfile       = models.QueryTypeInfluencerProfile
	QueryTypeCampaignDetails         = models.QueryTypeCampaignDetails
)
