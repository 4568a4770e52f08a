// internal/models/query_types.go
package models

type QueryType string

const (
	QueryTypeInfluencerCandidatePool QueryType = "influencer_candidate_pool"
	QueryTypeInfluencerProfile       QueryType = "influencer_profile"
	QueryTypeCampaignDetails         QueryType = "campaign_details"
)
