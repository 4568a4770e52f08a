// internal/workers/recommendation/recommend-influencers/models.go
package recommendinfluencers

import "campaign-workers/internal/models"

// Input carries the campaign context plus the candidate pool fetched by the
// query-influencers worker earlier in the process.
type Input struct {
	Region     string                     `json:"region"`
	Budget     float64                    `json:"budget"`
	Gender     string                     `json:"gender,omitempty"`
	Candidates []models.InfluencerProfile `json:"candidates"`
}

// Output is the ranked shortlist written back to the process variables.
type Output struct {
	Influencers   []RecommendedInfluencer `json:"influencers"`
	PoolCount     int                     `json:"poolCount"`
	EligibleCount int                     `json:"eligibleCount"`
}

// RecommendedInfluencer is the wire shape of a shortlist entry. The id stays
// a decimal string so 64-bit values survive any JSON hop.
type RecommendedInfluencer struct {
	ID          string `json:"id"`
	Handle      string `json:"handle"`
	DisplayName string `json:"displayName"`
	Gender      string `json:"gender"`
	Verified    bool   `json:"verified"`
	Price       string `json:"price,omitempty"`
	Reach       int64  `json:"reach"`
}
