// internal/models/campaign.go
package models

type Campaign struct {
	ID                string   `json:"id"`
	Artist            string   `json:"artist"`
	Song              string   `json:"song"`
	StartDate         string   `json:"startDate"`
	AudienceTerritory string   `json:"audienceTerritory"`
	Budget            float64  `json:"budget"`
	ConvertedBudget   *float64 `json:"convertedBudget,omitempty"`
	ProfileType       string   `json:"profileType"`
	Platform          string   `json:"platform"`
	Creative          string   `json:"creative,omitempty"`
	CreativeReference string   `json:"creativeReference,omitempty"`
	ProfileReference  string   `json:"profileReference,omitempty"`
	Hashtags          []string `json:"hashtags,omitempty"`
	TrackID           string   `json:"trackId"`
	TrackName         string   `json:"trackName"`
	ArtistName        string   `json:"artistName"`
	Status            string   `json:"status"`
	Progress          int      `json:"progress"`
	CreatedAt         string   `json:"createdAt"`
	UpdatedAt         string   `json:"updatedAt"`
}

const (
	CampaignStatusActive    = "active"
	CampaignStatusScheduled = "scheduled"
	CampaignStatusCompleted = "completed"
)

const (
	ProfileTypeMicro = "micro"
	ProfileTypeMacro = "macro"
	ProfileTypeMega  = "mega"
)

const (
	PlatformInstagram = "instagram"
	PlatformTikTok    = "tiktok"
	PlatformYouTube   = "youtube"
)
