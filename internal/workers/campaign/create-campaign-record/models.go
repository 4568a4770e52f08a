// internal/workers/campaign/create-campaign-record/models.go
package createcampaignrecord

type Input struct {
	UserID       string                 `json:"userId"`
	CampaignData map[string]interface{} `json:"campaignData"`
}

type Output struct {
	CampaignID     string `json:"campaignId"`
	CampaignStatus string `json:"campaignStatus"`
	Progress       int    `json:"progress"`
	CreatedAt      string `json:"createdAt"` // ISO 8601
}
