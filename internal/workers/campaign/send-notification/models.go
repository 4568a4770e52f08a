// internal/workers/campaign/send-notification/models.go
package sendnotification

type Input struct {
	RecipientID      string                 `json:"recipientId"`
	RecipientType    string                 `json:"recipientType"` // "owner" or "manager"
	NotificationType string                 `json:"notificationType"`
	CampaignID       string                 `json:"campaignId,omitempty"`
	Priority         string                 `json:"priority,omitempty"`
	Metadata         map[string]interface{} `json:"metadata,omitempty"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	Status         string `json:"status"` // "sent", "failed", "disabled"
	SentAt         string `json:"sentAt"` // ISO 8601
}

// Notification types
const (
	TypeCampaignCreated     = "campaign_created"
	TypeCampaignSubmitted   = "campaign_submitted"
	TypeRecommendationReady = "recommendation_ready"
)

// Statuses
const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

// Recipient types
const (
	RecipientTypeOwner   = "owner"
	RecipientTypeManager = "manager"
)
