// internal/workers/campaign/check-campaign-readiness/models.go
package checkcampaignreadiness

type Input struct {
	SessionID    string                 `json:"sessionId"`
	CampaignData map[string]interface{} `json:"campaignData"`
}

type Output struct {
	ReadinessScore int            `json:"readinessScore"`
	CanSubmit      bool           `json:"canSubmit"`
	MissingFields  []string       `json:"missingFields"`
	ScoreBreakdown ScoreBreakdown `json:"scoreBreakdown"`
}

type ScoreBreakdown struct {
	Basics    int `json:"basics"`
	Targeting int `json:"targeting"`
	Budget    int `json:"budget"`
	Creative  int `json:"creative"`
}
