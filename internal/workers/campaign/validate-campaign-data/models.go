// internal/workers/campaign/validate-campaign-data/models.go
package validatecampaigndata

type Input struct {
	CampaignData map[string]interface{} `json:"campaignData"`
}

type Output struct {
	IsValid          bool                   `json:"isValid"`
	ValidatedData    map[string]interface{} `json:"validatedData"`
	ValidationErrors []ValidationError      `json:"validationErrors"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// campaignSchema is the contract for an incoming campaign request. Dates are
// RFC3339, the budget is a positive number and enum fields are lowercase.
const campaignSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["artist", "song", "startDate", "audienceTerritory", "budget", "profileType", "platform", "trackId", "trackName", "artistName"],
	"properties": {
		"artist": {"type": "string", "minLength": 1, "maxLength": 200},
		"song": {"type": "string", "minLength": 1, "maxLength": 200},
		"startDate": {"type": "string", "format": "date-time"},
		"audienceTerritory": {"type": "string", "minLength": 2, "maxLength": 100},
		"budget": {"type": "number", "exclusiveMinimum": 0},
		"profileType": {"type": "string", "enum": ["micro", "macro", "mega"]},
		"platform": {"type": "string", "enum": ["instagram", "tiktok", "youtube"]},
		"creative": {"type": "string"},
		"creativeReference": {"type": "string"},
		"profileReference": {"type": "string"},
		"hashtags": {"type": "array", "items": {"type": "string"}},
		"trackId": {"type": "string", "minLength": 1},
		"trackName": {"type": "string", "minLength": 1},
		"artistName": {"type": "string", "minLength": 1}
	},
	"additionalProperties": true
}`
