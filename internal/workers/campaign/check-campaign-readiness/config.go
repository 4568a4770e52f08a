// internal/workers/campaign/check-campaign-readiness/config.go
package checkcampaignreadiness

type Config struct {
	SubmitThreshold int
}

func LoadConfig() *Config {
	return &Config{
		SubmitThreshold: 100,
	}
}
