// internal/workers/campaign/validate-campaign-data/config.go
package validatecampaigndata

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
