// internal/workers/campaign/create-campaign-record/config.go
package createcampaignrecord

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
