// internal/workers/discovery/search-influencers/config.go
package searchinfluencers

import "time"

type Config struct {
	Timeout      time.Duration
	DefaultIndex string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      30 * time.Second,
		DefaultIndex: "influencer_profiles",
	}
}
