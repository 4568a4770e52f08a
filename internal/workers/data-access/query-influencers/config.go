// internal/workers/data-access/query-influencers/config.go
package queryinfluencers

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
