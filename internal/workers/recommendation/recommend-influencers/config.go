// internal/workers/recommendation/recommend-influencers/config.go
package recommendinfluencers

import "time"

type Config struct {
	Timeout       time.Duration
	MaxResults    int
	DefaultGender string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:       10 * time.Second,
		MaxResults:    20,
		DefaultGender: "Female",
	}
}
