// internal/workers/music/search-tracks/config.go
package searchtracks

import "time"

type Config struct {
	Timeout      time.Duration
	CacheTTL     time.Duration
	DefaultLimit int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      15 * time.Second,
		CacheTTL:     5 * time.Minute,
		DefaultLimit: 10,
	}
}
