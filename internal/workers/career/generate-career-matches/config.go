// internal/workers/career/generate-career-matches/config.go
package generatecareermatches

import "time"

type Config struct {
	Timeout         time.Duration
	ProfileCacheTTL time.Duration
	MaxInterests    int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:         10 * time.Second,
		ProfileCacheTTL: 10 * time.Minute,
		MaxInterests:    5,
	}
}
