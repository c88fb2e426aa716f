// internal/workers/career/get-career-roadmap/config.go
package getcareerroadmap

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
