// internal/workers/career/export-career-report/config.go
package exportcareerreport

import "time"

type Config struct {
	Timeout      time.Duration
	OutputDir    string
	MaxInterests int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      30 * time.Second,
		OutputDir:    "./reports",
		MaxInterests: 5,
	}
}
