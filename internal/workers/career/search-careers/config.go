// internal/workers/career/search-careers/config.go
package searchcareers

import "time"

type Config struct {
	Timeout     time.Duration
	Index       string
	DefaultSize int
	MaxSize     int
	CacheTTL    time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:     10 * time.Second,
		Index:       "careers",
		DefaultSize: 10,
		MaxSize:     50,
		CacheTTL:    5 * time.Minute,
	}
}
