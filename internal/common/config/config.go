// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Logging       LoggingConfig           `mapstructure:"logging"`
	Matching      MatchingConfig          `mapstructure:"matching"`
	Search        SearchConfig            `mapstructure:"search"`
	Report        ReportConfig            `mapstructure:"report"`
	Observability ObservabilityConfig     `mapstructure:"observability"`
	Server        ServerConfig            `mapstructure:"server"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	URL       string   `mapstructure:"url"` // Single URL for backwards compatibility
}

// GetURL returns the first address or the URL field
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

// GetAddresses returns Addresses, or URL alone when no list is set.
func (e ElasticsearchConfig) GetAddresses() []string {
	if len(e.Addresses) > 0 {
		return e.Addresses
	}
	if e.URL != "" {
		return []string{e.URL}
	}
	return nil
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// TimeoutDuration returns Timeout as a duration.
func (w WorkerConfig) TimeoutDuration() time.Duration {
	return GetDuration(w.Timeout)
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// --- Domain Sections ---

// MatchingConfig tunes the career engine and where its catalog comes from.
type MatchingConfig struct {
	PenaltyFactor     float64 `mapstructure:"penalty_factor"`
	MinEligible       int     `mapstructure:"min_eligible"`
	CandidatePoolSize int     `mapstructure:"candidate_pool_size"`
	MaxResults        int     `mapstructure:"max_results"`
	FallbackRegion    string  `mapstructure:"fallback_region"`
	CatalogSource     string  `mapstructure:"catalog_source"` // embedded | postgres
	CatalogVersion    string  `mapstructure:"catalog_version"`
	ProfileCacheTTL   int     `mapstructure:"profile_cache_ttl"` // seconds
	MaxInterests      int     `mapstructure:"max_interests"`
}

// SearchConfig holds settings for the catalog index and the search-careers worker.
type SearchConfig struct {
	Index          string `mapstructure:"index"`
	DefaultSize    int    `mapstructure:"default_size"`
	MaxSize        int    `mapstructure:"max_size"`
	CacheTTL       int    `mapstructure:"cache_ttl"` // seconds
	IndexOnStartup bool   `mapstructure:"index_on_startup"`
}

// ReportConfig holds settings for the export-career-report worker.
type ReportConfig struct {
	OutputDir string `mapstructure:"output_dir"`
	AWSRegion string `mapstructure:"aws_region"`

	Email struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email"`
	} `mapstructure:"email"`

	SMS struct {
		Enabled       bool    `mapstructure:"enabled"`
		SenderID      string  `mapstructure:"sender_id"`
		RatePerSecond float64 `mapstructure:"rate_per_second"`
		Burst         int     `mapstructure:"burst"`
	} `mapstructure:"sms"`

	Breaker struct {
		MaxFailures uint32 `mapstructure:"max_failures"`
		OpenTimeout int    `mapstructure:"open_timeout"` // milliseconds
		Interval    int    `mapstructure:"interval"`     // milliseconds
	} `mapstructure:"breaker"`
}

// ObservabilityConfig controls otel metrics and tracing.
type ObservabilityConfig struct {
	ServiceName string  `mapstructure:"service_name"`
	TraceStdout bool    `mapstructure:"trace_stdout"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

// ServerConfig is the health/metrics listener.
type ServerConfig struct {
	Address string `mapstructure:"address"`
}
