// internal/common/config/loader.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml plus config.<APP_ENVIRONMENT>.yaml and validates every section.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", environment()))
	_ = v.MergeInConfig() // optional overlay

	return finish(v, true)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return finish(v, true)
}

// LoadForTool is Load for offline tools: infrastructure settings are not required.
// An empty path falls back to the usual search locations and then to defaults.
func LoadForTool(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading base config: %w", err)
			}
		}
	}
	return finish(v, false)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func environment() string {
	if env := os.Getenv("APP_ENVIRONMENT"); env != "" {
		return env
	}
	return "development"
}

func finish(v *viper.Viper, requireInfra bool) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if requireInfra {
		if err := validateConfig(&cfg); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}
	if err := validateDomain(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// loadEnvFile loads the first .env found walking up from the working directory.
func loadEnvFile() {
	possiblePaths := []string{".env", "../.env", "../../.env", "../../../.env"}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// expandEnvVars replaces ${VAR} placeholders in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok || !strings.Contains(strVal, "$") {
			continue
		}
		if expanded := os.ExpandEnv(strVal); expanded != strVal {
			v.Set(key, expanded)
		}
	}
}

// setDefaults covers values where zero is a legal setting.
func setDefaults(v *viper.Viper) {
	v.SetDefault("matching.penalty_factor", 0.8)
	v.SetDefault("matching.min_eligible", 5)
	v.SetDefault("matching.candidate_pool_size", 10)
	v.SetDefault("matching.max_results", 6)
	v.SetDefault("matching.fallback_region", "default")
	v.SetDefault("matching.catalog_source", "embedded")
	v.SetDefault("matching.max_interests", 5)
	v.SetDefault("observability.sample_ratio", 1.0)
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "career-workers"
	}

	// Camunda defaults
	if cfg.Camunda.MaxJobsActive == 0 {
		cfg.Camunda.MaxJobsActive = 10
	}
	if cfg.Camunda.Timeout == 0 {
		cfg.Camunda.Timeout = 30000
	}
	if cfg.Camunda.RequestTimeout == 0 {
		cfg.Camunda.RequestTimeout = 30000
	}

	// Database defaults
	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Elasticsearch.URL == "" && len(cfg.Database.Elasticsearch.Addresses) > 0 {
		cfg.Database.Elasticsearch.URL = cfg.Database.Elasticsearch.Addresses[0]
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	for key, worker := range cfg.Workers {
		if worker.MaxJobsActive == 0 {
			worker.MaxJobsActive = 5
		}
		if worker.Timeout == 0 {
			worker.Timeout = 30000
		}
		if worker.MaxRetries == 0 {
			worker.MaxRetries = 3
		}
		cfg.Workers[key] = worker
	}

	if cfg.Matching.ProfileCacheTTL == 0 {
		cfg.Matching.ProfileCacheTTL = 600
	}

	// Search defaults
	if cfg.Search.Index == "" {
		cfg.Search.Index = "careers"
	}
	if cfg.Search.DefaultSize == 0 {
		cfg.Search.DefaultSize = 10
	}
	if cfg.Search.MaxSize == 0 {
		cfg.Search.MaxSize = 50
	}
	if cfg.Search.CacheTTL == 0 {
		cfg.Search.CacheTTL = 300
	}

	// Report defaults
	if cfg.Report.OutputDir == "" {
		cfg.Report.OutputDir = "./reports"
	}
	if cfg.Report.AWSRegion == "" {
		cfg.Report.AWSRegion = "ap-south-1"
	}
	if cfg.Report.SMS.RatePerSecond == 0 {
		cfg.Report.SMS.RatePerSecond = 1
	}
	if cfg.Report.SMS.Burst == 0 {
		cfg.Report.SMS.Burst = 5
	}
	if cfg.Report.Breaker.MaxFailures == 0 {
		cfg.Report.Breaker.MaxFailures = 5
	}
	if cfg.Report.Breaker.OpenTimeout == 0 {
		cfg.Report.Breaker.OpenTimeout = 30000
	}
	if cfg.Report.Breaker.Interval == 0 {
		cfg.Report.Breaker.Interval = 60000
	}

	if cfg.Observability.ServiceName == "" {
		cfg.Observability.ServiceName = cfg.App.Name
	}
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
}

// validateConfig validates critical infrastructure fields
func validateConfig(cfg *Config) error {
	if cfg.Camunda.BrokerAddress == "" {
		return fmt.Errorf("camunda.broker_address is required")
	}

	if cfg.Database.Postgres.Host == "" {
		return fmt.Errorf("database.postgres.host is required")
	}
	if cfg.Database.Postgres.Database == "" {
		return fmt.Errorf("database.postgres.database is required")
	}
	if cfg.Database.Postgres.User == "" {
		return fmt.Errorf("database.postgres.user is required")
	}

	if len(cfg.Database.Elasticsearch.Addresses) == 0 && cfg.Database.Elasticsearch.URL == "" {
		return fmt.Errorf("database.elasticsearch.addresses or url is required")
	}

	if cfg.Database.Redis.Address == "" {
		return fmt.Errorf("database.redis.address is required")
	}

	if cfg.Report.Email.Enabled && cfg.Report.Email.FromEmail == "" {
		return fmt.Errorf("report.email.from_email is required when email is enabled")
	}

	return nil
}

// validateDomain checks the engine and worker tuning values.
func validateDomain(cfg *Config) error {
	m := cfg.Matching
	if m.PenaltyFactor < 0 || m.PenaltyFactor > 1 {
		return fmt.Errorf("matching.penalty_factor must be within [0,1], got %v", m.PenaltyFactor)
	}
	if m.MinEligible < 0 || m.CandidatePoolSize < 0 {
		return fmt.Errorf("matching.min_eligible and matching.candidate_pool_size must not be negative")
	}
	if m.MaxResults <= 0 {
		return fmt.Errorf("matching.max_results must be positive, got %d", m.MaxResults)
	}
	if m.MaxInterests <= 0 {
		return fmt.Errorf("matching.max_interests must be positive, got %d", m.MaxInterests)
	}
	switch m.CatalogSource {
	case "embedded", "postgres":
	default:
		return fmt.Errorf("matching.catalog_source must be embedded or postgres, got %q", m.CatalogSource)
	}

	if cfg.Search.DefaultSize > cfg.Search.MaxSize {
		return fmt.Errorf("search.default_size (%d) exceeds search.max_size (%d)", cfg.Search.DefaultSize, cfg.Search.MaxSize)
	}
	if cfg.Observability.SampleRatio < 0 || cfg.Observability.SampleRatio > 1 {
		return fmt.Errorf("observability.sample_ratio must be within [0,1]")
	}
	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// Seconds converts a seconds value from config to time.Duration
func Seconds(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}

// GetWorkerConfig retrieves worker-specific configuration with fallback to defaults
func GetWorkerConfig(cfg *Config, workerName string) WorkerConfig {
	if worker, exists := cfg.Workers[workerName]; exists {
		return worker
	}
	return WorkerConfig{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       30000,
		MaxRetries:    3,
	}
}

// IsWorkerEnabled checks if a specific worker is enabled
func IsWorkerEnabled(cfg *Config, workerName string) bool {
	if worker, exists := cfg.Workers[workerName]; exists {
		return worker.Enabled
	}
	return true
}
