// internal/matching/settings.go
package matching

import "career-workers/internal/common/config"

// ConfigFromSettings overlays the matching section of the application
// config onto DefaultConfig. Zero fallback region keeps the default.
func ConfigFromSettings(s config.MatchingConfig) Config {
	cfg := DefaultConfig()
	cfg.PenaltyFactor = s.PenaltyFactor
	cfg.MinEligible = s.MinEligible
	cfg.CandidatePoolSize = s.CandidatePoolSize
	cfg.MaxResults = s.MaxResults
	if s.FallbackRegion != "" {
		cfg.FallbackRegion = s.FallbackRegion
	}
	return cfg
}

// NewFromSettings builds an engine from the matching config section.
func NewFromSettings(s config.MatchingConfig) (*Engine, error) {
	return New(ConfigFromSettings(s))
}
