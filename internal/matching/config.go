// internal/matching/config.go
package matching

import (
	"errors"
	"fmt"

	"career-workers/internal/models"
)

const (
	// DefaultPenaltyFactor scales the score of careers that failed eligibility.
	DefaultPenaltyFactor = 0.8
	// DefaultMinEligible is the eligible count below which the candidate
	// list is topped up with ineligible careers.
	DefaultMinEligible = 5
	// DefaultCandidatePoolSize is the candidate count augmentation stops at.
	DefaultCandidatePoolSize = 10
	// DefaultMaxResults caps the ranked output.
	DefaultMaxResults = 6
)

// Config carries the tunables of the engine. The zero value is not usable;
// start from DefaultConfig.
type Config struct {
	// RelevanceTable maps an interest to the subjects that support it.
	RelevanceTable map[models.Interest][]models.Subject
	// FallbackRegion is the stateOpportunities key used for unknown states.
	FallbackRegion    string
	PenaltyFactor     float64
	MinEligible       int
	CandidatePoolSize int
	MaxResults        int
}

func DefaultRelevanceTable() map[models.Interest][]models.Subject {
	return map[models.Interest][]models.Subject{
		models.InterestTechnology:  {models.SubjectMathematics, models.SubjectComputers},
		models.InterestEngineering: {models.SubjectMathematics, models.SubjectScience},
		models.InterestHealthcare:  {models.SubjectScience},
		models.InterestBusiness:    {models.SubjectMathematics, models.SubjectSocial},
		models.InterestCreative:    {models.SubjectArts, models.SubjectLanguages},
		models.InterestEducation:   {models.SubjectLanguages, models.SubjectSocial},
		models.InterestAgriculture: {models.SubjectScience},
		models.InterestGovernment:  {models.SubjectSocial, models.SubjectLanguages},
	}
}

func DefaultConfig() Config {
	return Config{
		RelevanceTable:    DefaultRelevanceTable(),
		FallbackRegion:    models.DefaultRegion,
		PenaltyFactor:     DefaultPenaltyFactor,
		MinEligible:       DefaultMinEligible,
		CandidatePoolSize: DefaultCandidatePoolSize,
		MaxResults:        DefaultMaxResults,
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.FallbackRegion == "" {
		errs = append(errs, errors.New("fallback region is required"))
	}
	if c.PenaltyFactor < 0 || c.PenaltyFactor > 1 {
		errs = append(errs, fmt.Errorf("penalty factor must be in [0,1], got %v", c.PenaltyFactor))
	}
	if c.MinEligible < 0 {
		errs = append(errs, fmt.Errorf("min eligible must be non-negative, got %d", c.MinEligible))
	}
	if c.CandidatePoolSize < 0 {
		errs = append(errs, fmt.Errorf("candidate pool size must be non-negative, got %d", c.CandidatePoolSize))
	}
	if c.MaxResults <= 0 {
		errs = append(errs, fmt.Errorf("max results must be positive, got %d", c.MaxResults))
	}
	return errors.Join(errs...)
}
