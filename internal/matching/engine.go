// internal/matching/engine.go
package matching

import (
	"career-workers/internal/models"
)

// Engine scores careers against a profile. It holds no mutable state and is
// safe for concurrent use.
type Engine struct {
	cfg Config
}

func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.RelevanceTable == nil {
		cfg.RelevanceTable = map[models.Interest][]models.Subject{}
	}
	return &Engine{cfg: cfg}, nil
}

// NewDefault returns an engine with DefaultConfig.
func NewDefault() *Engine {
	return &Engine{cfg: DefaultConfig()}
}

func (e *Engine) Config() Config { return e.cfg }

// Result is a ranked match list plus the counts that produced it.
type Result struct {
	Matches        []models.CareerMatch
	EligibleCount  int
	CandidateCount int
}

// Run filters, scores and ranks the careers. An empty catalog yields an
// empty result.
func (e *Engine) Run(careers []models.Career, p *models.UserProfile) Result {
	candidates, eligibleCount := e.selectCandidates(careers, p)

	items := make([]scored, 0, len(candidates))
	for i, cand := range candidates {
		items = append(items, scored{
			match: e.score(cand.career, p, cand.eligible),
			order: i,
		})
	}

	return Result{
		Matches:        rank(items, e.cfg.MaxResults),
		EligibleCount:  eligibleCount,
		CandidateCount: len(candidates),
	}
}

// Match returns the ranked matches only.
func (e *Engine) Match(careers []models.Career, p *models.UserProfile) []models.CareerMatch {
	return e.Run(careers, p).Matches
}

// MatchCareer scores a single career, applying the ineligibility penalty
// when the profile fails its constraints. It reports false when the id is
// not in the list.
func (e *Engine) MatchCareer(careers []models.Career, p *models.UserProfile, id string) (models.CareerMatch, bool) {
	for i := range careers {
		if careers[i].ID == id {
			return e.score(&careers[i], p, IsEligible(&careers[i], p)), true
		}
	}
	return models.CareerMatch{}, false
}

func (e *Engine) score(c *models.Career, p *models.UserProfile, eligible bool) models.CareerMatch {
	b := models.Breakdown{
		Academic:    AcademicFit(c, p),
		Skill:       e.SkillFit(c, p),
		Interest:    InterestFit(c, p),
		Opportunity: e.OpportunityFit(c, p),
	}
	return models.CareerMatch{
		Career:                c,
		MatchScore:            e.weightedScore(c.Weights, b, eligible),
		Breakdown:             b,
		PersonalizedReasoning: e.GenerateReasoning(c, p, b),
		NearbyLocations:       e.NearbyLocations(c, p),
		Eligible:              eligible,
	}
}
