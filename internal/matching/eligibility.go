// internal/matching/eligibility.go
package matching

import (
	"slices"

	"career-workers/internal/models"
)

// IsEligible reports whether the profile satisfies every hard constraint of
// the career.
func IsEligible(c *models.Career, p *models.UserProfile) bool {
	e := c.Eligibility

	if p.Education.Rank() < c.MinEducationRank() {
		return false
	}
	if !slices.Contains(e.BudgetLevel, p.Finance.Budget) {
		return false
	}
	if !slices.Contains(e.DurationFit, p.Finance.PreferDuration) {
		return false
	}
	if e.RelocationRequired && !p.Finance.CanRelocate {
		return false
	}
	if e.UrbanRequired && p.IsRural() {
		return false
	}
	return true
}

type candidate struct {
	career   *models.Career
	eligible bool
}

// selectCandidates splits the catalog into eligible careers and, when fewer
// than MinEligible qualify, tops the list up with ineligible ones in catalog
// order until CandidatePoolSize is reached.
func (e *Engine) selectCandidates(careers []models.Career, p *models.UserProfile) (out []candidate, eligibleCount int) {
	out = make([]candidate, 0, len(careers))
	for i := range careers {
		if IsEligible(&careers[i], p) {
			out = append(out, candidate{career: &careers[i], eligible: true})
		}
	}
	eligibleCount = len(out)

	if eligibleCount >= e.cfg.MinEligible {
		return out, eligibleCount
	}
	for i := range careers {
		if len(out) >= e.cfg.CandidatePoolSize {
			break
		}
		if !IsEligible(&careers[i], p) {
			out = append(out, candidate{career: &careers[i], eligible: false})
		}
	}
	return out, eligibleCount
}
