// internal/matching/scorers.go
package matching

import (
	"slices"

	"career-workers/internal/models"
)

const absentSubjectScore = 50.0

// AcademicFit scores how well the subject results meet the career's
// requirements. Without requirements it is driven by the overall average.
func AcademicFit(c *models.Career, p *models.UserProfile) int {
	reqs := c.Eligibility.RequiredSubjects
	if len(reqs) == 0 {
		return clamp(roundHalfUp(meanScore(p)*0.7 + 30))
	}

	var total, totalWeight float64
	for _, req := range reqs {
		score, ok := p.Subjects[req.Subject]
		if !ok {
			score = absentSubjectScore
		}

		var fit float64
		if score >= req.MinScore {
			fit = 70 + (score-req.MinScore)*0.6
		} else {
			fit = 50 - (req.MinScore-score)*0.5
		}

		weight := req.MinScore / 50
		total += fit * weight
		totalWeight += weight
	}
	if totalWeight == 0 {
		return clamp(roundHalfUp(meanScore(p)*0.7 + 30))
	}
	return clamp(roundHalfUp(total / totalWeight))
}

func meanScore(p *models.UserProfile) float64 {
	names := p.SubjectNames()
	if len(names) == 0 {
		return 0
	}
	var sum float64
	for _, name := range names {
		sum += p.Subjects[name]
	}
	return sum / float64(len(names))
}

// SkillFit rewards interests the career prefers, plus strong subjects that
// back those interests.
func (e *Engine) SkillFit(c *models.Career, p *models.UserProfile) int {
	score := 50
	for _, interest := range p.InterestSet() {
		if !slices.Contains(c.Eligibility.PreferredInterests, interest) {
			continue
		}
		score += 15
		for _, subject := range e.cfg.RelevanceTable[interest] {
			if s, ok := p.Subjects[subject]; ok && s >= 70 {
				score += 5
			}
		}
	}
	return clamp(score)
}

// InterestFit is the share of preferred interests the profile covers.
func InterestFit(c *models.Career, p *models.UserProfile) int {
	preferred := c.Eligibility.PreferredInterests
	if len(preferred) == 0 {
		return 70
	}
	matched := 0
	for _, interest := range p.InterestSet() {
		if slices.Contains(preferred, interest) {
			matched++
		}
	}
	return clamp(roundHalfUp(50 + 50*float64(matched)/float64(len(preferred))))
}

// OpportunityFit scores local availability and structural fit.
func (e *Engine) OpportunityFit(c *models.Career, p *models.UserProfile) int {
	score := 60

	state := p.Location.State
	if _, ok := c.StateOpportunities[state]; ok && state != e.cfg.FallbackRegion {
		score += 20
	}
	if c.Eligibility.UrbanRequired && p.IsRural() {
		score -= 20
		if p.Finance.CanRelocate {
			score += 15
		}
	}
	if c.Type == models.CareerTypeSelfEmployed && p.IsRural() {
		score += 15
	}
	if c.Type == models.CareerTypeGovernment {
		score += 10
	}
	return clamp(score)
}
