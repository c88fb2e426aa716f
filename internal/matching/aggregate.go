// internal/matching/aggregate.go
package matching

import (
	"math"
	"sort"

	"career-workers/internal/models"
)

// roundHalfUp rounds halves toward positive infinity.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// weightedScore combines the factor scores with the career weights, scaled
// down for ineligible careers.
func (e *Engine) weightedScore(w models.Weights, b models.Breakdown, eligible bool) int {
	total := (float64(b.Academic)*w.Academic +
		float64(b.Skill)*w.Skill +
		float64(b.Interest)*w.Interest +
		float64(b.Opportunity)*w.Opportunity) / 100
	if !eligible {
		total *= e.cfg.PenaltyFactor
	}
	return clamp(roundHalfUp(total))
}

type scored struct {
	match models.CareerMatch
	order int
}

// rank sorts by match score, highest first. Equal scores keep candidate
// order, so eligible careers stay ahead of supplemental ones.
// The result is truncated to limit.
func rank(items []scored, limit int) []models.CareerMatch {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].match.MatchScore != items[j].match.MatchScore {
			return items[i].match.MatchScore > items[j].match.MatchScore
		}
		return items[i].order < items[j].order
	})
	if len(items) > limit {
		items = items[:limit]
	}
	out := make([]models.CareerMatch, len(items))
	for i := range items {
		out[i] = items[i].match
	}
	return out
}
