// internal/workers/career/generate-career-matches/models.go
package generatecareermatches

import (
	"time"

	"career-workers/internal/models"
)

// Input carries either an inline profile or the id of a stored one. The
// inline profile wins when both are present.
type Input struct {
	UserID  string              `json:"userId,omitempty"`
	Profile *models.UserProfile `json:"profile,omitempty"`
}

type Output struct {
	Matches        []models.CareerMatch `json:"matches"`
	EligibleCount  int                  `json:"eligibleCount"`
	CandidateCount int                  `json:"candidateCount"`
	GeneratedAt    time.Time            `json:"generatedAt"`
}
