// internal/workers/career/export-career-report/models.go
package exportcareerreport

import (
	"time"

	"career-workers/internal/models"
)

// Input selects the career to report on by id; without one the top match is
// used. Email and phone are optional delivery targets.
type Input struct {
	Profile  *models.UserProfile `json:"profile"`
	CareerID string              `json:"careerId,omitempty"`
	Email    string              `json:"email,omitempty"`
	Phone    string              `json:"phone,omitempty"`
}

type Output struct {
	ReportID    string    `json:"reportId"`
	CareerID    string    `json:"careerId"`
	MatchScore  int       `json:"matchScore"`
	FileName    string    `json:"fileName"`
	Path        string    `json:"path"`
	EmailSent   bool      `json:"emailSent"`
	SMSSent     bool      `json:"smsSent"`
	GeneratedAt time.Time `json:"generatedAt"`
}
