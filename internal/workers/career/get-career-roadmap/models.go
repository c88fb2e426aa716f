// internal/workers/career/get-career-roadmap/models.go
package getcareerroadmap

import "career-workers/internal/models"

type Input struct {
	CareerID string `json:"careerId"`
}

type Output struct {
	CareerID      string               `json:"careerId"`
	Title         string               `json:"title"`
	Salary        string               `json:"salary"`
	TimeToAchieve string               `json:"timeToAchieve"`
	Steps         []models.RoadmapStep `json:"steps"`
}
