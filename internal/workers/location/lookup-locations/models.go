// internal/workers/location/lookup-locations/models.go
package lookuplocations

import "career-workers/internal/models"

type Input struct {
	State    string `json:"state"`
	District string `json:"district,omitempty"`
}

// Output lists are never nil. Unknown states and districts yield empty
// lists and a single placeholder in Nearby.
type Output struct {
	State          string                `json:"state"`
	StateCode      string                `json:"stateCode,omitempty"`
	Known          bool                  `json:"known"`
	Districts      []string              `json:"districts"`
	Municipalities []models.Municipality `json:"municipalities"`
	Nearby         []string              `json:"nearby"`
}
