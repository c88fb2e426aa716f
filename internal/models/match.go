// internal/models/match.go
package models

// Breakdown holds the four factor scores, each in [0,100].
type Breakdown struct {
	Academic    int `json:"academic"`
	Skill       int `json:"skill"`
	Interest    int `json:"interest"`
	Opportunity int `json:"opportunity"`
}

type Reasoning struct {
	Summary        string   `json:"summary"`
	Strengths      []string `json:"strengths"`
	Considerations []string `json:"considerations"`
	LocalInsight   string   `json:"localInsight"`
}

// CareerMatch is one scored career. Career shares its slices and maps with
// the catalog and must be treated as read-only.
type CareerMatch struct {
	Career                *Career   `json:"career"`
	MatchScore            int       `json:"matchScore"`
	Breakdown             Breakdown `json:"breakdown"`
	PersonalizedReasoning Reasoning `json:"personalizedReasoning"`
	NearbyLocations       []string  `json:"nearbyLocations"`
	Eligible              bool      `json:"eligible"`
}
