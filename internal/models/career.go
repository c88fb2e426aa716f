// internal/models/career.go
package models

import (
	"errors"
	"fmt"
)

// DefaultRegion is the mandatory fallback key in Career.StateOpportunities.
const DefaultRegion = "default"

type SalaryRange struct {
	Min     int64  `json:"min"`
	Max     int64  `json:"max"`
	Display string `json:"display"`
}

type RequiredSubject struct {
	Subject  Subject `json:"subject"`
	MinScore float64 `json:"minScore"`
}

type Eligibility struct {
	MinEducation       []EducationLevel  `json:"minEducation"`
	RequiredSubjects   []RequiredSubject `json:"requiredSubjects"`
	PreferredInterests []Interest        `json:"preferredInterests"`
	BudgetLevel        []BudgetTier      `json:"budgetLevel"`
	DurationFit        []DurationTier    `json:"durationFit"`
	RelocationRequired bool              `json:"relocationRequired"`
	UrbanRequired      bool              `json:"urbanRequired"`
}

// Weights are parts of a 100 point scale; they are divided by 100 when the
// factor scores are combined and are not required to sum to 100.
type Weights struct {
	Academic    float64 `json:"academic"`
	Skill       float64 `json:"skill"`
	Interest    float64 `json:"interest"`
	Opportunity float64 `json:"opportunity"`
}

type RoadmapStep struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Duration    string   `json:"duration"`
	Type        StepType `json:"type"`
}

type ReasoningTemplates struct {
	Summary        string   `json:"summary"`
	Strengths      []string `json:"strengths"`
	Considerations []string `json:"considerations"`
}

// Career is a catalog entry. Careers are loaded once and never mutated.
type Career struct {
	ID                 string              `json:"id"`
	Title              string              `json:"title"`
	Type               CareerType          `json:"type"`
	Description        string              `json:"description"`
	SalaryRange        SalaryRange         `json:"salaryRange"`
	TimeToAchieve      string              `json:"timeToAchieve"`
	Eligibility        Eligibility         `json:"eligibility"`
	Weights            Weights             `json:"weights"`
	Roadmap            []RoadmapStep       `json:"roadmap"`
	StateOpportunities map[string][]string `json:"stateOpportunities"`
	ReasoningTemplates ReasoningTemplates  `json:"reasoningTemplates"`
}

// FormatSalary returns the human readable salary band.
func (c *Career) FormatSalary() string {
	return c.SalaryRange.Display
}

// MinEducationRank is the lowest rank among the accepted education levels.
func (c *Career) MinEducationRank() int {
	lowest := -1
	for _, level := range c.Eligibility.MinEducation {
		r := level.Rank()
		if r < 0 {
			continue
		}
		if lowest < 0 || r < lowest {
			lowest = r
		}
	}
	return lowest
}

// Validate checks the semantic rules the JSON schema cannot express.
func (c *Career) Validate() error {
	var errs []error
	fail := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf("career %q: "+format, append([]interface{}{c.ID}, args...)...))
	}

	if c.ID == "" {
		errs = append(errs, errors.New("career id is required"))
	}
	if c.Title == "" {
		fail("title is required")
	}
	if !c.Type.IsValid() {
		fail("invalid type %q", c.Type)
	}
	if c.SalaryRange.Min > c.SalaryRange.Max {
		fail("salary min %d exceeds max %d", c.SalaryRange.Min, c.SalaryRange.Max)
	}

	e := c.Eligibility
	if len(e.MinEducation) == 0 {
		fail("minEducation must not be empty")
	}
	for _, level := range e.MinEducation {
		if !level.IsValid() {
			fail("invalid education level %q", level)
		}
	}
	for _, req := range e.RequiredSubjects {
		if !req.Subject.IsKnown() {
			fail("unknown required subject %q", req.Subject)
		}
		if req.MinScore <= 0 || req.MinScore > 100 {
			fail("minScore for %q must be in (0,100], got %v", req.Subject, req.MinScore)
		}
	}
	for _, interest := range e.PreferredInterests {
		if !interest.IsKnown() {
			fail("unknown preferred interest %q", interest)
		}
	}
	if len(e.BudgetLevel) == 0 {
		fail("budgetLevel must not be empty")
	}
	for _, b := range e.BudgetLevel {
		if !b.IsValid() {
			fail("invalid budget tier %q", b)
		}
	}
	if len(e.DurationFit) == 0 {
		fail("durationFit must not be empty")
	}
	for _, d := range e.DurationFit {
		if !d.IsValid() {
			fail("invalid duration tier %q", d)
		}
	}

	w := c.Weights
	if w.Academic < 0 || w.Skill < 0 || w.Interest < 0 || w.Opportunity < 0 {
		fail("weights must be non-negative")
	}

	for i, step := range c.Roadmap {
		if !step.Type.IsValid() {
			fail("roadmap step %d has invalid type %q", i, step.Type)
		}
	}

	if _, ok := c.StateOpportunities[DefaultRegion]; !ok {
		fail("stateOpportunities is missing the %q entry", DefaultRegion)
	}
	if c.ReasoningTemplates.Summary == "" {
		fail("reasoning summary is required")
	}

	return errors.Join(errs...)
}
