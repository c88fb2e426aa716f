// internal/models/profile.go
package models

import (
	"errors"
	"fmt"
	"sort"
)

type Location struct {
	State    string   `json:"state"`
	District string   `json:"district"`
	Type     AreaType `json:"type"`
}

type Finance struct {
	Budget         BudgetTier   `json:"budget"`
	CanRelocate    bool         `json:"canRelocate"`
	PreferDuration DurationTier `json:"preferDuration"`
}

// UserProfile is built per request from the intake answers.
type UserProfile struct {
	Education EducationLevel      `json:"education"`
	Subjects  map[Subject]float64 `json:"subjects"`
	Interests []Interest          `json:"interests"`
	Location  Location            `json:"location"`
	Finance   Finance             `json:"finance"`
}

// FieldError names a profile field that failed validation.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Validate reports every missing or out-of-range field. Unknown subjects
// and interests are allowed.
func (p *UserProfile) Validate() error {
	var errs []error
	add := func(field, reason string) {
		errs = append(errs, &FieldError{Field: field, Reason: reason})
	}

	if p.Education == "" {
		add("education", "required")
	} else if !p.Education.IsValid() {
		add("education", fmt.Sprintf("unknown level %q", p.Education))
	}

	for _, name := range p.SubjectNames() {
		score := p.Subjects[name]
		if score < 0 || score > 100 {
			add("subjects."+string(name), fmt.Sprintf("score %v outside [0,100]", score))
		}
	}

	if p.Location.Type == "" {
		add("location.type", "required")
	} else if !p.Location.Type.IsValid() {
		add("location.type", fmt.Sprintf("unknown area type %q", p.Location.Type))
	}

	if p.Finance.Budget == "" {
		add("finance.budget", "required")
	} else if !p.Finance.Budget.IsValid() {
		add("finance.budget", fmt.Sprintf("unknown budget tier %q", p.Finance.Budget))
	}

	if p.Finance.PreferDuration == "" {
		add("finance.preferDuration", "required")
	} else if !p.Finance.PreferDuration.IsValid() {
		add("finance.preferDuration", fmt.Sprintf("unknown duration %q", p.Finance.PreferDuration))
	}

	return errors.Join(errs...)
}

// Normalize removes duplicate interests, enforces the interest cap when
// maxInterests is positive and then validates the profile.
func (p *UserProfile) Normalize(maxInterests int) error {
	p.Interests = p.InterestSet()
	if maxInterests > 0 && len(p.Interests) > maxInterests {
		return &FieldError{
			Field:  "interests",
			Reason: fmt.Sprintf("at most %d allowed, got %d", maxInterests, len(p.Interests)),
		}
	}
	return p.Validate()
}

// SubjectNames returns the recorded subjects in lexical order.
func (p *UserProfile) SubjectNames() []Subject {
	names := make([]Subject, 0, len(p.Subjects))
	for name := range p.Subjects {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// InterestSet returns the profile interests with duplicates removed, in
// first-seen order.
func (p *UserProfile) InterestSet() []Interest {
	seen := make(map[Interest]bool, len(p.Interests))
	out := make([]Interest, 0, len(p.Interests))
	for _, i := range p.Interests {
		if seen[i] {
			continue
		}
		seen[i] = true
		out = append(out, i)
	}
	return out
}

func (p *UserProfile) IsRural() bool {
	return p.Location.Type == AreaRural
}
