// internal/models/enums.go
package models

import (
	"encoding/json"
	"fmt"
)

// EnumError reports a value outside one of the closed vocabularies below.
type EnumError struct {
	Kind  string
	Value string
}

func (e *EnumError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Kind, e.Value)
}

func unmarshalEnum[T ~string](data []byte, dst *T, kind string, valid func(T) bool) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%s must be a string: %w", kind, err)
	}
	v := T(raw)
	if !valid(v) {
		return &EnumError{Kind: kind, Value: raw}
	}
	*dst = v
	return nil
}

// ==========================
// Career type
// ==========================

type CareerType string

const (
	CareerTypeGovernment   CareerType = "government"
	CareerTypePrivate      CareerType = "private"
	CareerTypeSelfEmployed CareerType = "self-employed"
)

func (t CareerType) IsValid() bool {
	switch t {
	case CareerTypeGovernment, CareerTypePrivate, CareerTypeSelfEmployed:
		return true
	}
	return false
}

func (t *CareerType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, t, "career type", CareerType.IsValid)
}

// ==========================
// Education level
// ==========================

// EducationLevel is ordered: 10th < 12th < graduate < postgraduate.
type EducationLevel string

const (
	Education10th         EducationLevel = "10th"
	Education12th         EducationLevel = "12th"
	EducationGraduate     EducationLevel = "graduate"
	EducationPostgraduate EducationLevel = "postgraduate"
)

var educationOrder = []EducationLevel{
	Education10th,
	Education12th,
	EducationGraduate,
	EducationPostgraduate,
}

// Rank returns the position of the level on the education scale, or -1.
func (e EducationLevel) Rank() int {
	for i, level := range educationOrder {
		if level == e {
			return i
		}
	}
	return -1
}

func (e EducationLevel) IsValid() bool {
	return e.Rank() >= 0
}

func (e *EducationLevel) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, e, "education level", EducationLevel.IsValid)
}

// EducationLevels lists the scale in ascending order.
func EducationLevels() []EducationLevel {
	out := make([]EducationLevel, len(educationOrder))
	copy(out, educationOrder)
	return out
}

// ==========================
// Budget tier
// ==========================

type BudgetTier string

const (
	BudgetLow    BudgetTier = "low"
	BudgetMedium BudgetTier = "medium"
	BudgetHigh   BudgetTier = "high"
)

func (b BudgetTier) IsValid() bool {
	switch b {
	case BudgetLow, BudgetMedium, BudgetHigh:
		return true
	}
	return false
}

func (b *BudgetTier) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, b, "budget tier", BudgetTier.IsValid)
}

// ==========================
// Duration tier
// ==========================

type DurationTier string

const (
	Duration6Months DurationTier = "6months"
	Duration1Year   DurationTier = "1year"
	Duration2Years  DurationTier = "2years"
	Duration4Years  DurationTier = "4years"
)

func (d DurationTier) IsValid() bool {
	switch d {
	case Duration6Months, Duration1Year, Duration2Years, Duration4Years:
		return true
	}
	return false
}

func (d *DurationTier) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, d, "duration tier", DurationTier.IsValid)
}

// ==========================
// Area type
// ==========================

type AreaType string

const (
	AreaRural     AreaType = "rural"
	AreaSemiUrban AreaType = "semi-urban"
	AreaUrban     AreaType = "urban"
)

func (a AreaType) IsValid() bool {
	switch a {
	case AreaRural, AreaSemiUrban, AreaUrban:
		return true
	}
	return false
}

func (a *AreaType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, a, "area type", AreaType.IsValid)
}

// ==========================
// Roadmap step type
// ==========================

type StepType string

const (
	StepEducation  StepType = "education"
	StepSkill      StepType = "skill"
	StepExperience StepType = "experience"
	StepGoal       StepType = "goal"
)

func (s StepType) IsValid() bool {
	switch s {
	case StepEducation, StepSkill, StepExperience, StepGoal:
		return true
	}
	return false
}

func (s *StepType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, s, "roadmap step type", StepType.IsValid)
}

// ==========================
// Municipality type
// ==========================

type MunicipalityType string

const (
	MunicipalityTown    MunicipalityType = "town"
	MunicipalityMandal  MunicipalityType = "mandal"
	MunicipalityCouncil MunicipalityType = "municipality"
)

func (m MunicipalityType) IsValid() bool {
	switch m {
	case MunicipalityTown, MunicipalityMandal, MunicipalityCouncil:
		return true
	}
	return false
}

func (m *MunicipalityType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, m, "municipality type", MunicipalityType.IsValid)
}

// ==========================
// Open vocabularies
// ==========================

// Subject and Interest are open tag sets. The known values mirror the intake
// form; the catalog is checked against them, profiles are not.
type Subject string

type Interest string

const (
	SubjectMathematics Subject = "mathematics"
	SubjectScience     Subject = "science"
	SubjectLanguages   Subject = "languages"
	SubjectSocial      Subject = "social"
	SubjectComputers   Subject = "computers"
	SubjectArts        Subject = "arts"
)

const (
	InterestTechnology  Interest = "technology"
	InterestHealthcare  Interest = "healthcare"
	InterestEducation   Interest = "education"
	InterestBusiness    Interest = "business"
	InterestCreative    Interest = "creative"
	InterestAgriculture Interest = "agriculture"
	InterestEngineering Interest = "engineering"
	InterestGovernment  Interest = "government"
	InterestSports      Interest = "sports"
	InterestHospitality Interest = "hospitality"
	InterestMedia       Interest = "media"
	InterestSocial      Interest = "social"
)

var knownSubjects = map[Subject]bool{
	SubjectMathematics: true,
	SubjectScience:     true,
	SubjectLanguages:   true,
	SubjectSocial:      true,
	SubjectComputers:   true,
	SubjectArts:        true,
}

var knownInterests = map[Interest]bool{
	InterestTechnology:  true,
	InterestHealthcare:  true,
	InterestEducation:   true,
	InterestBusiness:    true,
	InterestCreative:    true,
	InterestAgriculture: true,
	InterestEngineering: true,
	InterestGovernment:  true,
	InterestSports:      true,
	InterestHospitality: true,
	InterestMedia:       true,
	InterestSocial:      true,
}

func (s Subject) IsKnown() bool { return knownSubjects[s] }

func (i Interest) IsKnown() bool { return knownInterests[i] }
