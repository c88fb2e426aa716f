// internal/models/models_test.go
package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Enum Tests
// ==========================

func TestEducationLevel_Rank(t *testing.T) {
	tests := []struct {
		level EducationLevel
		rank  int
	}{
		{Education10th, 0},
		{Education12th, 1},
		{EducationGraduate, 2},
		{EducationPostgraduate, 3},
		{EducationLevel("phd"), -1},
		{EducationLevel(""), -1},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			assert.Equal(t, tt.rank, tt.level.Rank())
			assert.Equal(t, tt.rank >= 0, tt.level.IsValid())
		})
	}
}

func TestEnums_UnmarshalRejectsUnknownValues(t *testing.T) {
	tests := []struct {
		name string
		data string
		dst  interface{}
		kind string
	}{
		{"career type", `"freelance"`, new(CareerType), "career type"},
		{"education", `"diploma"`, new(EducationLevel), "education level"},
		{"budget", `"huge"`, new(BudgetTier), "budget tier"},
		{"duration", `"3months"`, new(DurationTier), "duration tier"},
		{"area", `"metro"`, new(AreaType), "area type"},
		{"step", `"party"`, new(StepType), "roadmap step type"},
		{"municipality", `"village"`, new(MunicipalityType), "municipality type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := json.Unmarshal([]byte(tt.data), tt.dst)
			require.Error(t, err)

			var enumErr *EnumError
			require.True(t, errors.As(err, &enumErr))
			assert.Equal(t, tt.kind, enumErr.Kind)
		})
	}
}

func TestEnums_UnmarshalAcceptsKnownValues(t *testing.T) {
	var p UserProfile
	err := json.Unmarshal([]byte(`{
		"education": "12th",
		"subjects": {"mathematics": 80},
		"interests": ["technology"],
		"location": {"state": "Telangana", "district": "Warangal", "type": "semi-urban"},
		"finance": {"budget": "low", "canRelocate": true, "preferDuration": "6months"}
	}`), &p)

	require.NoError(t, err)
	assert.Equal(t, Education12th, p.Education)
	assert.Equal(t, AreaSemiUrban, p.Location.Type)
	assert.Equal(t, BudgetLow, p.Finance.Budget)
	assert.Equal(t, Duration6Months, p.Finance.PreferDuration)
	assert.Equal(t, 80.0, p.Subjects[SubjectMathematics])
	assert.NoError(t, p.Validate())
}

// ==========================
// Profile Tests
// ==========================

func TestUserProfile_Validate(t *testing.T) {
	valid := func() UserProfile {
		return UserProfile{
			Education: EducationGraduate,
			Subjects:  map[Subject]float64{SubjectMathematics: 75},
			Location:  Location{State: "Telangana", Type: AreaUrban},
			Finance:   Finance{Budget: BudgetMedium, PreferDuration: Duration1Year},
		}
	}

	tests := []struct {
		name   string
		mutate func(p *UserProfile)
		fields []string
	}{
		{"valid", func(p *UserProfile) {}, nil},
		{"missing education", func(p *UserProfile) { p.Education = "" }, []string{"education"}},
		{"missing area", func(p *UserProfile) { p.Location.Type = "" }, []string{"location.type"}},
		{"missing budget and duration", func(p *UserProfile) {
			p.Finance = Finance{}
		}, []string{"finance.budget", "finance.preferDuration"}},
		{"score out of range", func(p *UserProfile) {
			p.Subjects[SubjectScience] = 140
		}, []string{"subjects.science"}},
		{"unknown subject is allowed", func(p *UserProfile) {
			p.Subjects[Subject("music")] = 90
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.mutate(&p)
			err := p.Validate()

			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, field := range tt.fields {
				assert.Contains(t, err.Error(), field)
			}
		})
	}
}

func TestUserProfile_InterestSet(t *testing.T) {
	p := UserProfile{Interests: []Interest{InterestTechnology, InterestBusiness, InterestTechnology}}
	assert.Equal(t, []Interest{InterestTechnology, InterestBusiness}, p.InterestSet())
}

func TestUserProfile_Normalize(t *testing.T) {
	base := func(interests ...Interest) UserProfile {
		return UserProfile{
			Education: EducationGraduate,
			Interests: interests,
			Location:  Location{State: "Telangana", Type: AreaUrban},
			Finance:   Finance{Budget: BudgetMedium, PreferDuration: Duration1Year},
		}
	}

	t.Run("duplicates do not count toward the cap", func(t *testing.T) {
		p := base(InterestTechnology, InterestBusiness, InterestTechnology)
		require.NoError(t, p.Normalize(2))
		assert.Equal(t, []Interest{InterestTechnology, InterestBusiness}, p.Interests)
	})

	t.Run("over the cap", func(t *testing.T) {
		p := base(InterestTechnology, InterestBusiness, InterestCreative)
		err := p.Normalize(2)

		var fe *FieldError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, "interests", fe.Field)
		assert.EqualError(t, err, "interests: at most 2 allowed, got 3")
	})

	t.Run("zero cap disables the check", func(t *testing.T) {
		p := base(InterestTechnology, InterestBusiness, InterestCreative)
		assert.NoError(t, p.Normalize(0))
	})

	t.Run("field checks still run", func(t *testing.T) {
		p := base(InterestTechnology)
		p.Education = ""
		err := p.Normalize(5)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "education")
	})
}

func TestUserProfile_SubjectNamesSorted(t *testing.T) {
	p := UserProfile{Subjects: map[Subject]float64{
		SubjectScience:     60,
		SubjectArts:        70,
		SubjectMathematics: 80,
	}}
	assert.Equal(t, []Subject{SubjectArts, SubjectMathematics, SubjectScience}, p.SubjectNames())
}

// ==========================
// Career Tests
// ==========================

func testCareer() Career {
	return Career{
		ID:    "electrician",
		Title: "Electrician",
		Type:  CareerTypeSelfEmployed,
		Eligibility: Eligibility{
			MinEducation:     []EducationLevel{Education12th, Education10th},
			RequiredSubjects: []RequiredSubject{{Subject: SubjectMathematics, MinScore: 40}},
			BudgetLevel:      []BudgetTier{BudgetLow},
			DurationFit:      []DurationTier{Duration6Months},
		},
		Weights:            Weights{Academic: 15, Skill: 40, Interest: 25, Opportunity: 20},
		StateOpportunities: map[string][]string{DefaultRegion: {"ITI Training"}},
		ReasoningTemplates: ReasoningTemplates{Summary: "Your hands-on skills fit this trade."},
	}
}

func TestCareer_MinEducationRank(t *testing.T) {
	c := testCareer()
	assert.Equal(t, 0, c.MinEducationRank())

	c.Eligibility.MinEducation = []EducationLevel{EducationPostgraduate, EducationGraduate}
	assert.Equal(t, 2, c.MinEducationRank())
}

func TestCareer_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Career)
		wantErr string
	}{
		{"valid", func(c *Career) {}, ""},
		{"missing default region", func(c *Career) {
			c.StateOpportunities = map[string][]string{"Telangana": {"x"}}
		}, `missing the "default" entry`},
		{"negative weight", func(c *Career) { c.Weights.Skill = -1 }, "non-negative"},
		{"unknown subject", func(c *Career) {
			c.Eligibility.RequiredSubjects = []RequiredSubject{{Subject: "alchemy", MinScore: 50}}
		}, "unknown required subject"},
		{"empty budget", func(c *Career) { c.Eligibility.BudgetLevel = nil }, "budgetLevel"},
		{"salary inverted", func(c *Career) {
			c.SalaryRange = SalaryRange{Min: 10, Max: 5}
		}, "exceeds max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testCareer()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
