// internal/matching/engine_test.go
package matching

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-workers/internal/catalog"
	"career-workers/internal/models"
)

func loadCareers(t *testing.T) []models.Career {
	t.Helper()
	c, err := catalog.LoadEmbedded()
	require.NoError(t, err)
	return c.Careers()
}

func findCareer(t *testing.T, careers []models.Career, id string) *models.Career {
	t.Helper()
	for i := range careers {
		if careers[i].ID == id {
			return &careers[i]
		}
	}
	t.Fatalf("career %s not in catalog", id)
	return nil
}

func findMatch(matches []models.CareerMatch, id string) (models.CareerMatch, int) {
	for i, m := range matches {
		if m.Career.ID == id {
			return m, i
		}
	}
	return models.CareerMatch{}, -1
}

func techProfile() *models.UserProfile {
	return &models.UserProfile{
		Education: models.EducationGraduate,
		Subjects: map[models.Subject]float64{
			models.SubjectMathematics: 75,
			models.SubjectComputers:   60,
		},
		Interests: []models.Interest{models.InterestTechnology},
		Location:  models.Location{State: "Telangana", District: "Warangal", Type: models.AreaSemiUrban},
		Finance:   models.Finance{Budget: models.BudgetMedium, CanRelocate: false, PreferDuration: models.Duration1Year},
	}
}

func ruralHealthProfile() *models.UserProfile {
	return &models.UserProfile{
		Education: models.Education12th,
		Subjects: map[models.Subject]float64{
			models.SubjectScience:   80,
			models.SubjectLanguages: 40,
		},
		Interests: []models.Interest{models.InterestHealthcare, models.InterestHealthcare},
		Location:  models.Location{State: "Telangana", District: "Nalgonda", Type: models.AreaRural},
		Finance:   models.Finance{Budget: models.BudgetHigh, CanRelocate: true, PreferDuration: models.Duration4Years},
	}
}

// ==========================
// Engine Scenario Tests
// ==========================

func TestRun_TechProfile(t *testing.T) {
	careers := loadCareers(t)
	result := NewDefault().Run(careers, techProfile())

	assert.Equal(t, 9, result.EligibleCount)
	assert.Equal(t, 9, result.CandidateCount)
	require.Len(t, result.Matches, DefaultMaxResults)

	ids := make([]string, len(result.Matches))
	for i, m := range result.Matches {
		ids[i] = m.Career.ID
		assert.True(t, m.Eligible)
	}
	assert.Equal(t, []string{
		"software-developer",
		"data-analyst",
		"electrician",
		"graphic-designer",
		"digital-marketing",
		"school-teacher",
	}, ids)

	top := result.Matches[0]
	assert.Equal(t, 75, top.MatchScore)
	assert.Equal(t, models.Breakdown{Academic: 78, Skill: 70, Interest: 75, Opportunity: 80}, top.Breakdown)
	assert.GreaterOrEqual(t, top.Breakdown.Academic, 70)
	assert.Equal(t, []string{"Hyderabad IT Hub", "TASK Training Programs", "T-Hub Startup Ecosystem"}, top.NearbyLocations)
}

func TestRun_SoftwareDeveloperOutranksDairyFarming(t *testing.T) {
	careers := loadCareers(t)
	e := NewDefault()
	p := techProfile()

	dev, ok := e.MatchCareer(careers, p, "software-developer")
	require.True(t, ok)
	dairy, ok := e.MatchCareer(careers, p, "dairy-farming")
	require.True(t, ok)

	assert.Greater(t, dev.MatchScore, dairy.MatchScore)
	assert.Equal(t, 56, dairy.MatchScore)
	assert.Equal(t, []string{"Warangal", "Nearby Taluk", "District Center"}, dairy.NearbyLocations)
	assert.Equal(t,
		"NABARD Dairy Loans, State Dairy Federations, Village Cooperatives are available in your region. "+
			"Self-employment options work well in your area with government support schemes.",
		dairy.PersonalizedReasoning.LocalInsight)
}

func TestRun_AugmentsNarrowProfiles(t *testing.T) {
	careers := loadCareers(t)
	result := NewDefault().Run(careers, ruralHealthProfile())

	assert.Equal(t, 2, result.EligibleCount)
	assert.Equal(t, DefaultCandidatePoolSize, result.CandidateCount)
	require.Len(t, result.Matches, DefaultMaxResults)

	want := []struct {
		id       string
		score    int
		eligible bool
	}{
		{"pharmacy", 77, true},
		{"nursing", 69, false},
		{"software-developer", 56, true},
		{"agri-entrepreneur", 52, false},
		{"bank-po", 49, false},
		{"dairy-farming", 48, false},
	}
	for i, w := range want {
		t.Run(w.id, func(t *testing.T) {
			m := result.Matches[i]
			assert.Equal(t, w.id, m.Career.ID)
			assert.Equal(t, w.score, m.MatchScore)
			assert.Equal(t, w.eligible, m.Eligible)
		})
	}
}

func TestRun_NoEligibleCareersTiesKeepCatalogOrder(t *testing.T) {
	careers := loadCareers(t)
	p := &models.UserProfile{
		Education: models.Education10th,
		Subjects:  map[models.Subject]float64{models.SubjectArts: 90},
		Interests: []models.Interest{models.InterestCreative},
		Location:  models.Location{Type: models.AreaUrban},
		Finance:   models.Finance{Budget: models.BudgetHigh, PreferDuration: models.Duration4Years},
	}

	result := NewDefault().Run(careers, p)
	assert.Equal(t, 0, result.EligibleCount)
	assert.Equal(t, 10, result.CandidateCount)

	ids := make([]string, len(result.Matches))
	for i, m := range result.Matches {
		ids[i] = m.Career.ID
		assert.False(t, m.Eligible)
	}
	assert.Equal(t, []string{"ssc-cgl", "school-teacher", "pharmacy", "agri-entrepreneur", "bank-po", "nursing"}, ids)
}

func TestRun_TiedEligibleCareerOutranksSupplemental(t *testing.T) {
	// Both score 53: the eligible career scores 52.5 raw, the supplemental
	// one 66.15 raw scaled by the penalty to 52.92.
	supplemental := *bareCareer()
	supplemental.ID = "supplemental"
	supplemental.Eligibility.BudgetLevel = []models.BudgetTier{models.BudgetHigh}
	supplemental.Weights = models.Weights{Academic: 31.5, Skill: 31.5, Interest: 31.5, Opportunity: 31.5}

	eligible := *bareCareer()
	eligible.ID = "eligible"

	result := NewDefault().Run([]models.Career{supplemental, eligible}, bareProfile())
	require.Len(t, result.Matches, 2)
	assert.Equal(t, 1, result.EligibleCount)

	first, second := result.Matches[0], result.Matches[1]
	assert.Equal(t, 53, first.MatchScore)
	assert.Equal(t, 53, second.MatchScore)
	assert.Equal(t, "eligible", first.Career.ID)
	assert.True(t, first.Eligible)
	assert.Equal(t, "supplemental", second.Career.ID)
	assert.False(t, second.Eligible)
}

func TestRun_EmptyCatalog(t *testing.T) {
	result := NewDefault().Run(nil, techProfile())
	assert.Empty(t, result.Matches)
	assert.Equal(t, 0, result.EligibleCount)
	assert.Equal(t, 0, result.CandidateCount)
}

// ==========================
// Invariant Tests
// ==========================

func TestRun_Invariants(t *testing.T) {
	careers := loadCareers(t)
	e := NewDefault()

	profiles := []*models.UserProfile{techProfile(), ruralHealthProfile()}
	for _, edu := range models.EducationLevels() {
		for _, area := range []models.AreaType{models.AreaRural, models.AreaSemiUrban, models.AreaUrban} {
			for _, budget := range []models.BudgetTier{models.BudgetLow, models.BudgetMedium, models.BudgetHigh} {
				profiles = append(profiles, &models.UserProfile{
					Education: edu,
					Subjects:  map[models.Subject]float64{models.SubjectMathematics: 95, models.SubjectArts: 5},
					Interests: []models.Interest{models.InterestBusiness, models.InterestGovernment},
					Location:  models.Location{State: "Karnataka", Type: area},
					Finance:   models.Finance{Budget: budget, CanRelocate: area == models.AreaUrban, PreferDuration: models.Duration6Months},
				})
			}
		}
	}

	for _, p := range profiles {
		first := e.Run(careers, p)
		second := e.Run(careers, p)

		a, err := json.Marshal(first)
		require.NoError(t, err)
		b, err := json.Marshal(second)
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b), "output must be deterministic")

		require.NotEmpty(t, first.Matches)
		assert.LessOrEqual(t, len(first.Matches), DefaultMaxResults)

		for i, m := range first.Matches {
			for _, v := range []int{m.MatchScore, m.Breakdown.Academic, m.Breakdown.Skill, m.Breakdown.Interest, m.Breakdown.Opportunity} {
				assert.GreaterOrEqual(t, v, 0)
				assert.LessOrEqual(t, v, 100)
			}
			if i > 0 {
				assert.GreaterOrEqual(t, first.Matches[i-1].MatchScore, m.MatchScore)
			}
			assert.LessOrEqual(t, len(m.NearbyLocations), 3)
			assert.LessOrEqual(t, len(m.PersonalizedReasoning.Strengths), 5)
			assert.LessOrEqual(t, len(m.PersonalizedReasoning.Considerations), 4)

			w := m.Career.Weights
			raw := (float64(m.Breakdown.Academic)*w.Academic + float64(m.Breakdown.Skill)*w.Skill +
				float64(m.Breakdown.Interest)*w.Interest + float64(m.Breakdown.Opportunity)*w.Opportunity) / 100
			if m.Eligible {
				assert.Equal(t, roundHalfUp(raw), m.MatchScore)
			} else {
				assert.Equal(t, roundHalfUp(raw*DefaultPenaltyFactor), m.MatchScore)
			}
		}
	}
}

// ==========================
// Config Tests
// ==========================

func TestNew_ValidatesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PenaltyFactor = 1.5
	_, err := New(cfg)
	assert.Error(t, err)

	cfg = DefaultConfig()
	cfg.MaxResults = 0
	_, err = New(cfg)
	assert.Error(t, err)

	cfg = DefaultConfig()
	cfg.FallbackRegion = ""
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestRun_OverriddenLimits(t *testing.T) {
	careers := loadCareers(t)

	cfg := DefaultConfig()
	cfg.MaxResults = 1
	cfg.MinEligible = 0
	e, err := New(cfg)
	require.NoError(t, err)

	result := e.Run(careers, ruralHealthProfile())
	require.Len(t, result.Matches, 1)
	assert.Equal(t, 2, result.CandidateCount)
	assert.Equal(t, "pharmacy", result.Matches[0].Career.ID)
}

func TestMatchCareer_UnknownID(t *testing.T) {
	_, ok := NewDefault().MatchCareer(loadCareers(t), techProfile(), "astronaut")
	assert.False(t, ok)
}

func TestMatchCareer_PenalizesIneligible(t *testing.T) {
	careers := loadCareers(t)
	m, ok := NewDefault().MatchCareer(careers, ruralHealthProfile(), "nursing")
	require.True(t, ok)
	assert.False(t, m.Eligible)
	assert.Equal(t, 69, m.MatchScore)
	assert.Equal(t, findCareer(t, careers, "nursing").ID, m.Career.ID)
}
