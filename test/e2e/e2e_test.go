// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-workers/internal/catalog"
	"career-workers/internal/common/camunda"
	"career-workers/internal/common/logger"
	"career-workers/internal/matching"
	"career-workers/internal/models"

	exportcareerreport "career-workers/internal/workers/career/export-career-report"
	generatecareermatches "career-workers/internal/workers/career/generate-career-matches"
	getcareerroadmap "career-workers/internal/workers/career/get-career-roadmap"
	searchcareers "career-workers/internal/workers/career/search-careers"
	lookuplocations "career-workers/internal/workers/location/lookup-locations"
)

// ==========================
// Environment
// ==========================

type environment struct {
	db        *sql.DB
	mock      sqlmock.Sqlmock
	redis     *redis.Client
	mr        *miniredis.Miniredis
	es        *elasticsearch.Client
	catalog   *catalog.Catalog
	locations *catalog.Locations
	engine    *matching.Engine
}

// setupEnvironment loads the catalog through the postgres source, the way
// the worker manager does with catalog_source: postgres.
func setupEnvironment(t *testing.T) *environment {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var doc struct {
		Careers []json.RawMessage `json:"careers"`
	}
	require.NoError(t, json.Unmarshal(catalog.EmbeddedDocument(), &doc))
	rows := sqlmock.NewRows([]string{"document"})
	for _, raw := range doc.Careers {
		rows.AddRow([]byte(raw))
	}
	mock.ExpectQuery("SELECT document FROM career_catalog").WillReturnRows(rows)

	source, err := catalog.NewSource("postgres", db, "e2e")
	require.NoError(t, err)
	careers, err := source.Load(context.Background())
	require.NoError(t, err)

	locations, err := catalog.LoadEmbeddedLocations()
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return &environment{
		db:        db,
		mock:      mock,
		redis:     rdb,
		mr:        mr,
		catalog:   careers,
		locations: locations,
		engine:    matching.NewDefault(),
	}
}

// withSearchBackend starts a fake Elasticsearch that returns ids as hits.
func (e *environment) withSearchBackend(t *testing.T, ids ...string) {
	hits := make([]map[string]interface{}, 0, len(ids))
	for i, id := range ids {
		hits = append(hits, map[string]interface{}{
			"_id":     id,
			"_score":  float64(len(ids) - i),
			"_source": map[string]interface{}{"id": id},
		})
	}
	body, err := json.Marshal(map[string]interface{}{
		"took": 2,
		"hits": map[string]interface{}{
			"total": map[string]interface{}{"value": len(ids), "relation": "eq"},
			"hits":  hits,
		},
	})
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)

	e.es, err = elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
}

type recordingMailer struct {
	to, subject string
}

func (m *recordingMailer) Send(_ context.Context, to, subject, _ string) (string, error) {
	m.to, m.subject = to, subject
	return "msg-1", nil
}

func storedProfile() models.UserProfile {
	return models.UserProfile{
		Education: models.EducationGraduate,
		Subjects: map[models.Subject]float64{
			models.SubjectMathematics: 75,
			models.SubjectComputers:   60,
		},
		Interests: []models.Interest{models.InterestTechnology},
		Location:  models.Location{State: "Telangana", District: "Warangal", Type: models.AreaSemiUrban},
		Finance:   models.Finance{Budget: models.BudgetMedium, PreferDuration: models.Duration1Year},
	}
}

// ==========================
// Pipeline
// ==========================

func TestCareerGuidancePipeline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	env := setupEnvironment(t)
	log := logger.NewTestLogger(t)
	require.Equal(t, 16, env.catalog.Len())
	require.Equal(t, "e2e", env.catalog.Version())

	// 1. Matches for a stored profile.
	profile := storedProfile()
	raw, err := json.Marshal(profile)
	require.NoError(t, err)
	env.mock.ExpectQuery("SELECT profile FROM user_profiles").
		WithArgs("student-7").
		WillReturnRows(sqlmock.NewRows([]string{"profile"}).AddRow(raw))

	generate := generatecareermatches.NewHandler(generatecareermatches.LoadConfig(), env.catalog, env.engine, env.db, env.redis, log)
	matches, err := generate.Execute(ctx, &generatecareermatches.Input{UserID: "student-7"})
	require.NoError(t, err)
	require.Len(t, matches.Matches, 6)
	top := matches.Matches[0]
	assert.Equal(t, "software-developer", top.Career.ID)
	assert.Equal(t, 75, top.MatchScore)
	assert.True(t, env.mr.Exists("career:profile:student-7"))
	require.NoError(t, env.mock.ExpectationsWereMet())

	// 2. Search narrows to careers the student asked about.
	env.withSearchBackend(t, top.Career.ID, matches.Matches[1].Career.ID)
	search := searchcareers.NewHandler(searchcareers.LoadConfig(), env.catalog, env.es, env.redis, log)
	found, err := search.Execute(ctx, &searchcareers.Input{Query: "programming"})
	require.NoError(t, err)
	require.Len(t, found.Results, 2)
	assert.Equal(t, top.Career.ID, found.Results[0].CareerID)

	// 3. Roadmap of the top match.
	roadmap := getcareerroadmap.NewHandler(getcareerroadmap.LoadConfig(), env.catalog, log)
	steps, err := roadmap.Execute(ctx, &getcareerroadmap.Input{CareerID: top.Career.ID})
	require.NoError(t, err)
	assert.Equal(t, top.Career.Title, steps.Title)
	assert.NotEmpty(t, steps.Steps)

	// 4. Local context for the student's district.
	lookup := lookuplocations.NewHandler(lookuplocations.LoadConfig(), env.locations, log)
	local, err := lookup.Execute(ctx, &lookuplocations.Input{State: profile.Location.State, District: profile.Location.District})
	require.NoError(t, err)
	assert.Equal(t, "TS", local.StateCode)
	assert.Len(t, local.Municipalities, 4)

	// 5. Report for the top match, delivered by email.
	cfg := exportcareerreport.LoadConfig()
	cfg.OutputDir = t.TempDir()
	mailer := &recordingMailer{}
	export := exportcareerreport.NewHandler(cfg, env.catalog, env.engine, log).WithMailer(mailer)

	p := storedProfile()
	report, err := export.Execute(ctx, &exportcareerreport.Input{Profile: &p, Email: "student@example.com"})
	require.NoError(t, err)
	assert.Equal(t, top.Career.ID, report.CareerID)
	assert.Equal(t, top.MatchScore, report.MatchScore)
	assert.True(t, report.EmailSent)
	assert.False(t, report.SMSSent)
	assert.Equal(t, "student@example.com", mailer.to)
	assert.Contains(t, mailer.subject, top.Career.Title)

	_, err = os.Stat(report.Path)
	assert.NoError(t, err)
}

// TestLiveGateway checks a running Zeebe gateway when ZEEBE_ADDRESS is set.
func TestLiveGateway(t *testing.T) {
	address := os.Getenv("ZEEBE_ADDRESS")
	if address == "" {
		t.Skip("ZEEBE_ADDRESS not set")
	}

	client, err := camunda.NewClient(address)
	require.NoError(t, err, fmt.Sprintf("gateway at %s", address))
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	assert.NoError(t, client.HealthCheck(ctx))
}

// ==========================
// Benchmarks
// ==========================

func BenchmarkHandler_GenerateCareerMatches(b *testing.B) {
	c, err := catalog.LoadEmbedded()
	require.NoError(b, err)
	handler := generatecareermatches.NewHandler(generatecareermatches.LoadConfig(), c, matching.NewDefault(), nil, nil, logger.NewNoOpLogger())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p := storedProfile()
		if _, err := handler.Execute(context.Background(), &generatecareermatches.Input{Profile: &p}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkHandler_GetCareerRoadmap(b *testing.B) {
	c, err := catalog.LoadEmbedded()
	require.NoError(b, err)
	handler := getcareerroadmap.NewHandler(getcareerroadmap.LoadConfig(), c, logger.NewNoOpLogger())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := handler.Execute(context.Background(), &getcareerroadmap.Input{CareerID: "software-developer"}); err != nil {
			b.Fatal(err)
		}
	}
}
