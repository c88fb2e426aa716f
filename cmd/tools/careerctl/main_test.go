// cmd/tools/careerctl/main_test.go
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

const techProfileJSON = `{
  "education": "graduate",
  "subjects": {"mathematics": 75, "computers": 60},
  "interests": ["technology"],
  "location": {"state": "Telangana", "district": "Warangal", "type": "semi-urban"},
  "finance": {"budget": "medium", "canRelocate": false, "preferDuration": "1year"}
}`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// ==========================
// Command Tests
// ==========================

func TestValidate(t *testing.T) {
	out, err := run(t, "", "validate")
	require.NoError(t, err)

	assert.Contains(t, out, "catalog ok: 16 careers")
	assert.Contains(t, out, "registry ok: 5 activities")
	assert.Contains(t, out, "  - search-careers\n")
}

func TestValidate_BadCatalog(t *testing.T) {
	path := writeFile(t, "careers.json", `{"version":"x","careers":[{"id":"broken"}]}`)

	_, err := run(t, "", "validate", "--catalog", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog invalid")
}

func TestMatch_Table(t *testing.T) {
	path := writeFile(t, "student.json", techProfileJSON)

	out, err := run(t, "", "match", "--profile", path)
	require.NoError(t, err)

	assert.Contains(t, out, "eligible 9 of 16 careers")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Contains(t, lines[3], "Software Developer")
	assert.Contains(t, lines[3], "75%")
}

func TestMatch_JSONFromStdin(t *testing.T) {
	out, err := run(t, techProfileJSON, "match", "--profile", "-", "--json")
	require.NoError(t, err)

	var decoded struct {
		Matches []struct {
			Career struct {
				ID string `json:"id"`
			} `json:"career"`
			MatchScore int `json:"matchScore"`
		} `json:"matches"`
		EligibleCount int `json:"eligibleCount"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Matches, 6)
	assert.Equal(t, "software-developer", decoded.Matches[0].Career.ID)
	assert.Equal(t, 75, decoded.Matches[0].MatchScore)
	assert.Equal(t, 9, decoded.EligibleCount)
}

func TestMatch_InvalidProfiles(t *testing.T) {
	tests := []struct {
		name    string
		profile string
		want    string
	}{
		{"malformed json", `{"education":`, "parse profile"},
		{"too many interests", strings.Replace(techProfileJSON, `["technology"]`, `["technology","business","creative","media","sports","education"]`, 1), "at most 5"},
		{"bad education", strings.Replace(techProfileJSON, `"graduate"`, `"phd"`, 1), "profile invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.profile, "match", "--profile", "-")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMatch_RequiresProfileFlag(t *testing.T) {
	_, err := run(t, "", "match")
	require.Error(t, err)
}

func TestRoadmap(t *testing.T) {
	out, err := run(t, "", "roadmap", "software-developer")
	require.NoError(t, err)
	assert.Contains(t, out, "Software Developer | ₹4-15 LPA | 2-3 Years")
	assert.Contains(t, out, "Learn Programming Fundamentals")

	_, err = run(t, "", "roadmap", "astronaut")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `career "astronaut" not found`)
}

func TestLocations(t *testing.T) {
	out, err := run(t, "", "locations", "Telangana", "Warangal")
	require.NoError(t, err)
	assert.Equal(t, "Hanamkonda (municipality)\nKazipet (town)\nSubedari (mandal)\nHunter Road (mandal)\n", out)

	out, err = run(t, "", "locations", "TS", "--json")
	require.NoError(t, err)
	var decoded struct {
		Districts []string `json:"districts"`
		Nearby    []string `json:"nearby"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Len(t, decoded.Districts, 8)
	assert.Equal(t, []string{"Hyderabad", "Warangal", "Karimnagar", "Nizamabad", "Khammam"}, decoded.Nearby)

	out, err = run(t, "", "locations", "Goa")
	require.NoError(t, err)
	assert.Contains(t, out, "no districts known for Goa")
}

func TestIndex(t *testing.T) {
	var bulkCalls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodHead:
			w.WriteHeader(http.StatusOK)
		case strings.HasSuffix(r.URL.Path, "/_bulk"):
			bulkCalls++
			_, _ = w.Write([]byte(`{"errors": false, "items": [{"index": {"_id": "a", "status": 201}}, {"index": {"_id": "b", "status": 201}}]}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	cfgPath := writeFile(t, "config.yaml", fmt.Sprintf(`
database:
  elasticsearch:
    addresses: ["%s"]
search:
  index: careers-test
`, srv.URL))

	out, err := run(t, "", "index", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "indexed 2 careers into careers-test\n", out)
	assert.Equal(t, 1, bulkCalls)
}

func TestScaffold(t *testing.T) {
	root := t.TempDir()

	out, err := run(t, "", "scaffold", "search-careers", "--output", root)
	require.NoError(t, err)
	assert.Contains(t, out, "register search-careers in cmd/worker-manager/main.go")

	dir := filepath.Join(root, "career", "search-careers")
	for _, name := range []string{"config.go", "models.go", "handler.go", "handler_test.go"} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
	}

	models, err := os.ReadFile(filepath.Join(dir, "models.go"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(models), "// internal/workers/career/search-careers/models.go\npackage searchcareers\n"))
	assert.Regexp(t, regexp.MustCompile("Query\\s+string\\s+`json:\"query\"`"), string(models))
	assert.Regexp(t, regexp.MustCompile("Size\\s+int\\s+`json:\"size,omitempty\"`"), string(models))

	config, err := os.ReadFile(filepath.Join(dir, "config.go"))
	require.NoError(t, err)
	assert.Contains(t, string(config), "Timeout: 10 * time.Second")

	handler, err := os.ReadFile(filepath.Join(dir, "handler.go"))
	require.NoError(t, err)
	assert.Contains(t, string(handler), `const TaskType = "search-careers"`)
	assert.Contains(t, string(handler), "SEARCH_TIMEOUT")

	_, err = run(t, "", "scaffold", "search-careers", "--output", root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = run(t, "", "scaffold", "search-careers", "--output", root, "--force")
	require.NoError(t, err)
}

func TestScaffold_UnknownTaskType(t *testing.T) {
	_, err := run(t, "", "scaffold", "send-invoice", "--output", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in the activity registry")
}

func TestGoName(t *testing.T) {
	assert.Equal(t, "CareerID", goName("careerId"))
	assert.Equal(t, "Query", goName("query"))
	assert.Equal(t, "", goName(""))
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "careerctl version: dev\n", out)
}
