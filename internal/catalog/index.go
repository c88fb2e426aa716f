// internal/catalog/index.go
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"career-workers/internal/models"
)

// CareerDocument is the searchable projection of a career.
type CareerDocument struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Type               string   `json:"type"`
	Description        string   `json:"description"`
	Salary             string   `json:"salary"`
	SalaryMin          int64    `json:"salary_min"`
	SalaryMax          int64    `json:"salary_max"`
	TimeToAchieve      string   `json:"time_to_achieve"`
	Interests          []string `json:"interests"`
	Subjects           []string `json:"subjects"`
	Regions            []string `json:"regions"`
	Opportunities      []string `json:"opportunities"`
	RelocationRequired bool     `json:"relocation_required"`
	UrbanRequired      bool     `json:"urban_required"`
}

const indexMapping = `{
  "mappings": {
    "properties": {
      "id": {"type": "keyword"},
      "title": {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "type": {"type": "keyword"},
      "description": {"type": "text"},
      "salary": {"type": "keyword", "index": false},
      "salary_min": {"type": "long"},
      "salary_max": {"type": "long"},
      "time_to_achieve": {"type": "keyword", "index": false},
      "interests": {"type": "keyword"},
      "subjects": {"type": "keyword"},
      "regions": {"type": "keyword"},
      "opportunities": {"type": "text"},
      "relocation_required": {"type": "boolean"},
      "urban_required": {"type": "boolean"}
    }
  }
}`

// ToDocument flattens a career for indexing.
func ToDocument(c *models.Career) CareerDocument {
	doc := CareerDocument{
		ID:                 c.ID,
		Title:              c.Title,
		Type:               string(c.Type),
		Description:        c.Description,
		Salary:             c.FormatSalary(),
		SalaryMin:          c.SalaryRange.Min,
		SalaryMax:          c.SalaryRange.Max,
		TimeToAchieve:      c.TimeToAchieve,
		RelocationRequired: c.Eligibility.RelocationRequired,
		UrbanRequired:      c.Eligibility.UrbanRequired,
	}
	for _, i := range c.Eligibility.PreferredInterests {
		doc.Interests = append(doc.Interests, string(i))
	}
	for _, s := range c.Eligibility.RequiredSubjects {
		doc.Subjects = append(doc.Subjects, string(s.Subject))
	}
	seen := make(map[string]bool)
	for region, labels := range c.StateOpportunities {
		if region != models.DefaultRegion {
			doc.Regions = append(doc.Regions, region)
		}
		for _, label := range labels {
			if !seen[label] {
				seen[label] = true
				doc.Opportunities = append(doc.Opportunities, label)
			}
		}
	}
	sort.Strings(doc.Regions)
	sort.Strings(doc.Opportunities)
	return doc
}

// Indexer writes the catalog into an Elasticsearch index.
type Indexer struct {
	es    *elasticsearch.Client
	index string
}

func NewIndexer(es *elasticsearch.Client, index string) *Indexer {
	return &Indexer{es: es, index: index}
}

// EnsureIndex creates the index with its mapping when it does not exist.
func (i *Indexer) EnsureIndex(ctx context.Context) error {
	res, err := esapi.IndicesExistsRequest{Index: []string{i.index}}.Do(ctx, i.es)
	if err != nil {
		return fmt.Errorf("check index %s: %w", i.index, err)
	}
	res.Body.Close()
	if res.StatusCode == 200 {
		return nil
	}

	res, err = esapi.IndicesCreateRequest{
		Index: i.index,
		Body:  strings.NewReader(indexMapping),
	}.Do(ctx, i.es)
	if err != nil {
		return fmt.Errorf("create index %s: %w", i.index, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("create index %s: %s: %s", i.index, res.Status(), body)
	}
	return nil
}

type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		ID     string `json:"_id"`
		Status int    `json:"status"`
		Error  *struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error,omitempty"`
	} `json:"items"`
}

// IndexAll bulk-indexes every career using its id as document id and
// returns the number of documents written.
func (i *Indexer) IndexAll(ctx context.Context, c *Catalog) (int, error) {
	if c.Len() == 0 {
		return 0, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	careers := c.Careers()
	for idx := range careers {
		doc := ToDocument(&careers[idx])
		meta := map[string]interface{}{
			"index": map[string]interface{}{"_index": i.index, "_id": doc.ID},
		}
		if err := enc.Encode(meta); err != nil {
			return 0, err
		}
		if err := enc.Encode(doc); err != nil {
			return 0, err
		}
	}

	res, err := esapi.BulkRequest{
		Body:    &buf,
		Refresh: "true",
	}.Do(ctx, i.es)
	if err != nil {
		return 0, fmt.Errorf("bulk index careers: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return 0, fmt.Errorf("bulk index careers: %s: %s", res.Status(), body)
	}

	var parsed bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("decode bulk response: %w", err)
	}

	written := 0
	var failures []string
	for _, item := range parsed.Items {
		for _, result := range item {
			if result.Error != nil {
				failures = append(failures, fmt.Sprintf("%s: %s", result.ID, result.Error.Reason))
				continue
			}
			written++
		}
	}
	if len(failures) > 0 {
		return written, fmt.Errorf("bulk index careers: %d failed: %s", len(failures), strings.Join(failures, "; "))
	}
	return written, nil
}
