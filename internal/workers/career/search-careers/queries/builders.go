// internal/workers/career/search-careers/queries/builders.go
package queries

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var (
	ErrMissingIndex = errors.New("index name is required")
	ErrEmptyQuery   = errors.New("query text is required")
)

// searchFields are the text fields a career query matches, with boosts.
var searchFields = []string{
	"title^3",
	"description^2",
	"opportunities",
	"interests",
	"subjects",
}

// CareerQuery is a full-text query over the career index.
type CareerQuery struct {
	Index string
	Text  string
	// Type restricts results to one career type when set.
	Type string
	Size int
}

// BuildBody returns the search body: a multi_match over the text fields,
// optionally filtered by career type.
func BuildBody(q CareerQuery) map[string]interface{} {
	boolQuery := map[string]interface{}{
		"must": []interface{}{
			map[string]interface{}{
				"multi_match": map[string]interface{}{
					"query":     strings.TrimSpace(q.Text),
					"fields":    searchFields,
					"type":      "best_fields",
					"fuzziness": "AUTO",
				},
			},
		},
	}
	if q.Type != "" {
		boolQuery["filter"] = []interface{}{
			map[string]interface{}{
				"term": map[string]interface{}{"type": q.Type},
			},
		}
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQuery,
		},
		"_source": []string{"id", "title", "type"},
		"sort": []interface{}{
			"_score",
			map[string]interface{}{"title.raw": "asc"},
		},
	}
}

// BuildRequest validates q and builds the esapi request.
func BuildRequest(q CareerQuery) (*esapi.SearchRequest, error) {
	if q.Index == "" {
		return nil, ErrMissingIndex
	}
	if strings.TrimSpace(q.Text) == "" {
		return nil, ErrEmptyQuery
	}

	body, err := json.Marshal(BuildBody(q))
	if err != nil {
		return nil, err
	}

	size := q.Size
	return &esapi.SearchRequest{
		Index:          []string{q.Index},
		Body:           bytes.NewReader(body),
		Size:           &size,
		TrackTotalHits: true,
	}, nil
}
