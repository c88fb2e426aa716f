// internal/workers/career/search-careers/queries/execute.go
package queries

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
)

var ErrIndexNotFound = errors.New("index not found")

type Hit struct {
	ID    string
	Score float64
}

type Result struct {
	Hits  []Hit
	Total int64
	Took  int64
}

type searchResponse struct {
	Took int64 `json:"took"`
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID     string  `json:"_id"`
			Score  float64 `json:"_score"`
			Source struct {
				ID string `json:"id"`
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Execute runs q and returns the hit ids in ranking order.
func Execute(ctx context.Context, es *elasticsearch.Client, q CareerQuery) (*Result, error) {
	req, err := BuildRequest(q)
	if err != nil {
		return nil, err
	}

	res, err := req.Do(ctx, es)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, q.Index)
	}
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("search failed: %s: %s", res.Status(), body)
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	out := &Result{
		Hits:  make([]Hit, 0, len(parsed.Hits.Hits)),
		Total: parsed.Hits.Total.Value,
		Took:  parsed.Took,
	}
	for _, h := range parsed.Hits.Hits {
		id := h.Source.ID
		if id == "" {
			id = h.ID
		}
		out.Hits = append(out.Hits, Hit{ID: id, Score: h.Score})
	}
	return out, nil
}
