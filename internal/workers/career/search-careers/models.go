// internal/workers/career/search-careers/models.go
package searchcareers

type Input struct {
	Query string `json:"query"`
	Type  string `json:"type,omitempty"`
	Size  int    `json:"size,omitempty"`
}

type SearchResult struct {
	CareerID      string  `json:"careerId"`
	Title         string  `json:"title"`
	Type          string  `json:"type"`
	Salary        string  `json:"salary"`
	TimeToAchieve string  `json:"timeToAchieve"`
	Score         float64 `json:"score"`
}

type Output struct {
	Results []SearchResult `json:"results"`
	Total   int64          `json:"total"`
	Cached  bool           `json:"cached"`
}
