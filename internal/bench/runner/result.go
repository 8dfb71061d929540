package runner

import "github.com/DjordjeVuckovic/rerank-bench/internal/bench/metrics"

type QueryResult struct {
	QueryID string           `json:"query_id"`
	Scores  metrics.ScoreSet `json:"scores"`
	// Ranked is the scored ranking after repeated items were collapsed.
	Ranked []string `json:"-"`
	// Relevant is the number of judged items at or above the relevance threshold.
	Relevant int `json:"relevant"`
}

type Result struct {
	// PerQuery is sorted by query id.
	PerQuery []QueryResult   `json:"per_query"`
	Means    metrics.ScoreSet `json:"means"`
	Specs    []metrics.Spec   `json:"-"`
	// Unjudged lists submitted queries with no judgments; they are not scored.
	Unjudged []string `json:"unjudged,omitempty"`
}

func (r *Result) QueryCount() int {
	return len(r.PerQuery)
}

func (r *Result) Mean(spec metrics.Spec) float64 {
	return r.Means.Get(spec)
}
