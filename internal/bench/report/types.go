package report

import (
	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/runner"
	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/validate"
)

type Verdict string

const (
	VerdictPass Verdict = "PASS"
	VerdictFail Verdict = "FAIL"
)

const (
	DefaultNDCGThreshold   = 0.30
	DefaultMRRThreshold    = 0.30
	DefaultRecallThreshold = 0.60
	DefaultMinMet          = 2
)

// Thresholds are the aggregate targets for the core metrics. A run passes
// when at least MinMet of them hold and the submission has no issues.
type Thresholds struct {
	NDCG   float64 `json:"ndcg@10" yaml:"ndcg@10"`
	MRR    float64 `json:"mrr@10" yaml:"mrr@10"`
	Recall float64 `json:"recall@50" yaml:"recall@50"`
	MinMet int     `json:"min_met" yaml:"min_met"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		NDCG:   DefaultNDCGThreshold,
		MRR:    DefaultMRRThreshold,
		Recall: DefaultRecallThreshold,
		MinMet: DefaultMinMet,
	}
}

type Options struct {
	Thresholds Thresholds
	// PerQuery includes every query's scores in the report.
	PerQuery bool
	// Submission names the scored file; only its base name is recorded.
	Submission string
}

func DefaultOptions() Options {
	return Options{Thresholds: DefaultThresholds()}
}

// Check is one thresholded core metric.
type Check struct {
	Metric    string  `json:"metric"`
	Label     string  `json:"label"`
	Value     float64 `json:"value"`
	Threshold float64 `json:"threshold"`
	Met       bool    `json:"met"`
}

type Report struct {
	ID         string  `json:"id"`
	Submission string  `json:"submission,omitempty"`
	Verdict    Verdict `json:"verdict"`
	Pass       bool    `json:"pass"`
	// WellFormed is true when the validator reported no issues.
	WellFormed    bool       `json:"well_formed"`
	Thresholds    Thresholds `json:"thresholds"`
	ThresholdsMet int        `json:"thresholds_met"`
	Checks        []Check    `json:"checks"`

	QueryCount int                   `json:"query_count"`
	Metrics    map[string]float64    `json:"metrics"`
	PerQuery   []runner.QueryResult  `json:"per_query,omitempty"`
	Unjudged   []string              `json:"unjudged,omitempty"`
	Issues     []validate.Issue      `json:"issues"`
	IssueCount map[validate.Kind]int `json:"issue_count"`
}
