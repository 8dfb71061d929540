// Package report turns scored results and validation issues into a verdict
// and renders it for people and machines.
package report

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/metrics"
	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/runner"
	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/validate"
	"github.com/google/uuid"
)

// namespace scopes report ids so equal content always maps to the same id.
var namespace = uuid.MustParse("6f1c2a9e-4b7d-5e38-9a10-3c5d7e2f8b41")

func Build(result *runner.Result, issues []validate.Issue, opts Options) (*Report, error) {
	t := opts.Thresholds

	checks := []Check{
		newCheck(metrics.NDCG10, "NDCG@10", result.Mean(metrics.NDCG10), t.NDCG),
		newCheck(metrics.MRR10, "MRR@10", result.Mean(metrics.MRR10), t.MRR),
		newCheck(metrics.Recall50, "Recall@50", result.Mean(metrics.Recall50), t.Recall),
	}

	met := 0
	for _, c := range checks {
		if c.Met {
			met++
		}
	}

	if issues == nil {
		issues = []validate.Issue{}
	}
	wellFormed := len(issues) == 0
	pass := wellFormed && met >= t.MinMet

	r := &Report{
		Verdict:       VerdictFail,
		Pass:          pass,
		WellFormed:    wellFormed,
		Thresholds:    t,
		ThresholdsMet: met,
		Checks:        checks,
		QueryCount:    result.QueryCount(),
		Metrics:       result.Means,
		Unjudged:      result.Unjudged,
		Issues:        issues,
		IssueCount:    validate.CountByKind(issues),
	}
	if pass {
		r.Verdict = VerdictPass
	}
	if opts.Submission != "" {
		r.Submission = filepath.Base(opts.Submission)
	}
	if opts.PerQuery {
		r.PerQuery = result.PerQuery
	}

	id, err := contentID(r)
	if err != nil {
		return nil, err
	}
	r.ID = id

	return r, nil
}

// metEpsilon absorbs float summation error so a mean that is mathematically
// equal to its threshold counts as met.
const metEpsilon = 1e-9

func newCheck(spec metrics.Spec, label string, value, threshold float64) Check {
	return Check{
		Metric:    spec.String(),
		Label:     label,
		Value:     value,
		Threshold: threshold,
		Met:       value >= threshold-metEpsilon,
	}
}

// contentID hashes the report with an empty id. Map keys marshal sorted, so
// the same report always hashes the same.
func contentID(r *Report) (string, error) {
	clone := *r
	clone.ID = ""
	data, err := json.Marshal(clone)
	if err != nil {
		return "", fmt.Errorf("hash report: %w", err)
	}
	return uuid.NewSHA1(namespace, data).String(), nil
}
