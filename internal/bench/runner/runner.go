package runner

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"

	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/judgment"
	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/metrics"
	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/submission"
	"golang.org/x/sync/errgroup"
)

type Runner struct {
	config Config
}

func New(cfg Config) *Runner {
	cfg.Specs = metrics.WithCore(cfg.Specs)
	if cfg.RelevanceThreshold <= 0 {
		cfg.RelevanceThreshold = DefaultRelevanceThreshold
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Runner{config: cfg}
}

func (r *Runner) Config() Config {
	return r.config
}

// Run scores every submitted query that has judgments. Per-query work is
// fanned out; means are accumulated in query id order so the result does not
// depend on worker count or submission order.
func (r *Runner) Run(ctx context.Context, judgments *judgment.Table, sub *submission.Submission) (*Result, error) {
	var scored, unjudged []string
	for _, e := range sub.Entries {
		if judgments.Has(e.QueryID) {
			scored = append(scored, e.QueryID)
		} else {
			unjudged = append(unjudged, e.QueryID)
		}
	}
	sort.Strings(scored)
	sort.Strings(unjudged)

	if len(unjudged) > 0 {
		slog.Warn("submitted queries without judgments are not scored", "count", len(unjudged))
	}

	results := make([]QueryResult, len(scored))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.Workers)
	for i, queryID := range scored {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			entry, _ := sub.Get(queryID)
			results[i] = r.scoreQuery(entry, judgments.Grades(queryID))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("score queries: %w", err)
	}

	slog.Debug("queries scored", "scored", len(results), "unjudged", len(unjudged), "workers", r.config.Workers)

	return &Result{
		PerQuery: results,
		Means:    mean(results, r.config.Specs),
		Specs:    r.config.Specs,
		Unjudged: unjudged,
	}, nil
}

func (r *Runner) scoreQuery(entry submission.Entry, grades map[string]int) QueryResult {
	ranked := Dedupe(entry.ItemIDs())
	return QueryResult{
		QueryID:  entry.QueryID,
		Scores:   metrics.ComputeAll(ranked, grades, r.config.Specs, r.config.RelevanceThreshold),
		Ranked:   ranked,
		Relevant: metrics.CountRelevant(grades, r.config.RelevanceThreshold),
	}
}

// Dedupe keeps the first occurrence of every item, preserving order.
func Dedupe(ranked []string) []string {
	seen := make(map[string]struct{}, len(ranked))
	out := make([]string, 0, len(ranked))
	for _, id := range ranked {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func mean(results []QueryResult, specs []metrics.Spec) metrics.ScoreSet {
	means := make(metrics.ScoreSet, len(specs))
	for _, spec := range specs {
		key := spec.String()
		var sum float64
		for _, qr := range results {
			sum += qr.Scores[key]
		}
		if len(results) > 0 {
			means[key] = sum / float64(len(results))
		} else {
			means[key] = 0
		}
	}
	return means
}
