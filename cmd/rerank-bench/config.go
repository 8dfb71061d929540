package main

import (
	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/spec"
)

type cliConfig struct {
	SpecPath string
	Verbose  bool

	Queries    string
	Judgments  string
	Candidates string
	Corpus     string
	Submission string

	Metrics  []string
	Workers  int
	Output   string
	PerQuery bool
	Enforce  bool

	Publish bool
	Team    string
	Limit   int
}

// evalSpec loads the --spec file, or the defaults, and lays flags over it.
func (c *cliConfig) evalSpec() (*spec.EvalSpec, error) {
	es := spec.Default()
	if c.SpecPath != "" {
		loaded, err := spec.LoadFromFile(c.SpecPath)
		if err != nil {
			return nil, usageError("load spec: %w", err)
		}
		es = loaded
	}

	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&es.Data.Queries, c.Queries)
	override(&es.Data.Judgments, c.Judgments)
	override(&es.Data.Candidates, c.Candidates)
	override(&es.Data.Corpus, c.Corpus)

	if len(c.Metrics) > 0 {
		if err := es.SetMetrics(c.Metrics); err != nil {
			return nil, usageError("%w", err)
		}
	}
	if c.Workers > 0 {
		es.Runs.Workers = c.Workers
	}

	return es, nil
}
