// Package spec loads the YAML description of an evaluation run.
package spec

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/metrics"
	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/pool"
	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/runner"
	"gopkg.in/yaml.v3"
)

const DefaultSplit = "dev"

// LoadFromFile parses the eval spec at path. Relative data paths are resolved
// against the file's directory.
func LoadFromFile(path string) (*EvalSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for _, p := range []*string{&s.Data.Queries, &s.Data.Judgments, &s.Data.Candidates, &s.Data.Corpus} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	return s, nil
}

func Parse(data []byte) (*EvalSpec, error) {
	var s EvalSpec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse spec YAML: %w", err)
	}
	if err := validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Default is the eval spec used when no file is given.
func Default() *EvalSpec {
	s := &EvalSpec{}
	_ = validate(s)
	return s
}

func validate(s *EvalSpec) error {
	specs, err := metrics.ParseSpecs(s.Metrics.Names)
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	s.specs = metrics.WithCore(specs)

	t := s.Thresholds.Resolve()
	for _, th := range []struct {
		name  string
		value float64
	}{{"ndcg@10", t.NDCG}, {"mrr@10", t.MRR}, {"recall@50", t.Recall}} {
		if th.value < 0 || th.value > 1 {
			return fmt.Errorf("threshold %s must be within [0, 1], got %g", th.name, th.value)
		}
	}
	if t.MinMet < 0 || t.MinMet > len(metrics.CoreSpecs) {
		return fmt.Errorf("min_met must be within [0, %d], got %d", len(metrics.CoreSpecs), t.MinMet)
	}

	if s.Runs.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", s.Runs.Workers)
	}
	if s.MaxPoolSize < 0 {
		return fmt.Errorf("max_pool_size must not be negative, got %d", s.MaxPoolSize)
	}

	if s.Split == "" {
		s.Split = DefaultSplit
	}
	if s.Metrics.RelevanceThreshold <= 0 {
		s.Metrics.RelevanceThreshold = runner.DefaultRelevanceThreshold
	}
	if s.MaxPoolSize == 0 {
		s.MaxPoolSize = pool.DefaultMaxSize
	}
	return nil
}

// SetMetrics replaces the configured metric names and re-parses them.
func (s *EvalSpec) SetMetrics(names []string) error {
	specs, err := metrics.ParseSpecs(names)
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	s.Metrics.Names = names
	s.specs = metrics.WithCore(specs)
	return nil
}
