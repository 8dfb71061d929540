package spec

import (
	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/dataset"
	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/metrics"
	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/report"
)

// EvalSpec describes one evaluation run: where the data lives, which metrics
// to compute and what counts as passing.
type EvalSpec struct {
	Name        string           `yaml:"name"`
	Split       string           `yaml:"split"`
	Data        dataset.Paths    `yaml:"data"`
	Metrics     MetricsConfig    `yaml:"metrics"`
	Thresholds  ThresholdsConfig `yaml:"thresholds"`
	Runs        RunsConfig       `yaml:"runs"`
	MaxPoolSize int              `yaml:"max_pool_size"`

	specs []metrics.Spec
}

type MetricsConfig struct {
	Names []string `yaml:"names"`
	// RelevanceThreshold applies to precision and ap; MRR and recall always use grade 1.
	RelevanceThreshold int `yaml:"relevance_threshold"`
}

// ThresholdsConfig uses pointers so an explicit zero is kept.
type ThresholdsConfig struct {
	NDCG   *float64 `yaml:"ndcg@10"`
	MRR    *float64 `yaml:"mrr@10"`
	Recall *float64 `yaml:"recall@50"`
	MinMet *int     `yaml:"min_met"`
}

type RunsConfig struct {
	Workers int `yaml:"workers"`
}

// MetricSpecs returns the parsed metric specifiers, core metrics included.
func (s *EvalSpec) MetricSpecs() []metrics.Spec {
	return s.specs
}

func (t ThresholdsConfig) Resolve() report.Thresholds {
	out := report.DefaultThresholds()
	if t.NDCG != nil {
		out.NDCG = *t.NDCG
	}
	if t.MRR != nil {
		out.MRR = *t.MRR
	}
	if t.Recall != nil {
		out.Recall = *t.Recall
	}
	if t.MinMet != nil {
		out.MinMet = *t.MinMet
	}
	return out
}
