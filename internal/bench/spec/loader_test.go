package spec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/metrics"
	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/pool"
	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("valid spec", func(t *testing.T) {
		yaml := `
name: restaurants
split: test
data:
  queries: data/queries_test.csv
  judgments: data/qrels_test.tsv
  candidates: data/candidates_test.jsonl
metrics:
  names: [precision@5, ndcg@10]
  relevance_threshold: 2
thresholds:
  ndcg@10: 0.4
  min_met: 3
runs:
  workers: 4
max_pool_size: 200
`
		s, err := Parse([]byte(yaml))
		require.NoError(t, err)
		assert.Equal(t, "restaurants", s.Name)
		assert.Equal(t, "test", s.Split)
		assert.Equal(t, "data/qrels_test.tsv", s.Data.Judgments)
		assert.Equal(t, 2, s.Metrics.RelevanceThreshold)
		assert.Equal(t, 4, s.Runs.Workers)
		assert.Equal(t, 200, s.MaxPoolSize)
		assert.Equal(t, []metrics.Spec{
			{Kind: metrics.KindPrecision, K: 5},
			metrics.NDCG10,
			metrics.MRR10,
			metrics.Recall50,
		}, s.MetricSpecs())

		th := s.Thresholds.Resolve()
		assert.Equal(t, 0.4, th.NDCG)
		assert.Equal(t, report.DefaultMRRThreshold, th.MRR)
		assert.Equal(t, report.DefaultRecallThreshold, th.Recall)
		assert.Equal(t, 3, th.MinMet)
	})

	t.Run("defaults applied", func(t *testing.T) {
		s, err := Parse([]byte("name: empty\n"))
		require.NoError(t, err)
		assert.Equal(t, DefaultSplit, s.Split)
		assert.Equal(t, 1, s.Metrics.RelevanceThreshold)
		assert.Equal(t, pool.DefaultMaxSize, s.MaxPoolSize)
		assert.Equal(t, metrics.CoreSpecs, s.MetricSpecs())
		assert.Equal(t, report.DefaultThresholds(), s.Thresholds.Resolve())
	})

	t.Run("explicit zero threshold kept", func(t *testing.T) {
		s, err := Parse([]byte("thresholds:\n  recall@50: 0\n"))
		require.NoError(t, err)
		assert.Zero(t, s.Thresholds.Resolve().Recall)
	})

	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"unknown metric", "metrics:\n  names: [bleu@4]\n", "unsupported metric"},
		{"bad cutoff", "metrics:\n  names: [ndcg@x]\n", "invalid cutoff"},
		{"threshold out of range", "thresholds:\n  mrr@10: 1.5\n", "threshold mrr@10"},
		{"min_met out of range", "thresholds:\n  min_met: 4\n", "min_met"},
		{"negative workers", "runs:\n  workers: -1\n", "workers"},
		{"negative pool size", "max_pool_size: -5\n", "max_pool_size"},
		{"malformed yaml", "metrics: [", "parse spec YAML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile_ResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(dir, "elsewhere", "corpus.csv")
	content := "data:\n  judgments: qrels.tsv\n  candidates: runs/cands.jsonl\n  corpus: " + abs + "\n"

	path := filepath.Join(dir, "eval.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "qrels.tsv"), s.Data.Judgments)
	assert.Equal(t, filepath.Join(dir, "runs", "cands.jsonl"), s.Data.Candidates)
	assert.Equal(t, abs, s.Data.Corpus)
	assert.Empty(t, s.Data.Queries)
}

func TestDefault(t *testing.T) {
	s := Default()
	assert.Equal(t, metrics.CoreSpecs, s.MetricSpecs())
	assert.Equal(t, pool.DefaultMaxSize, s.MaxPoolSize)
}

func TestSetMetrics(t *testing.T) {
	s := Default()

	require.NoError(t, s.SetMetrics([]string{"ap@20", "mrr@10"}))
	assert.Equal(t, []metrics.Spec{
		{Kind: metrics.KindAP, K: 20},
		metrics.MRR10,
		metrics.NDCG10,
		metrics.Recall50,
	}, s.MetricSpecs())

	assert.Error(t, s.SetMetrics([]string{"ndcg@0"}))
}
