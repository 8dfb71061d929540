// Package dataset loads the read-only inputs of one evaluation split.
package dataset

import (
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/judgment"
	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/pool"
	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/suite"
)

// Paths locates the input files. Empty paths are skipped.
type Paths struct {
	Queries    string `yaml:"queries"`
	Judgments  string `yaml:"judgments"`
	Candidates string `yaml:"candidates"`
	Corpus     string `yaml:"corpus"`
}

type Options struct {
	MaxPoolSize int
}

type Dataset struct {
	Queries   *suite.QuerySet
	Judgments *judgment.Table
	Pools     *pool.Pools
	Corpus    Corpus
}

// Load reads every configured input. When no query list is given the query
// table is derived from the candidate pools.
func Load(paths Paths, opts Options) (*Dataset, error) {
	ds := &Dataset{}

	var known func(string) bool
	if paths.Corpus != "" {
		corpus, err := LoadCorpus(paths.Corpus)
		if err != nil {
			return nil, fmt.Errorf("load corpus: %w", err)
		}
		ds.Corpus = corpus
		known = corpus.Contains
		slog.Info("Corpus loaded", "path", paths.Corpus, "items", len(corpus))
	}

	if paths.Queries != "" {
		qs, err := suite.LoadQueries(paths.Queries)
		if err != nil {
			return nil, fmt.Errorf("load queries: %w", err)
		}
		ds.Queries = qs
		slog.Info("Queries loaded", "path", paths.Queries, "queries", qs.Len())
	}

	if paths.Judgments != "" {
		table, err := judgment.LoadTable(paths.Judgments, judgment.LoadOptions{KnownItem: known})
		if err != nil {
			return nil, fmt.Errorf("load judgments: %w", err)
		}
		ds.Judgments = table
		slog.Info("Judgments loaded", "path", paths.Judgments, "queries", table.Len(), "overrides", table.Overrides)
	}

	if paths.Candidates != "" {
		pools, err := pool.LoadPools(paths.Candidates, pool.ReadOptions{MaxSize: opts.MaxPoolSize, KnownItem: known})
		if err != nil {
			return nil, fmt.Errorf("load candidates: %w", err)
		}
		ds.Pools = pools
		slog.Info("Candidate pools loaded", "path", paths.Candidates, "queries", pools.Len())
	}

	if ds.Queries == nil && ds.Pools != nil {
		ds.Queries = suite.FromIDs(derivedQueryIDs(ds.Pools, ds.Judgments))
	}

	return ds, nil
}

// derivedQueryIDs is the union of pooled and judged query ids, used when no
// query file is given.
func derivedQueryIDs(pools *pool.Pools, judgments *judgment.Table) []string {
	ids := pools.QueryIDs()
	if judgments == nil {
		return ids
	}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	for _, id := range judgments.QueryIDs() {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}
