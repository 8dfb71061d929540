package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/rerank-bench/internal/apperr"
	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/dataset"
	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/report"
	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/runner"
	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/submission"
	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/validate"
	"github.com/DjordjeVuckovic/rerank-bench/internal/storage/pg"
	"github.com/DjordjeVuckovic/rerank-bench/pkg/config/env"
	"github.com/spf13/cobra"
)

func scoreCmd(cfg *cliConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a submission and print the verdict",
		Long: `Validate and score a submission against graded judgments.

Prints the summary (one line per core metric, the verdict and the issue
count) followed by a single JSON line with every aggregate metric. A FAIL
verdict only changes the exit status with --enforce.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd.Context(), cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.Judgments, "judgments", "", "qrels TSV or annotation YAML")
	cmd.Flags().StringVar(&cfg.Candidates, "candidates", "", "candidate pools (JSONL or YAML)")
	cmd.Flags().StringVar(&cfg.Submission, "submission", "", "submission JSONL")
	cmd.Flags().StringVar(&cfg.Queries, "queries", "", "query list CSV (default: pooled query ids)")
	cmd.Flags().StringVar(&cfg.Corpus, "corpus", "", "corpus CSV to cross-check item ids against")
	cmd.Flags().StringSliceVar(&cfg.Metrics, "metrics", nil, "metrics to compute, e.g. ndcg@10,precision@5")
	cmd.Flags().IntVar(&cfg.Workers, "workers", 0, "parallel scoring workers (default: one per CPU)")
	cmd.Flags().StringVarP(&cfg.Output, "output", "o", "", "write the full report as JSON")
	cmd.Flags().BoolVar(&cfg.PerQuery, "per-query", false, "print and record per-query scores")
	cmd.Flags().BoolVar(&cfg.Enforce, "enforce", false, "exit 1 when the verdict is FAIL")
	cmd.Flags().BoolVar(&cfg.Publish, "publish", false, "store the result in the results database")
	cmd.Flags().StringVar(&cfg.Team, "team", "", "team name recorded with --publish")

	return cmd
}

func runScore(ctx context.Context, cmd *cobra.Command, cfg *cliConfig) error {
	es, err := cfg.evalSpec()
	if err != nil {
		return err
	}
	switch {
	case cfg.Submission == "":
		return usageError("--submission is required")
	case es.Data.Judgments == "":
		return usageError("--judgments is required")
	case es.Data.Candidates == "":
		return usageError("--candidates is required")
	case cfg.Publish && cfg.Team == "":
		return usageError("--publish requires --team")
	}

	ds, err := dataset.Load(es.Data, dataset.Options{MaxPoolSize: es.MaxPoolSize})
	if err != nil {
		return err
	}

	sub, err := submission.Load(cfg.Submission)
	if err != nil {
		return err
	}

	issues := validate.Check(sub, ds.Queries, ds.Pools)

	result, err := runner.New(runner.Config{
		Specs:              es.MetricSpecs(),
		RelevanceThreshold: es.Metrics.RelevanceThreshold,
		Workers:            es.Runs.Workers,
	}).Run(ctx, ds.Judgments, sub)
	if err != nil {
		return err
	}

	rep, err := report.Build(result, issues, report.Options{
		Thresholds: es.Thresholds.Resolve(),
		PerQuery:   cfg.PerQuery,
		Submission: cfg.Submission,
	})
	if err != nil {
		return err
	}

	if len(issues) > 0 {
		printIssues(cmd, issues)
	}

	out := cmd.OutOrStdout()
	if err := rep.WriteSummary(out); err != nil {
		return err
	}
	if cfg.PerQuery {
		if err := rep.WriteTable(out); err != nil {
			return err
		}
	}
	line, err := rep.MarshalMetrics()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(line))

	if cfg.Output != "" {
		if err := rep.WriteJSON(cfg.Output); err != nil {
			return err
		}
		slog.Info("Report written", "path", cfg.Output, "id", rep.ID)
	}

	if cfg.Publish {
		if err := publish(ctx, cfg.Team, rep); err != nil {
			return err
		}
	}

	if cfg.Enforce && !rep.Pass {
		return &apperr.ExitError{Code: apperr.ExitIssues}
	}
	return nil
}

func publish(ctx context.Context, team string, rep *report.Report) error {
	store, closeFn, err := openResultStore(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	inserted, err := store.Save(ctx, team, rep)
	if err != nil {
		return err
	}
	slog.Info("Result published", "team", team, "id", rep.ID, "new", inserted)
	return nil
}

func openResultStore(ctx context.Context) (*pg.ResultStore, func(), error) {
	connStr := env.DatabaseURL()
	if connStr == "" {
		return nil, nil, usageError("%s is not set", env.DatabaseURLVar)
	}

	pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: connStr})
	if err != nil {
		return nil, nil, err
	}

	store := pg.NewResultStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return store, pool.Close, nil
}
