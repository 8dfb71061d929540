package main

import (
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/rerank-bench/internal/apperr"
	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/dataset"
	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/submission"
	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/validate"
	"github.com/spf13/cobra"
)

func validateCmd(cfg *cliConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate SUBMISSION",
		Short: "Check a submission file without scoring it",
		Long: `Check that a submission parses and is consistent with the query table
and candidate pools. Every problem is reported; the exit status is 0 when the
file is clean, 1 when it has issues and 2 when it cannot be read.

Without --candidates only the per-query checks run (duplicates, score order,
empty lists).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, cfg, args[0])
		},
	}

	cmd.Flags().StringVar(&cfg.Queries, "queries", "", "query list CSV")
	cmd.Flags().StringVar(&cfg.Candidates, "candidates", "", "candidate pools (JSONL or YAML)")

	return cmd
}

func runValidate(cmd *cobra.Command, cfg *cliConfig, path string) error {
	es, err := cfg.evalSpec()
	if err != nil {
		return err
	}
	if es.Data.Queries != "" && es.Data.Candidates == "" {
		return usageError("--queries requires --candidates")
	}

	sub, err := submission.Load(path)
	if err != nil {
		return err
	}

	var issues []validate.Issue
	if es.Data.Candidates != "" {
		ds, err := dataset.Load(dataset.Paths{
			Queries:    es.Data.Queries,
			Candidates: es.Data.Candidates,
		}, dataset.Options{MaxPoolSize: es.MaxPoolSize})
		if err != nil {
			return err
		}
		issues = validate.Check(sub, ds.Queries, ds.Pools)
	} else {
		slog.Debug("no candidate pools given, running structural checks only")
		issues = validate.Structural(sub)
	}

	if len(issues) > 0 {
		printIssues(cmd, issues)
		fmt.Fprintf(cmd.ErrOrStderr(), "FAIL: %s has %d issues.\n", path, len(issues))
		return &apperr.ExitError{Code: apperr.ExitIssues}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "OK: %s contains %d queries.\n", path, sub.Len())
	return nil
}

func printIssues(cmd *cobra.Command, issues []validate.Issue) {
	w := cmd.ErrOrStderr()
	for _, is := range issues {
		fmt.Fprintln(w, is.String())
	}
}
