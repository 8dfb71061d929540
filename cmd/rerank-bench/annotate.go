package main

import (
	"fmt"

	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/dataset"
	"github.com/DjordjeVuckovic/rerank-bench/internal/bench/judgment"
	"github.com/spf13/cobra"
)

func annotateCmd(cfg *cliConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "annotate",
		Short: "Write a YAML judging template for the candidate pools",
		Long: `Write every pooled item as unjudged (grade -1) so annotators can fill
in grades 0, 1 or 2. The edited file is accepted by 'score --judgments'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			es, err := cfg.evalSpec()
			if err != nil {
				return err
			}
			if es.Data.Candidates == "" {
				return usageError("--candidates is required")
			}
			if cfg.Output == "" {
				return usageError("--output is required")
			}

			ds, err := dataset.Load(dataset.Paths{
				Queries:    es.Data.Queries,
				Candidates: es.Data.Candidates,
			}, dataset.Options{MaxPoolSize: es.MaxPoolSize})
			if err != nil {
				return err
			}

			if err := judgment.ExportForAnnotation(ds.Pools, ds.Queries, cfg.Output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d queries to %s\n", ds.Pools.Len(), cfg.Output)
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.Candidates, "candidates", "", "candidate pools (JSONL or YAML)")
	cmd.Flags().StringVar(&cfg.Queries, "queries", "", "query list CSV for query texts")
	cmd.Flags().StringVarP(&cfg.Output, "output", "o", "", "template path")

	return cmd
}
