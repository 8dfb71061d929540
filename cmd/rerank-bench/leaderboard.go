package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func leaderboardCmd(cfg *cliConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "List published results, best NDCG@10 first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, closeFn, err := openResultStore(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			entries, err := store.Leaderboard(ctx, cfg.Limit)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tTeam\tNDCG@10\tMRR@10\tRecall@50\tVerdict\tIssues\tSubmission\tPublished")
			for i, e := range entries {
				fmt.Fprintf(tw, "%d\t%s\t%.4f\t%.4f\t%.4f\t%s\t%d\t%s\t%s\n",
					i+1, e.Team, e.NDCG, e.MRR, e.Recall, e.Verdict, e.IssueCount, e.Submission,
					e.PublishedAt.Format("2006-01-02 15:04"))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&cfg.Limit, "limit", 20, "number of rows")

	return cmd
}
