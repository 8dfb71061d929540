package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/rerank-bench/internal/apperr"
	"github.com/DjordjeVuckovic/rerank-bench/pkg/config/env"
	"github.com/spf13/cobra"
)

func main() {
	root := newRootCmd()
	err := root.Execute()
	if err != nil {
		printError(root.ErrOrStderr(), err)
	}
	os.Exit(apperr.ExitCode(err))
}

func newRootCmd() *cobra.Command {
	cfg := &cliConfig{}

	rootCmd := &cobra.Command{
		Use:   "rerank-bench",
		Short: "Offline evaluation and validation of re-ranking submissions",
		Long: `rerank-bench scores a submitted ranking against graded relevance
judgments and checks that it only re-orders the provided candidate pools.

Run 'rerank-bench validate' to check a submission file.
Run 'rerank-bench score' to compute NDCG@10, MRR@10 and Recall@50.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(cmd.ErrOrStderr(), cfg.Verbose)
			return env.LoadDotEnv(env.DefaultPath)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfg.SpecPath, "spec", "", "eval spec YAML")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		validateCmd(cfg),
		scoreCmd(cfg),
		annotateCmd(cfg),
		leaderboardCmd(cfg),
	)

	return rootCmd
}

func setupLogger(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func printError(w io.Writer, err error) {
	var ee *apperr.ExitError
	if errors.As(err, &ee) && ee.Err == nil {
		return
	}
	fmt.Fprintf(w, "error: %v\n", err)
}

func usageError(format string, args ...any) error {
	return &apperr.ExitError{Code: apperr.ExitFatal, Err: fmt.Errorf(format, args...)}
}
