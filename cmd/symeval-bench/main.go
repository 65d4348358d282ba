// Command symeval-bench grows random expression trees over a random dataset
// and times the scalar and vector engines on them.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cfg := defaultConfig()
	var verbose bool

	cmd := &cobra.Command{
		Use:   "symeval-bench",
		Short: "Benchmark the symeval scalar and vector engines",
		Long: `symeval-bench grows a population of random expression trees over a random
dataset, then evaluates every tree on every row with the scalar engine
(sequentially and with trees spread across goroutines) and with the vector
engine, and reports the elapsed time and node evaluations per second.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			cfg.logHandler = slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
			return run(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&cfg.trees, "trees", "t", cfg.trees, "Number of trees to grow")
	flags.IntVarP(&cfg.rows, "rows", "r", cfg.rows, "Number of dataset rows")
	flags.IntVarP(&cfg.vars, "vars", "v", cfg.vars, "Number of dataset columns (x1..xN)")
	flags.IntVarP(&cfg.depth, "depth", "d", cfg.depth, "Maximum tree depth")
	flags.Uint64Var(&cfg.seed, "seed", cfg.seed, "Random seed")
	flags.IntVar(&cfg.workers, "workers", cfg.workers, "Goroutines for parallel modes")
	flags.IntVar(&cfg.grain, "grain", cfg.grain, "Rows per vector kernel task")
	flags.BoolVar(&cfg.verify, "verify", false, "Check that both engines agree on every row")
	flags.BoolVar(&cfg.print, "print", false, "Print every tree before timing")
	flags.BoolVarP(&cfg.json, "json", "j", false, "Output results in JSON format")
	flags.BoolVar(&verbose, "verbose", false, "Log at debug level")

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func defaultConfig() config {
	return config{
		trees:   100,
		rows:    1000,
		vars:    5,
		depth:   8,
		seed:    1234,
		workers: runtime.GOMAXPROCS(0),
		grain:   4096,
	}
}
