// Command sumbench compares naive, balanced and dispatched summation for
// throughput and accuracy against an exact reference sum.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/amikos-tech/pure-strided/native"
)

func newRootCmd() *cobra.Command {
	cfg := benchConfig{}
	var (
		libPath string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:           "sumbench",
		Short:         "Benchmark naive, balanced and native summation",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			opts := []native.Option{native.WithLogger(logger)}
			if libPath != "" {
				opts = append(opts, native.WithLibraryPath(libPath))
			}
			cfg.dispatcher = native.Load(opts...)
			return runBench(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}

	cmd.Flags().IntSliceVar(&cfg.sizes, "sizes", []int{1000, 100000, 1000000}, "input lengths to benchmark")
	cmd.Flags().IntVarP(&cfg.iterations, "iterations", "n", 20, "timed repetitions per method and size")
	cmd.Flags().Int64Var(&cfg.seed, "seed", 1, "random seed for the input values")
	cmd.Flags().StringVar(&libPath, "lib", "", "path to the native kernel library")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log native library resolution")
	return cmd
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
