package main

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/HamStudy/vscroll/internal/bench"
)

func addBench(topLevel *cobra.Command) {
	opts := bench.DefaultOptions()
	verbose := false

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run the headless scale scenario and report query cost.",
		Example: `
vscroll bench
vscroll bench --items 5000000 --measurements 50000
`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			opts.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			report, err := bench.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}
			report.Print(cmd.OutOrStdout())
			if !report.Passed() {
				return errors.New("bench checks failed")
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.Items, "items", opts.Items, "Number of items in the list")
	f.IntVar(&opts.Measurements, "measurements", opts.Measurements, "Number of scattered measurements to apply")
	f.IntVar(&opts.Queries, "queries", opts.Queries, "Number of random range queries")
	f.IntVar(&opts.ViewportHeight, "viewport", opts.ViewportHeight, "Viewport height in rows")
	f.IntVar(&opts.EstimatedHeight, "estimate", opts.EstimatedHeight, "Estimated height of an unmeasured item")
	f.IntVar(&opts.Overscan, "overscan", opts.Overscan, "Items rendered beyond each edge of the viewport")
	f.Int64Var(&opts.Seed, "seed", opts.Seed, "Seed for item selection and content")
	f.BoolVarP(&verbose, "verbose", "v", false, "Log every engine cycle to stderr")

	topLevel.AddCommand(cmd)
}
