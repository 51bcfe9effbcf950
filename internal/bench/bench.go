// Package bench drives an engine headlessly through a large list and reports
// whether offset queries stayed logarithmic.
package bench

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/bits"
	"math/rand"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/HamStudy/vscroll/internal/components/performance"
	"github.com/HamStudy/vscroll/internal/core"
	"github.com/HamStudy/vscroll/internal/engine"
	"github.com/HamStudy/vscroll/internal/source"
	"github.com/HamStudy/vscroll/internal/viewport"
)

// Options configures a bench run.
type Options struct {
	Items           int
	Measurements    int
	Queries         int
	ViewportHeight  int
	EstimatedHeight int
	Overscan        int
	MaxContentLines int
	Seed            int64
	Logger          *slog.Logger
}

// DefaultOptions is the million-item scenario.
func DefaultOptions() Options {
	return Options{
		Items:           1_000_000,
		Measurements:    10_000,
		Queries:         1_000,
		ViewportHeight:  40,
		EstimatedHeight: core.DefaultEstimatedItemHeight,
		Overscan:        core.DefaultOverscanCount,
		MaxContentLines: core.DefaultMaxContentLines,
		Seed:            1,
	}
}

// Report is the outcome of a bench run.
type Report struct {
	Items       int
	Measured    int
	TotalHeight int
	ScrollTop   int
	Cycles      uint64
	Queries     int
	MaxProbes   uint64
	ProbeBound  uint64
	LastRange   viewport.VisibleRange
	ReachedEnd  bool
	Elapsed     time.Duration
	Metrics     []*performance.Metric
	VerifyErr   error
}

// Passed reports whether every check of the run held.
func (r *Report) Passed() bool {
	return r.ReachedEnd && r.MaxProbes <= r.ProbeBound && r.VerifyErr == nil
}

// Run executes the scenario: scattered measurements, random range queries and
// a scroll to the last item.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.Items <= 0 {
		return nil, fmt.Errorf("bench needs at least one item, got %d", opts.Items)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	started := time.Now()
	src := source.NewGenerated(opts.Items, opts.MaxContentLines, opts.Seed)
	config := &core.Config{
		TotalItems:          opts.Items,
		EstimatedItemHeight: opts.EstimatedHeight,
		OverscanCount:       opts.Overscan,
		MaxContentLines:     opts.MaxContentLines,
		FrameInterval:       core.DefaultFrameInterval,
	}
	monitor := performance.NewMonitor()
	frames := &performance.ManualFrames{}

	eng, err := engine.New(src, config, frames,
		engine.WithLogger(logger),
		engine.WithMonitor(monitor),
		engine.WithViewportHeight(opts.ViewportHeight),
	)
	if err != nil {
		return nil, err
	}
	eng.Start()

	// Heights match what the terminal host would measure: title, content
	// lines and one blank separator row.
	rng := rand.New(rand.NewSource(opts.Seed))
	for i := 0; i < opts.Measurements; i++ {
		index := rng.Intn(opts.Items)
		eng.ItemMeasured(index, src.Lines(index)+2)
		if i%500 == 499 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			frames.Flush()
		}
	}
	frames.Flush()
	logger.Info("measurements applied", slog.Int("measured", eng.Stats().Measured))

	report := &Report{
		Items:      opts.Items,
		Queries:    opts.Queries,
		ProbeBound: 2 * uint64(bits.Len(uint(opts.Items))+1),
	}
	for i := 0; i < opts.Queries; i++ {
		before := eng.Stats().Probes
		eng.ComputeVisibleRange(rng.Intn(eng.TotalHeight()), opts.ViewportHeight)
		report.MaxProbes = max(report.MaxProbes, eng.Stats().Probes-before)
	}

	eng.ScrollToIndex(opts.Items - 1)
	frames.Flush()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stats := eng.Stats()
	report.Measured = stats.Measured
	report.TotalHeight = stats.TotalHeight
	report.Cycles = stats.Cycles
	report.LastRange = stats.Range
	report.ScrollTop = stats.ScrollTop
	report.ReachedEnd = stats.Range.Contains(opts.Items - 1)
	report.VerifyErr = eng.Verify()
	report.Metrics = monitor.Metrics()
	report.Elapsed = time.Since(started)

	logger.Info("bench finished",
		slog.Bool("passed", report.Passed()),
		slog.Duration("elapsed", report.Elapsed))
	return report, nil
}

// Print writes the report as two tables.
func (r *Report) Print(w io.Writer) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Check"), bold.Sprint("Value"))
	tbl.AddRow("items", r.Items)
	tbl.AddRow("measured", r.Measured)
	tbl.AddRow("total height", r.TotalHeight)
	tbl.AddRow("render cycles", r.Cycles)
	tbl.AddRow("range queries", r.Queries)
	tbl.AddRow("max probes per query", fmt.Sprintf("%d (bound %d)", r.MaxProbes, r.ProbeBound))
	tbl.AddRow("final range", fmt.Sprintf("%d-%d", r.LastRange.Start, r.LastRange.End))
	tbl.AddRow("reached last item", verdict(r.ReachedEnd))
	tbl.AddRow("index consistent", verdict(r.VerifyErr == nil))
	tbl.AddRow("elapsed", r.Elapsed.Round(time.Millisecond))
	_, _ = fmt.Fprintln(w, tbl)

	if len(r.Metrics) > 0 {
		timings := uitable.New()
		timings.Separator = "  "
		timings.AddRow(bold.Sprint("Phase"), bold.Sprint("Count"), bold.Sprint("Avg"), bold.Sprint("Max"))
		for _, m := range r.Metrics {
			timings.AddRow(m.Name, m.Count, m.AverageTime(), m.MaxTime)
		}
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, timings)
	}

	_, _ = fmt.Fprintln(w)
	if r.Passed() {
		_, _ = fmt.Fprintln(w, color.GreenString("PASS"))
	} else {
		_, _ = fmt.Fprintln(w, color.RedString("FAIL"))
	}
}

func verdict(ok bool) string {
	if ok {
		return color.GreenString("yes")
	}
	return color.RedString("no")
}
