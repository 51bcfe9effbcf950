package bench

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallOptions() Options {
	opts := DefaultOptions()
	opts.Items = 5_000
	opts.Measurements = 1_000
	opts.Queries = 200
	return opts
}

func TestRunPasses(t *testing.T) {
	report, err := Run(context.Background(), smallOptions())
	require.NoError(t, err)

	assert.True(t, report.Passed())
	assert.True(t, report.ReachedEnd)
	assert.Equal(t, 4_999, report.LastRange.End)
	assert.LessOrEqual(t, report.MaxProbes, report.ProbeBound)
	assert.Greater(t, report.Measured, 0)
	assert.LessOrEqual(t, report.Measured, 1_000)
	assert.NoError(t, report.VerifyErr)
	assert.NotEmpty(t, report.Metrics)
}

func TestRunIsDeterministic(t *testing.T) {
	a, err := Run(context.Background(), smallOptions())
	require.NoError(t, err)
	b, err := Run(context.Background(), smallOptions())
	require.NoError(t, err)

	assert.Equal(t, a.TotalHeight, b.TotalHeight)
	assert.Equal(t, a.Measured, b.Measured)
	assert.Equal(t, a.ScrollTop, b.ScrollTop)
}

func TestRunRejectsEmptyList(t *testing.T) {
	opts := smallOptions()
	opts.Items = 0

	_, err := Run(context.Background(), opts)
	assert.Error(t, err)
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, smallOptions())
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestPrint(t *testing.T) {
	report, err := Run(context.Background(), smallOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	report.Print(&buf)

	out := buf.String()
	assert.Contains(t, out, "max probes per query")
	assert.Contains(t, out, "render_cycle")
	assert.Contains(t, out, "PASS")

	report.ReachedEnd = false
	buf.Reset()
	report.Print(&buf)
	assert.Contains(t, buf.String(), "FAIL")
}
