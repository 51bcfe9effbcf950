package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnchorCapture(t *testing.T) {
	tracker := NewAnchorTracker(newStore(t, 100, 40))

	a := tracker.Capture(210)
	require.True(t, a.Valid())
	assert.Equal(t, 5, a.Index)
	assert.Equal(t, 10, a.Residual)

	a = tracker.Capture(-30)
	assert.Equal(t, 0, a.Index)
	assert.Equal(t, 0, a.Residual)
}

func TestAnchorRoundTrip(t *testing.T) {
	s := newStore(t, 100, 40)
	_, _ = s.Record(2, 13)
	tracker := NewAnchorTracker(s)

	for _, scrollTop := range []int{0, 1, 39, 40, 210, 3999, 5000} {
		a := tracker.Capture(scrollTop)
		assert.Equal(t, 0, tracker.Restore(a), "scrollTop %d", scrollTop)
	}
}

func TestAnchorRestoreAfterCorrectionAbove(t *testing.T) {
	s := newStore(t, 100, 40)
	tracker := NewAnchorTracker(s)

	a := tracker.Capture(210)
	_, err := s.Record(0, 120)
	require.NoError(t, err)

	assert.Equal(t, 80, tracker.Restore(a))
}

func TestAnchorIgnoresCorrectionsAtOrBelow(t *testing.T) {
	s := newStore(t, 100, 40)
	tracker := NewAnchorTracker(s)

	a := tracker.Capture(210)
	_, _ = s.Record(5, 300)
	_, _ = s.Record(6, 10)
	_, _ = s.Record(90, 1)

	assert.Equal(t, 0, tracker.Restore(a))
}

func TestAnchorBatchedCorrections(t *testing.T) {
	s := newStore(t, 100, 40)
	tracker := NewAnchorTracker(s)

	a := tracker.Capture(1010)
	require.Equal(t, 25, a.Index)

	_, _ = s.Record(0, 100) // +60
	_, _ = s.Record(3, 10)  // -30
	_, _ = s.Record(24, 45) // +5
	_, _ = s.Record(30, 400)

	assert.Equal(t, 35, tracker.Restore(a))

	// The restored position lands on the same point of the same item.
	again := tracker.Capture(1010 + 35)
	assert.Equal(t, a.Index, again.Index)
	assert.Equal(t, a.Residual, again.Residual)
}

func TestAnchorEmptyList(t *testing.T) {
	tracker := NewAnchorTracker(newStore(t, 0, 40))

	a := tracker.Capture(100)
	assert.False(t, a.Valid())
	assert.Equal(t, 0, tracker.Restore(a))
}
