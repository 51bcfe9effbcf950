package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// frameMsg fires a pending engine frame.
type frameMsg time.Time

// teaFrames hands engine frames to the bubbletea event loop, so deferred
// renders run on the same goroutine as Update. At most one tick is in
// flight at a time.
type teaFrames struct {
	interval time.Duration
	pending  []func()
	ticking  bool
}

func newTeaFrames(interval time.Duration) *teaFrames {
	return &teaFrames{interval: interval}
}

// RequestFrame implements performance.FrameRequester.
func (f *teaFrames) RequestFrame(fn func()) {
	f.pending = append(f.pending, fn)
}

// cmd returns the tick that will deliver pending frames, or nil when nothing
// is pending or a tick is already in flight.
func (f *teaFrames) cmd() tea.Cmd {
	if len(f.pending) == 0 || f.ticking {
		return nil
	}
	f.ticking = true
	return tea.Tick(f.interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// run executes the frames pending when the tick arrived.
func (f *teaFrames) run() {
	f.ticking = false
	frames := f.pending
	f.pending = nil
	for _, fn := range frames {
		fn()
	}
}
