package engine

import "github.com/HamStudy/vscroll/internal/viewport"

// Stats is a snapshot of engine state for status lines and reports.
type Stats struct {
	Items          int
	Measured       int
	Pending        int
	Dropped        uint64
	TotalHeight    int
	ScrollTop      int
	ViewportHeight int
	Range          viewport.VisibleRange
	Cycles         uint64
	RenderRequests uint64
	Probes         uint64
}

// Stats returns a snapshot of the engine.
func (e *Engine) Stats() Stats {
	return Stats{
		Items:          e.store.Count(),
		Measured:       e.store.MeasuredCount(),
		Pending:        len(e.pending),
		Dropped:        e.dropped,
		TotalHeight:    e.store.TotalHeight(),
		ScrollTop:      e.scrollTop,
		ViewportHeight: e.viewportHeight,
		Range:          e.lastRange,
		Cycles:         e.cycles,
		RenderRequests: e.scheduler.Requested(),
		Probes:         e.store.Probes(),
	}
}

// Verify runs the full consistency check of the height index. It is O(N log N).
func (e *Engine) Verify() error {
	return e.store.Verify()
}
