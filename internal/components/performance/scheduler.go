package performance

// FrameRequester defers a callback to the host's next frame. The host must
// invoke fn on the same goroutine that drives the engine.
type FrameRequester interface {
	RequestFrame(fn func())
}

// FrameRequesterFunc adapts a function to FrameRequester.
type FrameRequesterFunc func(fn func())

// RequestFrame calls f(fn).
func (f FrameRequesterFunc) RequestFrame(fn func()) {
	f(fn)
}

// Scheduler coalesces render requests into at most one pending frame.
//
// It is idle until Schedule arms it; further Schedule calls while armed are
// dropped. The scheduler returns to idle right before the render callback
// runs, so a Schedule made during rendering arms a fresh frame instead of
// being lost. Nothing queues up: a flood of requests costs one render.
type Scheduler struct {
	frames FrameRequester
	render func()

	armed bool
	// generation invalidates frames requested before a Cancel.
	generation uint64

	requested uint64
	rendered  uint64
}

// NewScheduler creates a scheduler that runs render on frames obtained from
// frames.
func NewScheduler(frames FrameRequester, render func()) *Scheduler {
	return &Scheduler{
		frames: frames,
		render: render,
	}
}

// Schedule requests a render on the next frame.
func (s *Scheduler) Schedule() {
	s.requested++
	if s.armed {
		return
	}
	s.armed = true

	generation := s.generation
	s.frames.RequestFrame(func() {
		if generation != s.generation || !s.armed {
			return
		}
		s.armed = false
		s.rendered++
		s.render()
	})
}

// Cancel drops a pending frame, if any.
func (s *Scheduler) Cancel() {
	s.armed = false
	s.generation++
}

// IsPending reports whether a frame is armed.
func (s *Scheduler) IsPending() bool {
	return s.armed
}

// Requested returns how many times Schedule was called.
func (s *Scheduler) Requested() uint64 {
	return s.requested
}

// Rendered returns how many frames actually ran the render callback.
func (s *Scheduler) Rendered() uint64 {
	return s.rendered
}

// ManualFrames is a FrameRequester whose frames run only when Flush is
// called. Headless hosts and tests use it to step frames deterministically.
type ManualFrames struct {
	pending []func()
}

// RequestFrame queues fn for the next Flush.
func (m *ManualFrames) RequestFrame(fn func()) {
	m.pending = append(m.pending, fn)
}

// Pending returns the number of queued frames.
func (m *ManualFrames) Pending() int {
	return len(m.pending)
}

// Flush runs the frames queued so far and returns how many ran. Frames
// requested while flushing wait for the next Flush.
func (m *ManualFrames) Flush() int {
	frames := m.pending
	m.pending = nil
	for _, fn := range frames {
		fn()
	}
	return len(frames)
}
