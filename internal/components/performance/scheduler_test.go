package performance

import (
	"testing"
)

func TestSchedulerCoalescesRequests(t *testing.T) {
	frames := &ManualFrames{}
	renders := 0
	s := NewScheduler(frames, func() { renders++ })

	for i := 0; i < 50; i++ {
		s.Schedule()
	}

	if !s.IsPending() {
		t.Error("Expected scheduler to be armed")
	}
	if frames.Pending() != 1 {
		t.Errorf("Expected 1 pending frame, got %d", frames.Pending())
	}

	frames.Flush()

	if renders != 1 {
		t.Errorf("Expected 1 render, got %d", renders)
	}
	if s.IsPending() {
		t.Error("Expected scheduler to be idle after the frame ran")
	}
	if s.Requested() != 50 || s.Rendered() != 1 {
		t.Errorf("Expected 50 requests and 1 render, got %d and %d", s.Requested(), s.Rendered())
	}
}

func TestSchedulerIdleBeforeRender(t *testing.T) {
	frames := &ManualFrames{}
	var s *Scheduler
	renders := 0
	s = NewScheduler(frames, func() {
		renders++
		if s.IsPending() {
			t.Error("Expected scheduler to be idle while rendering")
		}
		if renders == 1 {
			s.Schedule()
		}
	})

	s.Schedule()
	frames.Flush()

	if renders != 1 {
		t.Errorf("Expected 1 render after the first flush, got %d", renders)
	}
	if !s.IsPending() || frames.Pending() != 1 {
		t.Fatal("Expected a schedule during render to arm a fresh frame")
	}

	frames.Flush()
	if renders != 2 {
		t.Errorf("Expected 2 renders, got %d", renders)
	}
	if frames.Pending() != 0 {
		t.Errorf("Expected no frames left, got %d", frames.Pending())
	}
}

func TestSchedulerCancel(t *testing.T) {
	frames := &ManualFrames{}
	renders := 0
	s := NewScheduler(frames, func() { renders++ })

	s.Schedule()
	s.Cancel()
	if s.IsPending() {
		t.Error("Expected cancel to disarm the scheduler")
	}

	frames.Flush()
	if renders != 0 {
		t.Errorf("Expected cancelled frame not to render, got %d renders", renders)
	}

	s.Schedule()
	frames.Flush()
	if renders != 1 {
		t.Errorf("Expected scheduling after cancel to render once, got %d", renders)
	}
}

func TestFrameRequesterFunc(t *testing.T) {
	var queued func()
	requester := FrameRequesterFunc(func(fn func()) { queued = fn })

	ran := false
	s := NewScheduler(requester, func() { ran = true })
	s.Schedule()

	if queued == nil {
		t.Fatal("Expected the frame to be requested")
	}
	queued()
	if !ran {
		t.Error("Expected the render callback to run")
	}
}
