package ui

import (
	"testing"
	"time"
)

func TestTeaFramesSingleTick(t *testing.T) {
	f := newTeaFrames(time.Millisecond)

	if f.cmd() != nil {
		t.Error("Expected no tick without pending frames")
	}

	ran := 0
	f.RequestFrame(func() { ran++ })
	f.RequestFrame(func() { ran++ })

	if f.cmd() == nil {
		t.Fatal("Expected a tick for pending frames")
	}
	if f.cmd() != nil {
		t.Error("Expected only one tick in flight")
	}

	f.run()
	if ran != 2 {
		t.Errorf("Expected 2 frames to run, got %d", ran)
	}
	if f.cmd() != nil {
		t.Error("Expected no tick after running every frame")
	}
}

func TestTeaFramesRequestedDuringRun(t *testing.T) {
	f := newTeaFrames(time.Millisecond)

	f.RequestFrame(func() {
		f.RequestFrame(func() {})
	})
	f.cmd()
	f.run()

	if len(f.pending) != 1 {
		t.Fatalf("Expected the nested frame to wait, got %d pending", len(f.pending))
	}
	if f.cmd() == nil {
		t.Error("Expected a new tick for the nested frame")
	}
}
