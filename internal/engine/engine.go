// Package engine keeps a very long list of variable-height items scrollable
// while only the visible slice is materialized.
//
// The host feeds the engine scroll positions, viewport sizes and measured
// item heights. The engine coalesces those events into render cycles; each
// cycle applies all pending measurements, compensates the scroll position for
// corrections above the viewport and reports the range of items to render.
//
// An Engine is not safe for concurrent use. All calls, including the frame
// callbacks handed to the FrameRequester, must happen on one goroutine.
package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/HamStudy/vscroll/internal/components/performance"
	"github.com/HamStudy/vscroll/internal/core"
	"github.com/HamStudy/vscroll/internal/heights"
	"github.com/HamStudy/vscroll/internal/source"
	"github.com/HamStudy/vscroll/internal/viewport"
)

// Metric names recorded on the engine's monitor.
const (
	MetricRenderCycle       = "render_cycle"
	MetricApplyMeasurements = "apply_measurements"
)

type measurement struct {
	index  int
	height int
}

// Engine is the index engine behind a virtualized list.
type Engine struct {
	source    source.Source
	store     *heights.Store
	resolver  *viewport.Resolver
	anchors   *viewport.AnchorTracker
	scheduler *performance.Scheduler
	monitor   *performance.Monitor
	logger    *slog.Logger

	scrollTop      int
	viewportHeight int

	// pending holds measurements reported since the last cycle, in arrival
	// order. queued mirrors it for duplicate detection.
	pending []measurement
	queued  map[int]struct{}

	// started gates scheduling: events before Start only update state.
	started   bool
	lastRange viewport.VisibleRange
	cycles    uint64
	dropped   uint64

	onScrollAdjustment func(delta int)
	onRender           func(r viewport.VisibleRange)
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for the engine.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMonitor records render cycle timings on m.
func WithMonitor(m *performance.Monitor) Option {
	return func(e *Engine) {
		if m != nil {
			e.monitor = m
		}
	}
}

// WithViewportHeight sets the initial viewport height.
func WithViewportHeight(height int) Option {
	return func(e *Engine) {
		e.viewportHeight = max(height, 0)
	}
}

// New builds an engine over src. The item count comes from src; config
// supplies the height estimate and overscan. Frames for deferred renders are
// obtained from frames.
func New(src source.Source, config *core.Config, frames performance.FrameRequester, opts ...Option) (*Engine, error) {
	if src == nil {
		return nil, errors.New("engine requires an item source")
	}
	if frames == nil {
		return nil, errors.New("engine requires a frame requester")
	}
	if config == nil {
		config = core.DefaultConfig()
	}

	e := &Engine{
		source:    src,
		queued:    make(map[int]struct{}),
		lastRange: viewport.EmptyRange,
		monitor:   performance.NewMonitor(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With(slog.String("component", "engine"))

	normalized := *config
	for _, change := range normalized.Normalize() {
		e.logger.Warn("configuration adjusted", slog.String("change", change))
	}
	if normalized.TotalItems != src.Count() {
		e.logger.Debug("item source overrides configured item count",
			slog.Int("configured", normalized.TotalItems),
			slog.Int("source", src.Count()))
	}

	store, err := heights.New(src.Count(), normalized.EstimatedItemHeight, heights.WithLogger(e.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create height store: %w", err)
	}
	e.store = store
	e.resolver = viewport.NewResolver(store, normalized.OverscanCount)
	e.anchors = viewport.NewAnchorTracker(store)
	e.scheduler = performance.NewScheduler(frames, e.render)

	return e, nil
}

// SetOnScrollAdjustment sets the callback that receives scroll corrections.
// The host must add delta to its own scroll position.
func (e *Engine) SetOnScrollAdjustment(callback func(delta int)) {
	e.onScrollAdjustment = callback
}

// SetOnRender sets the callback that receives the range to materialize at
// the end of every cycle.
func (e *Engine) SetOnRender(callback func(r viewport.VisibleRange)) {
	e.onRender = callback
}

// Start runs the first cycle synchronously so the host has something to draw
// before any frame fires. Events received before Start are folded into that
// cycle; afterwards they schedule frames.
func (e *Engine) Start() {
	e.started = true
	e.scheduler.Cancel()
	e.render()
}

func (e *Engine) schedule() {
	if e.started {
		e.scheduler.Schedule()
	}
}

// Close drops any pending frame and stops scheduling new ones.
func (e *Engine) Close() {
	e.started = false
	e.scheduler.Cancel()
}

// Source returns the item source.
func (e *Engine) Source() source.Source {
	return e.source
}

// ScrollPositionChanged records the host's scroll position and schedules a
// cycle. Negative positions are clamped to zero.
func (e *Engine) ScrollPositionChanged(scrollTop int) {
	e.scrollTop = max(scrollTop, 0)
	e.schedule()
}

// ViewportResized records the viewport height and schedules a cycle.
func (e *Engine) ViewportResized(height int) {
	e.viewportHeight = max(height, 0)
	e.schedule()
}

// ItemMeasured queues a measured height for the next cycle. Reports for
// items outside the list, non-positive heights and items that are already
// measured or queued are dropped.
func (e *Engine) ItemMeasured(index, height int) {
	switch {
	case index < 0 || index >= e.store.Count():
		e.drop("index out of range", index, height)
		return
	case height <= 0:
		e.drop("non-positive height", index, height)
		return
	case e.store.IsMeasured(index):
		return
	}
	if _, ok := e.queued[index]; ok {
		return
	}

	e.queued[index] = struct{}{}
	e.pending = append(e.pending, measurement{index: index, height: height})
	e.schedule()
}

func (e *Engine) drop(reason string, index, height int) {
	e.dropped++
	e.logger.Debug("measurement dropped",
		slog.String("reason", reason),
		slog.Int("index", index),
		slog.Int("height", height))
}

// NeedsMeasurement reports whether the host should measure item index: it
// exists, is unmeasured and has no measurement waiting for the next cycle.
func (e *Engine) NeedsMeasurement(index int) bool {
	if index < 0 || index >= e.store.Count() || e.store.IsMeasured(index) {
		return false
	}
	_, queued := e.queued[index]
	return !queued
}

// ComputeVisibleRange returns the range to render for an arbitrary scroll
// position without touching engine state.
func (e *Engine) ComputeVisibleRange(scrollTop, viewportHeight int) viewport.VisibleRange {
	return e.resolver.Resolve(scrollTop, viewportHeight)
}

// TopOffset returns the offset of the top edge of item index.
func (e *Engine) TopOffset(index int) (int, error) {
	if index < 0 || index >= e.store.Count() {
		return 0, &heights.BoundsError{Index: index, Count: e.store.Count()}
	}
	return e.store.PrefixOffset(index)
}

// ItemHeight returns the measured or estimated height of item index.
func (e *Engine) ItemHeight(index int) (int, error) {
	return e.store.Height(index)
}

// TotalHeight returns the height of the whole list.
func (e *Engine) TotalHeight() int {
	return e.store.TotalHeight()
}

// ScrollToIndex moves the scroll position to the top of item index, clamped
// to the list, schedules a cycle and returns the new position.
func (e *Engine) ScrollToIndex(index int) int {
	count := e.store.Count()
	if count == 0 {
		e.scrollTop = 0
		return 0
	}
	index = min(max(index, 0), count-1)
	top, err := e.store.PrefixOffset(index)
	if err != nil {
		e.logger.Error("failed to resolve item offset", slog.Int("index", index), slog.String("error", err.Error()))
		return e.scrollTop
	}
	e.scrollTop = top
	e.schedule()
	return top
}

// ScrollTop returns the scroll position the engine last saw or produced.
func (e *Engine) ScrollTop() int {
	return e.scrollTop
}

// ViewportHeight returns the current viewport height.
func (e *Engine) ViewportHeight() int {
	return e.viewportHeight
}

// VisibleRange returns the range produced by the last cycle.
func (e *Engine) VisibleRange() viewport.VisibleRange {
	return e.lastRange
}

// IsRenderPending reports whether a cycle is scheduled.
func (e *Engine) IsRenderPending() bool {
	return e.scheduler.IsPending()
}

// render is one cycle: capture, mutate, restore, resolve.
func (e *Engine) render() {
	defer e.monitor.StartTimer(MetricRenderCycle)()
	e.cycles++

	if len(e.pending) > 0 {
		e.applyMeasurements()
	}

	r := e.resolver.Resolve(e.scrollTop, e.viewportHeight)
	e.lastRange = r
	if e.onRender != nil {
		e.onRender(r)
	}
}

// applyMeasurements records every pending measurement between one anchor
// capture and one restore, so several corrections in a cycle produce a
// single delta.
func (e *Engine) applyMeasurements() {
	stop := e.monitor.StartTimer(MetricApplyMeasurements)
	anchor := e.anchors.Capture(e.scrollTop)

	applied := 0
	for _, m := range e.pending {
		ok, err := e.store.Record(m.index, m.height)
		if err != nil {
			e.drop(err.Error(), m.index, m.height)
			continue
		}
		if ok {
			applied++
		}
	}
	e.pending = e.pending[:0]
	clear(e.queued)
	stop()

	delta := e.anchors.Restore(anchor)
	e.logger.Debug("measurements applied",
		slog.Int("applied", applied),
		slog.Int("delta", delta),
		slog.Int("total_height", e.store.TotalHeight()))
	if delta == 0 {
		return
	}

	e.scrollTop += delta
	if e.onScrollAdjustment != nil {
		e.onScrollAdjustment(delta)
	}
}
