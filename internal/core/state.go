package core

import (
	"sync"
)

// State holds the host UI state that survives engine render cycles.
type State struct {
	mu sync.RWMutex

	// ScrollTop is the host's scroll position in rows.
	ScrollTop int
	// Cursor is the highlighted item, -1 when nothing is highlighted.
	Cursor   int
	ShowHelp bool

	config *Config
}

// NewState creates the initial UI state.
func NewState(config *Config) *State {
	cursor := -1
	if config.TotalItems > 0 {
		cursor = 0
	}
	return &State{
		Cursor: cursor,
		config: config,
	}
}

// Config returns the configuration the state was created with.
func (s *State) Config() *Config {
	return s.config
}

// SetScrollTop stores a scroll position, clamped to [0, limit].
func (s *State) SetScrollTop(top, limit int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if top > limit {
		top = limit
	}
	if top < 0 {
		top = 0
	}
	s.ScrollTop = top
	return top
}

// GetScrollTop returns the stored scroll position.
func (s *State) GetScrollTop() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ScrollTop
}

// MoveCursor moves the cursor by delta, clamped to [0, count).
func (s *State) MoveCursor(delta, count int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if count == 0 {
		s.Cursor = -1
		return s.Cursor
	}
	s.Cursor = min(max(s.Cursor+delta, 0), count-1)
	return s.Cursor
}

// SetCursor places the cursor on index, clamped to [0, count).
func (s *State) SetCursor(index, count int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if count == 0 {
		s.Cursor = -1
		return s.Cursor
	}
	s.Cursor = min(max(index, 0), count-1)
	return s.Cursor
}

// GetCursor returns the highlighted item.
func (s *State) GetCursor() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Cursor
}

// ToggleHelp flips the help overlay.
func (s *State) ToggleHelp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ShowHelp = !s.ShowHelp
}
