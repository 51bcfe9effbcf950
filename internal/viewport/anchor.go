package viewport

// Anchor is a point inside an item: Residual pixels below the top of item
// Index. It also remembers the absolute offset it stood at when captured so
// a later Restore can measure how far the item moved.
type Anchor struct {
	Index    int
	Residual int

	absolute int
	valid    bool
}

// Valid reports whether the anchor points into a non-empty list.
func (a Anchor) Valid() bool {
	return a.valid
}

// AnchorTracker keeps the content under the viewport top still while item
// heights above it are corrected.
//
// Capture before applying a batch of height changes and Restore once after
// the whole batch; restoring per change would compound partial deltas.
type AnchorTracker struct {
	heights Heights
}

// NewAnchorTracker creates a tracker over h.
func NewAnchorTracker(h Heights) *AnchorTracker {
	return &AnchorTracker{heights: h}
}

// Capture records the item under scrollTop and how far into it the viewport
// starts. Negative scroll positions are treated as zero.
func (t *AnchorTracker) Capture(scrollTop int) Anchor {
	if scrollTop < 0 {
		scrollTop = 0
	}
	index := t.heights.Locate(scrollTop)
	if index < 0 {
		return Anchor{}
	}
	top, err := t.heights.PrefixOffset(index)
	if err != nil {
		return Anchor{}
	}

	return Anchor{
		Index:    index,
		Residual: scrollTop - top,
		absolute: scrollTop,
		valid:    true,
	}
}

// Restore returns the scroll delta that puts the anchor back under the
// viewport top after heights changed. The caller adds it to its scroll
// position. An invalid anchor, or one whose item no longer exists, yields 0.
func (t *AnchorTracker) Restore(a Anchor) int {
	if !a.valid {
		return 0
	}
	top, err := t.heights.PrefixOffset(a.Index)
	if err != nil {
		return 0
	}
	return top + a.Residual - a.absolute
}
