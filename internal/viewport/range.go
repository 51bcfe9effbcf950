package viewport

// Heights is the read side of a height store that viewport calculations
// need. *heights.Store satisfies it.
type Heights interface {
	Count() int
	Locate(offset int) int
	PrefixOffset(index int) (int, error)
}

// VisibleRange is an inclusive range of item indices to materialize,
// already padded by overscan and clamped to the list.
type VisibleRange struct {
	Start int
	End   int
}

// EmptyRange is returned for lists without items.
var EmptyRange = VisibleRange{Start: 0, End: -1}

// Empty reports whether the range holds no items.
func (r VisibleRange) Empty() bool {
	return r.End < r.Start
}

// Len returns the number of items in the range.
func (r VisibleRange) Len() int {
	if r.Empty() {
		return 0
	}
	return r.End - r.Start + 1
}

// Contains reports whether index falls inside the range.
func (r VisibleRange) Contains(index int) bool {
	return index >= r.Start && index <= r.End
}

// Resolver turns a scroll position into the range of items to render.
type Resolver struct {
	heights  Heights
	overscan int
}

// NewResolver creates a resolver that pads every range by overscan items on
// each side. A negative overscan is treated as zero.
func NewResolver(h Heights, overscan int) *Resolver {
	if overscan < 0 {
		overscan = 0
	}
	return &Resolver{
		heights:  h,
		overscan: overscan,
	}
}

// Overscan returns the padding applied on each side of a range.
func (r *Resolver) Overscan() int {
	return r.overscan
}

// Resolve returns the items covering [scrollTop, scrollTop+viewportHeight)
// plus overscan. The end of the window is the item holding its last pixel,
// so a viewport ending exactly on an item boundary does not pull in the next
// item. A non-positive viewport height resolves to the item at scrollTop.
// Scroll positions outside the list clamp to its first or last item.
func (r *Resolver) Resolve(scrollTop, viewportHeight int) VisibleRange {
	count := r.heights.Count()
	if count == 0 {
		return EmptyRange
	}

	start := r.heights.Locate(scrollTop)
	end := start
	if viewportHeight > 0 {
		end = r.heights.Locate(scrollTop + viewportHeight - 1)
	}

	return VisibleRange{
		Start: max(0, start-r.overscan),
		End:   min(count-1, end+r.overscan),
	}
}
