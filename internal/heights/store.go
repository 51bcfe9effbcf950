package heights

import (
	"fmt"
	"io"
	"log/slog"
)

// Store owns the per-item height table of a list and the cumulative index
// over it. Items start unmeasured and use the configured estimate; each item
// accepts exactly one positive measurement.
//
// A Store is not safe for concurrent use. The host is expected to drive it
// from a single event loop.
type Store struct {
	count    int
	estimate int

	// measured holds the heights of items that have been measured. Most
	// items of a large list never are.
	measured map[int]int
	tree     *fenwick
	total    int

	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for dropped measurements and invariant
// violations.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a store for count items whose unmeasured height is estimate.
func New(count, estimate int, opts ...Option) (*Store, error) {
	if count < 0 {
		return nil, fmt.Errorf("item count must not be negative, got %d", count)
	}
	if estimate <= 0 {
		return nil, fmt.Errorf("estimated item height must be positive, got %d", estimate)
	}

	s := &Store{
		count:    count,
		estimate: estimate,
		measured: make(map[int]int),
		tree:     newFenwick(count, estimate),
		total:    count * estimate,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(slog.String("component", "heights"))
	return s, nil
}

// Count returns the number of items.
func (s *Store) Count() int {
	return s.count
}

// Estimate returns the height used for unmeasured items.
func (s *Store) Estimate() int {
	return s.estimate
}

// MeasuredCount returns how many items have been measured.
func (s *Store) MeasuredCount() int {
	return len(s.measured)
}

// Height returns the measured height of an item, or the estimate if the item
// has not been measured yet.
func (s *Store) Height(index int) (int, error) {
	if index < 0 || index >= s.count {
		return 0, &BoundsError{Index: index, Count: s.count}
	}
	return s.height(index), nil
}

func (s *Store) height(index int) int {
	if h, ok := s.measured[index]; ok {
		return h
	}
	return s.estimate
}

// IsMeasured reports whether an item already carries a measurement.
// Out-of-range indices report false.
func (s *Store) IsMeasured(index int) bool {
	_, ok := s.measured[index]
	return ok
}

// Record applies the first valid measurement of an item. It returns true when
// the measurement changed the table. Repeated measurements of an item are
// ignored, so the result does not depend on the order reports arrive in.
//
// A non-positive height yields ErrInvalidMeasurement and leaves the item
// unmeasured.
func (s *Store) Record(index, height int) (bool, error) {
	if index < 0 || index >= s.count {
		return false, &BoundsError{Index: index, Count: s.count}
	}
	if height <= 0 {
		return false, fmt.Errorf("%w: item %d reported height %d", ErrInvalidMeasurement, index, height)
	}
	if _, ok := s.measured[index]; ok {
		return false, nil
	}

	s.measured[index] = height
	if delta := height - s.estimate; delta != 0 {
		s.tree.add(index, delta)
		s.total += delta
	}
	return true, nil
}

// PrefixOffset returns the summed height of all items before index. Valid
// indices are 0 through Count() inclusive; PrefixOffset(Count()) equals
// TotalHeight().
func (s *Store) PrefixOffset(index int) (int, error) {
	if index < 0 || index > s.count {
		return 0, &BoundsError{Index: index, Count: s.count}
	}
	return s.tree.prefix(index), nil
}

// TotalHeight returns the summed height of every item.
func (s *Store) TotalHeight() int {
	return s.total
}

// Locate returns the item covering offset: the i with
// PrefixOffset(i) <= offset < PrefixOffset(i+1). Negative offsets resolve to
// the first item and offsets at or past TotalHeight() to the last. Locate
// returns -1 for an empty list.
func (s *Store) Locate(offset int) int {
	if s.count == 0 {
		return -1
	}
	if offset <= 0 {
		return 0
	}
	if offset >= s.total {
		return s.count - 1
	}

	index := s.tree.search(offset)
	if index >= s.count {
		_ = s.violation("offset %d located past the last item (%d >= %d)", offset, index, s.count)
		return s.count - 1
	}
	return index
}

// Probes returns the number of tree slots visited by offset queries so far.
func (s *Store) Probes() uint64 {
	return s.tree.probes
}

// Verify walks the whole table and checks that the cumulative index agrees
// with the per-item heights. It is O(N log N) and meant for tests and debug
// tooling, never for the scroll path.
func (s *Store) Verify() error {
	running := 0
	for i := 0; i < s.count; i++ {
		if got := s.tree.prefix(i); got != running {
			return s.violation("prefix offset of item %d is %d, want %d", i, got, running)
		}
		running += s.height(i)
	}
	if got := s.tree.prefix(s.count); got != running {
		return s.violation("prefix offset of the list end is %d, want %d", got, running)
	}
	if s.total != running {
		return s.violation("total height is %d, want %d", s.total, running)
	}
	return nil
}

func (s *Store) violation(format string, args ...any) error {
	err := fmt.Errorf("%w: %s", ErrInvariantViolation, fmt.Sprintf(format, args...))
	if strictInvariants {
		panic(err)
	}
	s.logger.Error("cumulative index inconsistent", slog.String("error", err.Error()))
	return err
}
