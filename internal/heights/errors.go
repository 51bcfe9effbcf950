package heights

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is wrapped by every BoundsError.
	ErrOutOfBounds = errors.New("index out of bounds")
	// ErrInvalidMeasurement reports a measured height that is not positive.
	ErrInvalidMeasurement = errors.New("invalid measurement")
	// ErrInvariantViolation reports an inconsistent cumulative index. It always
	// indicates a bug in this package, never bad input.
	ErrInvariantViolation = errors.New("height index invariant violated")
)

// BoundsError is returned when an index query falls outside the list.
type BoundsError struct {
	Index int
	Count int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("index %d out of range for %d items", e.Index, e.Count)
}

func (e *BoundsError) Unwrap() error {
	return ErrOutOfBounds
}
