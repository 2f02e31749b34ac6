package hrtree

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for nil inputs, bad configuration and
	// frame or dimension mismatches. No state is changed when it is returned.
	ErrInvalidArgument = errors.New("hrtree: invalid argument")

	// ErrIllegalState indicates an internal sequencing defect, such as
	// choosing a cell in a leaf that is already full.
	ErrIllegalState = errors.New("hrtree: illegal state")
)

// FrameMismatchError indicates an envelope whose frame or dimension differs
// from the tree's. It matches ErrInvalidArgument under errors.Is.
type FrameMismatchError struct {
	Expected Frame
	Actual   Frame
}

func (e *FrameMismatchError) Error() string {
	return fmt.Sprintf("hrtree: frame mismatch: expected %v (%dD), got %v (%dD)",
		e.Expected, dimensionOf(e.Expected), e.Actual, dimensionOf(e.Actual))
}

func (e *FrameMismatchError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func dimensionOf(f Frame) int {
	if f == nil {
		return 0
	}
	return f.Dimension()
}

func illegalState(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrIllegalState, fmt.Sprintf(format, args...))
}
