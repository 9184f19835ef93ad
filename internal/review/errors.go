package review

import (
	"errors"
	"fmt"
)

// ErrEmptyList is returned when the current item is requested from a
// session or cursor with no items. A session must not be started over
// an empty list.
var ErrEmptyList = errors.New("review list is empty")

// OutOfRangeError is returned by JumpTo for an index outside the list.
// Callers may recover by clamping or ignoring the jump.
type OutOfRangeError struct {
	Index  int
	Length int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range [0,%d)", e.Index, e.Length)
}
