package list

import (
	"errors"
	"fmt"
)

// ErrFetch is wrapped by every error reported by a failed page fetch.
var ErrFetch = errors.New("fetch failed")

// LayoutError describes a violation of the window's contract, such as reading
// a slot before it is bound or binding items out of order. It indicates a
// programming error and is raised with panic.
type LayoutError struct {
	Op     string
	Reason string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("list: %s: %s", e.Op, e.Reason)
}

func inconsistent(op, format string, args ...interface{}) {
	panic(&LayoutError{Op: op, Reason: fmt.Sprintf(format, args...)})
}
