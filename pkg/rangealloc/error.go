package rangealloc

import "fmt"

var (
	// ErrNotPlaceable is returned by Free when the range cannot be merged into
	// the free list because part of it is already free. This usually means a
	// double free, or a range that was never handed out by the allocator.
	ErrNotPlaceable = &AllocError{"range cannot be placed into the free list (double free?)"}
)

type AllocError struct {
	Msg string
}

func (e *AllocError) Error() string {
	return e.Msg
}

func (e *AllocError) Is(target error) bool {
	if targetErr, ok := target.(*AllocError); ok {
		return e.Msg == targetErr.Msg
	}
	return false
}

// ContractViolation is the panic value raised when Free is called with a
// malformed range: empty, inverted, or outside the allocator's initial range.
type ContractViolation struct {
	Op      string
	Range   string
	Initial string
	Reason  string
}

func (c *ContractViolation) Error() string {
	return fmt.Sprintf("rangealloc: %s %s: %s (initial range %s)", c.Op, c.Range, c.Reason, c.Initial)
}

// checkSpan panics with a *ContractViolation if the size of initial does not
// fit in T.
func checkSpan[T Ordinal](initial Range[T]) {
	if initial.Start < initial.End && initial.End-initial.Start <= 0 {
		panic(&ContractViolation{
			Op:      "new",
			Range:   initial.String(),
			Initial: initial.String(),
			Reason:  "span size overflows the ordinal type",
		})
	}
}

// checkFreeBounds panics with a *ContractViolation if r is not a non-empty
// sub-range of initial.
func checkFreeBounds[T Ordinal](initial, r Range[T]) {
	var reason string
	switch {
	case r.Start >= r.End:
		reason = "range is empty or inverted"
	case r.Start < initial.Start || r.End > initial.End:
		reason = "range is outside the allocator's bounds"
	default:
		return
	}
	panic(&ContractViolation{
		Op:      "free",
		Range:   r.String(),
		Initial: initial.String(),
		Reason:  reason,
	})
}
