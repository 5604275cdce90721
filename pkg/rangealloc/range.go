package rangealloc

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Ordinal is the set of types a Range can be defined over. Any integer type,
// or a defined type with an integer underlying type, qualifies. A span's size
// must itself fit in T: with signed types an allocator over [-100, 100) needs
// at least int16, and constructing one over int8 panics.
type Ordinal interface {
	constraints.Integer
}

// Range is the half-open interval [Start, End).
type Range[T Ordinal] struct {
	Start T // inclusive
	End   T // exclusive
}

// NewRange is shorthand for Range[T]{Start: start, End: end}.
func NewRange[T Ordinal](start, end T) Range[T] {
	return Range[T]{Start: start, End: end}
}

// Size returns End - Start, or zero for an empty or inverted range.
func (r Range[T]) Size() T {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// IsEmpty reports whether r holds no values.
func (r Range[T]) IsEmpty() bool {
	return r.End <= r.Start
}

// Less orders ranges by Start. It is the ordering of the free list btree.
func (r Range[T]) Less(other Range[T]) bool {
	return r.Start < other.Start
}

// Overlaps reports whether r and other share at least one value.
func (r Range[T]) Overlaps(other Range[T]) bool {
	return r.Start < other.End && other.Start < r.End
}

// Adjacent reports whether one range ends exactly where the other starts.
func (r Range[T]) Adjacent(other Range[T]) bool {
	return r.End == other.Start || other.End == r.Start
}

// Contains reports whether other lies entirely within r.
func (r Range[T]) Contains(other Range[T]) bool {
	return r.Start <= other.Start && other.End <= r.End
}

// Merge returns the union of two overlapping or adjacent ranges. It panics
// if there is a gap between them.
func (r Range[T]) Merge(other Range[T]) Range[T] {
	if !r.Overlaps(other) && !r.Adjacent(other) {
		panic(fmt.Sprintf("cannot merge non-overlapping, non-adjacent ranges %v and %v", r, other))
	}
	return Range[T]{Start: min(r.Start, other.Start), End: max(r.End, other.End)}
}

func (r Range[T]) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}
