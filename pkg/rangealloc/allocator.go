package rangealloc

import (
	"iter"
	"strings"
)

// Allocator hands out non-overlapping sub-ranges of a fixed initial range and
// takes them back. Implementations are not thread-safe.
type Allocator[T Ordinal] interface {
	// InitialRange returns the span under management.
	InitialRange() Range[T]
	// Allocate carves length units out of the best fitting free range. It
	// returns false when no free range is large enough.
	Allocate(length T) (Range[T], bool)
	// Free returns r to the free list, coalescing it with its neighbours.
	Free(r Range[T]) error
	// Reset frees everything.
	Reset()

	FreeRanges() iter.Seq[Range[T]]
	Allocations() iter.Seq[Range[T]]
	FreeSpace() T
	Len() int
	IsRangeFree(r Range[T]) bool
}

var (
	_ Allocator[uint64] = (*RangeAllocator[uint64])(nil)
	_ Allocator[uint64] = (*IndexedAllocator[uint64])(nil)
)

// allocationsBetween yields the gaps inside initial that are not covered by
// the ascending, disjoint free ranges produced by free.
func allocationsBetween[T Ordinal](initial Range[T], free iter.Seq[Range[T]]) iter.Seq[Range[T]] {
	return func(yield func(Range[T]) bool) {
		if initial.IsEmpty() {
			return
		}
		cursor := initial.Start
		for r := range free {
			if cursor < r.Start {
				if !yield(Range[T]{Start: cursor, End: r.Start}) {
					return
				}
			}
			cursor = r.End
		}
		if cursor < initial.End {
			yield(Range[T]{Start: cursor, End: initial.End})
		}
	}
}

func formatFreeList[T Ordinal](free iter.Seq[Range[T]]) string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for r := range free {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(r.String())
	}
	sb.WriteByte('}')
	return sb.String()
}
