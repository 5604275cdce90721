package rangealloc

import (
	"fmt"
	"iter"
	"slices"
)

// RangeAllocator is a best-fit allocator over a free list kept in a slice
// sorted by start. Allocate and Free are linear in the number of free ranges,
// which is fine for the small free lists typical of sub-allocators.
// It is not thread-safe.
type RangeAllocator[T Ordinal] struct {
	initial Range[T]

	// freeRanges is sorted by Start. Entries are non-empty, disjoint and
	// never adjacent to one another.
	freeRanges []Range[T]
}

// New returns an allocator whose free list is the whole of r. An empty r is
// allowed and produces an allocator that never satisfies an allocation.
// It panics with a *ContractViolation if the size of r overflows T.
func New[T Ordinal](r Range[T]) *RangeAllocator[T] {
	checkSpan(r)
	a := &RangeAllocator[T]{initial: r}
	a.Reset()
	return a
}

func (a *RangeAllocator[T]) InitialRange() Range[T] {
	return a.initial
}

// Allocate returns the low end of the smallest free range that can hold
// length units. Ties go to the range with the lowest start, and an exact fit
// ends the search. Returns false if no free range is large enough, or if
// length is not positive.
func (a *RangeAllocator[T]) Allocate(length T) (Range[T], bool) {
	if length <= 0 {
		return Range[T]{}, false
	}

	best := -1
	for i, r := range a.freeRanges {
		size := r.Size()
		if size < length {
			continue
		}
		if size == length {
			best = i
			break
		}
		if best == -1 || size < a.freeRanges[best].Size() {
			best = i
		}
	}
	if best == -1 {
		return Range[T]{}, false
	}

	selected := a.freeRanges[best]
	if selected.Size() == length {
		a.freeRanges = slices.Delete(a.freeRanges, best, best+1)
	} else {
		a.freeRanges[best].Start += length
	}
	return Range[T]{Start: selected.Start, End: selected.Start + length}, true
}

// Free returns r to the free list and merges it with any free neighbours.
//
// r must be non-empty and lie within the initial range; anything else is a
// programming error and panics with a *ContractViolation. If any part of r is
// already free, Free returns an error wrapping ErrNotPlaceable and leaves the
// free list untouched.
func (a *RangeAllocator[T]) Free(r Range[T]) error {
	checkFreeBounds(a.initial, r)

	n := len(a.freeRanges)
	if n == 0 {
		a.freeRanges = append(a.freeRanges, r)
		return nil
	}
	if r.End < a.freeRanges[0].Start {
		a.freeRanges = slices.Insert(a.freeRanges, 0, r)
		return nil
	}
	if a.freeRanges[n-1].End < r.Start {
		a.freeRanges = append(a.freeRanges, r)
		return nil
	}

	// Every placement below assumes r is disjoint from the free list. Without
	// this check a range that touches one neighbour and overlaps another would
	// be merged into an overlapping list.
	for _, fr := range a.freeRanges {
		if fr.Overlaps(r) {
			return fmt.Errorf("free %v: overlaps free range %v: %w", r, fr, ErrNotPlaceable)
		}
		if fr.Start >= r.End {
			break
		}
	}

	for i := 0; i < n; i++ {
		cur := a.freeRanges[i]

		// r sits immediately left of cur.
		if r.End == cur.Start {
			a.freeRanges[i].Start = r.Start
			if i > 0 && a.freeRanges[i-1].End == a.freeRanges[i].Start {
				a.freeRanges[i-1].End = a.freeRanges[i].End
				a.freeRanges = slices.Delete(a.freeRanges, i, i+1)
			}
			return nil
		}

		// r sits immediately right of cur.
		if r.Start == cur.End {
			a.freeRanges[i].End = r.End
			if i+1 < n && a.freeRanges[i+1].Start == a.freeRanges[i].End {
				a.freeRanges[i].End = a.freeRanges[i+1].End
				a.freeRanges = slices.Delete(a.freeRanges, i+1, i+2)
			}
			return nil
		}

		// r falls in the gap between cur and the next free range.
		if i+1 < n && cur.End < r.Start && r.End < a.freeRanges[i+1].Start {
			a.freeRanges = slices.Insert(a.freeRanges, i+1, r)
			return nil
		}
	}
	// Unreachable while the free list is consistent: the overlap scan above
	// rejects every range that no placement accepts.
	return fmt.Errorf("free %v: %w", r, ErrNotPlaceable)
}

// Reset discards all outstanding allocations.
func (a *RangeAllocator[T]) Reset() {
	a.freeRanges = a.freeRanges[:0]
	if !a.initial.IsEmpty() {
		a.freeRanges = append(a.freeRanges, a.initial)
	}
}

// FreeRanges yields the free list in ascending order.
func (a *RangeAllocator[T]) FreeRanges() iter.Seq[Range[T]] {
	return func(yield func(Range[T]) bool) {
		for _, r := range a.freeRanges {
			if !yield(r) {
				return
			}
		}
	}
}

// Allocations yields the allocated stretches of the initial range in
// ascending order. Touching allocations are reported as a single range.
func (a *RangeAllocator[T]) Allocations() iter.Seq[Range[T]] {
	return allocationsBetween(a.initial, a.FreeRanges())
}

// FreeSpace returns the total size of the free list.
func (a *RangeAllocator[T]) FreeSpace() T {
	var total T
	for _, r := range a.freeRanges {
		total += r.Size()
	}
	return total
}

// Len returns the number of entries in the free list.
func (a *RangeAllocator[T]) Len() int {
	return len(a.freeRanges)
}

// IsRangeFree reports whether all of r is free.
func (a *RangeAllocator[T]) IsRangeFree(r Range[T]) bool {
	if r.IsEmpty() {
		return true
	}
	i, found := slices.BinarySearchFunc(a.freeRanges, r.Start, func(fr Range[T], start T) int {
		switch {
		case fr.End <= start:
			return -1
		case fr.Start > start:
			return 1
		}
		return 0
	})
	return found && a.freeRanges[i].Contains(r)
}

func (a *RangeAllocator[T]) String() string {
	return formatFreeList(a.FreeRanges())
}
