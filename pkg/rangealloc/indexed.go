package rangealloc

import (
	"fmt"
	"iter"

	"github.com/google/btree"
)

type freeRangeBySize[T Ordinal] struct {
	size  T
	start T
}

// IndexedAllocator is a best-fit allocator that keeps its free list in two
// btrees, one ordered by start and one ordered by size then start. It picks
// the same ranges as RangeAllocator for any sequence of calls, with Allocate
// and Free running in logarithmic time. Use it for large or heavily
// fragmented spans. It is not thread-safe.
type IndexedAllocator[T Ordinal] struct {
	initial   Range[T]
	freeSpace T

	// freeList tracks free ranges, ordered by start.
	freeList *btree.BTreeG[Range[T]]
	// freeListBySize tracks free ranges, ordered by size, then start.
	freeListBySize *btree.BTreeG[freeRangeBySize[T]]
}

// NewIndexed returns an IndexedAllocator whose free list is the whole of r.
// It panics with a *ContractViolation if the size of r overflows T.
func NewIndexed[T Ordinal](r Range[T], opts ...IndexedOption) *IndexedAllocator[T] {
	checkSpan(r)
	o := defaultIndexedOptions()
	for _, opt := range opts {
		opt(o)
	}
	a := &IndexedAllocator[T]{
		initial:  r,
		freeList: btree.NewG(o.degree, func(a, b Range[T]) bool { return a.Less(b) }),
		freeListBySize: btree.NewG(o.degree, func(a, b freeRangeBySize[T]) bool {
			if a.size != b.size {
				return a.size < b.size
			}
			return a.start < b.start
		}),
	}
	a.Reset()
	return a
}

func (a *IndexedAllocator[T]) addFreeRange(r Range[T]) {
	if r.IsEmpty() {
		return
	}
	a.freeList.ReplaceOrInsert(r)
	a.freeListBySize.ReplaceOrInsert(freeRangeBySize[T]{size: r.Size(), start: r.Start})
}

func (a *IndexedAllocator[T]) removeFreeRange(r Range[T]) {
	a.freeList.Delete(r)
	a.freeListBySize.Delete(freeRangeBySize[T]{size: r.Size(), start: r.Start})
}

// precedingFreeRange returns the free range with the greatest start <= start.
func (a *IndexedAllocator[T]) precedingFreeRange(start T) (Range[T], bool) {
	var found Range[T]
	var ok bool
	a.freeList.DescendLessOrEqual(Range[T]{Start: start}, func(item Range[T]) bool {
		found, ok = item, true
		return false
	})
	return found, ok
}

func (a *IndexedAllocator[T]) InitialRange() Range[T] {
	return a.initial
}

// Allocate returns the low end of the smallest free range that can hold
// length units, preferring the lowest start among equally sized candidates.
// Returns false if no free range is large enough, or if length is not
// positive.
func (a *IndexedAllocator[T]) Allocate(length T) (Range[T], bool) {
	if length <= 0 {
		return Range[T]{}, false
	}

	var best freeRangeBySize[T]
	var found bool
	// Every free range starts at or after initial.Start, so this pivot sorts
	// before all entries of the requested size.
	pivot := freeRangeBySize[T]{size: length, start: a.initial.Start}
	a.freeListBySize.AscendGreaterOrEqual(pivot, func(item freeRangeBySize[T]) bool {
		best, found = item, true
		return false
	})
	if !found {
		return Range[T]{}, false
	}

	selected := Range[T]{Start: best.start, End: best.start + best.size}
	a.removeFreeRange(selected)
	a.addFreeRange(Range[T]{Start: selected.Start + length, End: selected.End})
	a.freeSpace -= length
	return Range[T]{Start: selected.Start, End: selected.Start + length}, true
}

// Free returns r to the free list, merging it with adjacent free ranges.
// Preconditions and failure modes match RangeAllocator.Free.
func (a *IndexedAllocator[T]) Free(r Range[T]) error {
	checkFreeBounds(a.initial, r)

	before, hasBefore := a.precedingFreeRange(r.Start)
	if hasBefore && before.End > r.Start {
		return fmt.Errorf("free %v: overlaps free range %v: %w", r, before, ErrNotPlaceable)
	}
	var after Range[T]
	var hasAfter bool
	a.freeList.AscendGreaterOrEqual(Range[T]{Start: r.Start}, func(item Range[T]) bool {
		after, hasAfter = item, true
		return false
	})
	if hasAfter && after.Start < r.End {
		return fmt.Errorf("free %v: overlaps free range %v: %w", r, after, ErrNotPlaceable)
	}

	merged := r
	if hasBefore && before.End == r.Start {
		a.removeFreeRange(before)
		merged = merged.Merge(before)
	}
	if hasAfter && after.Start == r.End {
		a.removeFreeRange(after)
		merged = merged.Merge(after)
	}
	a.addFreeRange(merged)
	a.freeSpace += r.Size()
	return nil
}

// Reset discards all outstanding allocations.
func (a *IndexedAllocator[T]) Reset() {
	a.freeList.Clear(true)
	a.freeListBySize.Clear(true)
	a.addFreeRange(a.initial)
	a.freeSpace = a.initial.Size()
}

// FreeRanges yields the free list in ascending order.
func (a *IndexedAllocator[T]) FreeRanges() iter.Seq[Range[T]] {
	return func(yield func(Range[T]) bool) {
		a.freeList.Ascend(func(item Range[T]) bool {
			return yield(item)
		})
	}
}

// Allocations yields the allocated stretches of the initial range in
// ascending order. Touching allocations are reported as a single range.
func (a *IndexedAllocator[T]) Allocations() iter.Seq[Range[T]] {
	return allocationsBetween(a.initial, a.FreeRanges())
}

func (a *IndexedAllocator[T]) FreeSpace() T {
	return a.freeSpace
}

func (a *IndexedAllocator[T]) Len() int {
	return a.freeList.Len()
}

// IsRangeFree reports whether all of r is free.
func (a *IndexedAllocator[T]) IsRangeFree(r Range[T]) bool {
	if r.IsEmpty() {
		return true
	}
	containing, ok := a.precedingFreeRange(r.Start)
	return ok && containing.Contains(r)
}

func (a *IndexedAllocator[T]) String() string {
	return formatFreeList(a.FreeRanges())
}
