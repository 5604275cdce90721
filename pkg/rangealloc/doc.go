// Package rangealloc hands out sub-ranges of a fixed span of ordinal values
// (byte offsets, block numbers, IDs) and takes them back.
//
// Both allocators in this package use best fit: a request is served from the
// low end of the smallest free range that can hold it, with ties going to the
// lowest start. Freed ranges are merged with free neighbours immediately, so
// the free list never holds two touching ranges.
//
//	a := rangealloc.New(rangealloc.NewRange[uint64](0, 1<<20))
//	r, ok := a.Allocate(4096)
//	if !ok {
//		// out of space, or too fragmented
//	}
//	if err := a.Free(r); err != nil {
//		// errors.Is(err, rangealloc.ErrNotPlaceable): r was already free
//	}
//
// RangeAllocator keeps the free list in a slice and is the better choice
// while the free list stays short. IndexedAllocator keeps it in btrees and
// scales to large, fragmented spans; it returns exactly the same ranges.
//
// Neither allocator is safe for concurrent use.
package rangealloc
