// Package rangetest holds a brute-force reference model and invariant checks
// for testing range allocators.
package rangetest

import (
	"slices"
	"testing"

	"github.com/garethgeorge/rangealloc/pkg/rangealloc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Model tracks allocation state one unit at a time. It is only suitable for
// small spans.
type Model[T rangealloc.Ordinal] struct {
	initial   rangealloc.Range[T]
	allocated []bool
}

func NewModel[T rangealloc.Ordinal](initial rangealloc.Range[T]) *Model[T] {
	return &Model[T]{
		initial:   initial,
		allocated: make([]bool, int(initial.Size())),
	}
}

func (m *Model[T]) index(v T) int {
	return int(v - m.initial.Start)
}

// MarkAllocated fails the test if any unit of r is already allocated.
func (m *Model[T]) MarkAllocated(t testing.TB, r rangealloc.Range[T]) {
	t.Helper()
	for i := m.index(r.Start); i < m.index(r.End); i++ {
		require.False(t, m.allocated[i], "unit %d of %v is already allocated", i, r)
		m.allocated[i] = true
	}
}

func (m *Model[T]) MarkFree(r rangealloc.Range[T]) {
	for i := m.index(r.Start); i < m.index(r.End); i++ {
		m.allocated[i] = false
	}
}

func (m *Model[T]) Reset() {
	clear(m.allocated)
}

// IsFree reports whether every unit of r is free in the model.
func (m *Model[T]) IsFree(r rangealloc.Range[T]) bool {
	for i := m.index(r.Start); i < m.index(r.End); i++ {
		if m.allocated[i] {
			return false
		}
	}
	return true
}

// LargestFreeRun returns the length of the longest stretch of free units.
func (m *Model[T]) LargestFreeRun() T {
	var run, largest int
	for _, allocated := range m.allocated {
		if allocated {
			run = 0
			continue
		}
		run++
		largest = max(largest, run)
	}
	return T(largest)
}

// FreeRanges derives the coalesced free list from the per-unit state.
func (m *Model[T]) FreeRanges() []rangealloc.Range[T] {
	var ranges []rangealloc.Range[T]
	inFreeBlock := false
	var currentFreeStart int
	for i, allocated := range m.allocated {
		if !allocated && !inFreeBlock {
			inFreeBlock = true
			currentFreeStart = i
		} else if allocated && inFreeBlock {
			inFreeBlock = false
			ranges = append(ranges, m.rangeAt(currentFreeStart, i))
		}
	}
	if inFreeBlock {
		ranges = append(ranges, m.rangeAt(currentFreeStart, len(m.allocated)))
	}
	return ranges
}

func (m *Model[T]) rangeAt(start, end int) rangealloc.Range[T] {
	return rangealloc.Range[T]{Start: m.initial.Start + T(start), End: m.initial.Start + T(end)}
}

// Check asserts that a agrees with the model and that its free list is well
// formed.
func (m *Model[T]) Check(t testing.TB, a rangealloc.Allocator[T]) {
	t.Helper()
	got := slices.Collect(a.FreeRanges())
	CheckFreeList(t, a.InitialRange(), got)
	require.Equal(t, m.FreeRanges(), got, "free list mismatch")
	assert.Equal(t, len(got), a.Len(), "Len mismatch")

	var free T
	for _, allocated := range m.allocated {
		if !allocated {
			free++
		}
	}
	assert.Equal(t, free, a.FreeSpace(), "FreeSpace mismatch")
}

// CheckFreeList asserts the structural invariants of a free list: every
// entry is non-empty and inside initial, and entries are sorted, disjoint
// and never adjacent.
func CheckFreeList[T rangealloc.Ordinal](t testing.TB, initial rangealloc.Range[T], free []rangealloc.Range[T]) {
	t.Helper()
	for i, r := range free {
		require.Less(t, r.Start, r.End, "entry %d %v is empty", i, r)
		require.True(t, initial.Contains(r), "entry %d %v is outside %v", i, r, initial)
		if i > 0 {
			prev := free[i-1]
			require.Less(t, prev.End, r.Start, "entries %v and %v overlap, touch or are unsorted", prev, r)
		}
	}
}

// CheckConservation asserts that free space plus outstanding allocations
// covers the initial range exactly.
func CheckConservation[T rangealloc.Ordinal](t testing.TB, a rangealloc.Allocator[T], outstanding []rangealloc.Range[T]) {
	t.Helper()
	total := a.FreeSpace()
	for _, r := range outstanding {
		total += r.Size()
	}
	assert.Equal(t, a.InitialRange().Size(), total, "free + allocated != initial size")
}
