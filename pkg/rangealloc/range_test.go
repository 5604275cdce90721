package rangealloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRange(t *testing.T) {
	t.Run("Size", func(t *testing.T) {
		testCases := []struct {
			name     string
			r        Range[uint64]
			expected uint64
		}{
			{"positive size", Range[uint64]{Start: 10, End: 20}, 10},
			{"zero size", Range[uint64]{Start: 5, End: 5}, 0},
			{"inverted", Range[uint64]{Start: 9, End: 5}, 0},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				assert.Equal(t, tc.expected, tc.r.Size())
				assert.Equal(t, tc.expected == 0, tc.r.IsEmpty())
			})
		}
	})

	t.Run("Less", func(t *testing.T) {
		r1 := NewRange[int](10, 20)
		r2 := NewRange[int](20, 30)
		r3 := NewRange[int](-5, 15)

		assert.True(t, r1.Less(r2))
		assert.False(t, r2.Less(r1))
		assert.False(t, r1.Less(r3))
		assert.True(t, r3.Less(r1))
	})

	t.Run("Overlaps", func(t *testing.T) {
		testCases := []struct {
			name     string
			r1, r2   Range[int]
			expected bool
		}{
			{"r2 starts during r1", NewRange(10, 20), NewRange(15, 25), true},
			{"r1 and r2 are adjacent", NewRange(10, 20), NewRange(20, 30), false},
			{"r2 contains r1", NewRange(10, 20), NewRange(5, 25), true},
			{"no overlap", NewRange(10, 20), NewRange(25, 30), false},
			{"identical ranges", NewRange(10, 20), NewRange(10, 20), true},
			{"negative offsets", NewRange(-10, -2), NewRange(-3, 4), true},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				assert.Equal(t, tc.expected, tc.r1.Overlaps(tc.r2))
				assert.Equal(t, tc.expected, tc.r2.Overlaps(tc.r1))
			})
		}
	})

	t.Run("Adjacent", func(t *testing.T) {
		testCases := []struct {
			name     string
			r1, r2   Range[int]
			expected bool
		}{
			{"r2 starts at r1 end", NewRange(10, 20), NewRange(20, 30), true},
			{"gap between ranges", NewRange(10, 20), NewRange(21, 30), false},
			{"ranges overlap", NewRange(10, 20), NewRange(19, 29), false},
			{"identical ranges", NewRange(10, 20), NewRange(10, 20), false},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				assert.Equal(t, tc.expected, tc.r1.Adjacent(tc.r2))
				assert.Equal(t, tc.expected, tc.r2.Adjacent(tc.r1))
			})
		}
	})

	t.Run("Contains", func(t *testing.T) {
		outer := NewRange(0, 10)
		assert.True(t, outer.Contains(NewRange(0, 10)))
		assert.True(t, outer.Contains(NewRange(3, 4)))
		assert.False(t, outer.Contains(NewRange(5, 11)))
		assert.False(t, NewRange(3, 4).Contains(outer))
	})

	t.Run("Merge", func(t *testing.T) {
		testCases := []struct {
			name        string
			r1, r2      Range[int]
			expected    Range[int]
			shouldPanic bool
		}{
			{"overlapping", NewRange(10, 20), NewRange(15, 25), NewRange(10, 25), false},
			{"adjacent", NewRange(10, 20), NewRange(20, 30), NewRange(10, 30), false},
			{"r1 contains r2", NewRange(10, 30), NewRange(15, 25), NewRange(10, 30), false},
			{"non-overlapping, non-adjacent", NewRange(10, 20), NewRange(21, 30), Range[int]{}, true},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				if tc.shouldPanic {
					assert.Panics(t, func() { tc.r1.Merge(tc.r2) })
					assert.Panics(t, func() { tc.r2.Merge(tc.r1) })
				} else {
					assert.Equal(t, tc.expected, tc.r1.Merge(tc.r2))
					assert.Equal(t, tc.expected, tc.r2.Merge(tc.r1))
				}
			})
		}
	})

	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "[10, 20)", NewRange[uint8](10, 20).String())
		assert.Equal(t, "[-4, -1)", NewRange[int16](-4, -1).String())
	})
}
