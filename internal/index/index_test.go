// Package index_test contains the unit tests for the index package.
package index

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueIndex_Counts(t *testing.T) {
	vi := New()

	// 1. Unknown value counts as zero
	require.Equal(t, 0, vi.Count(10))

	// 2. Increments accumulate per value
	vi.Increment(10)
	vi.Increment(10)
	vi.Increment(-1)
	require.Equal(t, 2, vi.Count(10))
	require.Equal(t, 1, vi.Count(-1))
	require.Equal(t, 2, vi.Len())

	// 3. Decrement to zero removes the entry
	vi.Decrement(10)
	require.Equal(t, 1, vi.Count(10))
	vi.Decrement(10)
	require.Equal(t, 0, vi.Count(10))
	require.Equal(t, 1, vi.Len())
}

func TestValueIndex_DecrementUntracked(t *testing.T) {
	vi := New()
	require.PanicsWithValue(t, "index: decrement of untracked value 7", func() {
		vi.Decrement(7)
	})

	vi.Increment(7)
	vi.Decrement(7)
	require.Panics(t, func() { vi.Decrement(7) })
}
