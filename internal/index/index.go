// Package index keeps track of how many keys currently hold each value.
package index

import "fmt"

// ValueIndex maps a value to the number of live keys holding it.
// Values with no keys are removed rather than stored as zero.
type ValueIndex struct {
	counts map[int]int
}

// New returns an empty ValueIndex.
func New() *ValueIndex {
	return &ValueIndex{
		counts: make(map[int]int),
	}
}

// Increment records one more key holding value.
func (vi *ValueIndex) Increment(value int) {
	vi.counts[value]++
}

// Decrement records one less key holding value.
// It panics if no key holds value, since that means the caller
// mutated state without the matching index update.
func (vi *ValueIndex) Decrement(value int) {
	n, ok := vi.counts[value]
	if !ok {
		panic(fmt.Sprintf("index: decrement of untracked value %d", value))
	}
	if n == 1 {
		delete(vi.counts, value)
		return
	}
	vi.counts[value] = n - 1
}

// Count returns the number of keys holding value, or 0.
func (vi *ValueIndex) Count(value int) int {
	return vi.counts[value]
}

// Len returns the number of distinct values tracked.
func (vi *ValueIndex) Len() int {
	return len(vi.counts)
}
