// Package transaction_test contains the unit tests for the transaction package.
package transaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog(t *testing.T) {
	l := NewLog()

	// 1. A new log has no open transaction
	require.True(t, l.Empty())
	_, ok := l.Top()
	require.False(t, ok)
	_, ok = l.Pop()
	require.False(t, ok)

	// 2. Push nests frames with increasing depth and unique IDs
	f1 := l.Push()
	f2 := l.Push()
	require.Equal(t, 2, l.Depth())
	assert.Equal(t, 1, f1.Depth)
	assert.Equal(t, 2, f2.Depth)
	assert.NotEmpty(t, f1.ID)
	assert.NotEqual(t, f1.ID, f2.ID)

	top, ok := l.Top()
	require.True(t, ok)
	require.Same(t, f2, top)

	// 3. Pop removes only the innermost frame
	popped, ok := l.Pop()
	require.True(t, ok)
	require.Same(t, f2, popped)
	top, _ = l.Top()
	require.Same(t, f1, top)

	// 4. Clear drops everything
	l.Push()
	require.Equal(t, 2, l.Clear())
	require.True(t, l.Empty())
	require.Equal(t, 0, l.Clear())
}

func TestFrame_RecordFirstTouchOnly(t *testing.T) {
	f := NewLog().Push()

	require.True(t, f.Record("a", Prior{Existed: false}))
	require.True(t, f.Record("b", Prior{Value: 5, Existed: true}))

	// Later mutations of the same key must not overwrite the first record
	require.False(t, f.Record("a", Prior{Value: 20, Existed: true}))
	require.False(t, f.Record("b", Prior{Value: 30, Existed: true}))

	require.Equal(t, 2, f.Len())

	require.Equal(t, []Entry{
		{Key: "a", Prior: Prior{Existed: false}},
		{Key: "b", Prior: Prior{Value: 5, Existed: true}},
	}, f.Entries())
}
