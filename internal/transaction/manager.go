// Package transaction manages the stack of open transaction frames.
package transaction

import "github.com/google/uuid"

// Prior is the state of a key before the first mutation within a frame.
// Existed is false when the key was unset, in which case Value is meaningless.
type Prior struct {
	Value   int
	Existed bool
}

// Entry is one journaled key together with its prior state.
type Entry struct {
	Key   string
	Prior Prior
}

// Frame is the rollback journal of one nesting level.
type Frame struct {
	ID    string
	Depth int

	history map[string]Prior
	order   []string
}

func newFrame(depth int) *Frame {
	return &Frame{
		ID:      uuid.NewString(),
		Depth:   depth,
		history: make(map[string]Prior),
	}
}

// Record journals the prior state of key unless the frame already holds it.
// It reports whether a new entry was recorded.
func (f *Frame) Record(key string, prior Prior) bool {
	if _, ok := f.history[key]; ok {
		return false
	}
	f.history[key] = prior
	f.order = append(f.order, key)
	return true
}

// Entries returns the journal in the order keys were first touched.
func (f *Frame) Entries() []Entry {
	entries := make([]Entry, 0, len(f.order))
	for _, key := range f.order {
		entries = append(entries, Entry{Key: key, Prior: f.history[key]})
	}
	return entries
}

// Len returns the number of keys journaled in this frame.
func (f *Frame) Len() int {
	return len(f.order)
}

// Log is a LIFO stack of frames. An empty log means no open transaction.
// Log is not safe for concurrent use; the owning store serializes access.
type Log struct {
	frames []*Frame
}

// NewLog creates an empty transaction log.
func NewLog() *Log {
	return &Log{}
}

// Push opens a new nesting level and returns its frame.
func (l *Log) Push() *Frame {
	f := newFrame(len(l.frames) + 1)
	l.frames = append(l.frames, f)
	return f
}

// Top returns the innermost open frame.
func (l *Log) Top() (*Frame, bool) {
	if len(l.frames) == 0 {
		return nil, false
	}
	return l.frames[len(l.frames)-1], true
}

// Pop removes and returns the innermost open frame.
func (l *Log) Pop() (*Frame, bool) {
	f, ok := l.Top()
	if !ok {
		return nil, false
	}
	l.frames[len(l.frames)-1] = nil
	l.frames = l.frames[:len(l.frames)-1]
	return f, true
}

// Clear discards every frame and returns how many were open.
func (l *Log) Clear() int {
	n := len(l.frames)
	l.frames = nil
	return n
}

// Depth returns the number of open frames.
func (l *Log) Depth() int {
	return len(l.frames)
}

// Empty reports whether no transaction is open.
func (l *Log) Empty() bool {
	return len(l.frames) == 0
}
