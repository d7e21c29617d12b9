// Package store contains the core logic for the in-memory key-value store.
// Every mutation updates the value index and, inside a transaction,
// the rollback journal of the innermost frame.
package store

import (
	"sync"

	"github.com/ASHISH26940/txkv/internal/index"
	"github.com/ASHISH26940/txkv/internal/transaction"
	"github.com/hashicorp/go-hclog"
)

// Store is an in-memory key-value store with nested transactions.
// One mutex guards the data, the index and the log together so a write
// is never visible without its index update.
type Store struct {
	mu     sync.Mutex
	data   map[string]int
	counts *index.ValueIndex
	txlog  *transaction.Log
	logger hclog.Logger
}

// NewStore initializes and returns a new empty Store.
// A nil logger discards all output.
func NewStore(logger hclog.Logger) *Store {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Store{
		data:   make(map[string]int),
		counts: index.New(),
		txlog:  transaction.NewLog(),
		logger: logger,
	}
}

// Set adds or updates a key-value pair.
func (s *Store) Set(key string, value int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(key, value)
}

// Get retrieves the value for a key.
func (s *Store) Get(key string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.data[key]
	return value, ok
}

// Unset removes a key. It returns false, changing nothing, if the key is absent.
func (s *Store) Unset(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unset(key)
}

// CountEqualTo returns how many keys currently hold value.
func (s *Store) CountEqualTo(value int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts.Count(value)
}

// Begin opens a new, possibly nested, transaction.
func (s *Store) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.txlog.Push()
	s.logger.Debug("transaction begun", "frame", f.ID, "depth", f.Depth)
}

// Commit makes every pending change permanent and closes all open
// transactions. It returns false if no transaction was open.
func (s *Store) Commit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.txlog.Clear()
	if n == 0 {
		return false
	}
	s.logger.Debug("transactions committed", "frames", n)
	return true
}

// Rollback undoes the changes of the innermost transaction.
// It returns false if no transaction was open.
//
// Restoring writes are journaled into the frame that becomes innermost,
// so an enclosing transaction can roll them back in turn.
func (s *Store) Rollback() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.txlog.Pop()
	if !ok {
		return false
	}
	for _, e := range f.Entries() {
		if e.Prior.Existed {
			s.set(e.Key, e.Prior.Value)
		} else {
			s.unset(e.Key)
		}
	}
	s.logger.Debug("transaction rolled back", "frame", f.ID, "depth", f.Depth, "restored", f.Len())
	return true
}

// Depth returns the number of open transactions.
func (s *Store) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.txlog.Depth()
}

// Len returns the number of keys currently set.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

func (s *Store) set(key string, value int) {
	old, existed := s.data[key]
	s.journal(key, transaction.Prior{Value: old, Existed: existed})
	if existed {
		s.counts.Decrement(old)
	}
	s.counts.Increment(value)
	s.data[key] = value
}

func (s *Store) unset(key string) bool {
	old, existed := s.data[key]
	if !existed {
		return false
	}
	s.journal(key, transaction.Prior{Value: old, Existed: true})
	s.counts.Decrement(old)
	delete(s.data, key)
	return true
}

// journal records the prior state of key in the innermost frame, if any.
func (s *Store) journal(key string, prior transaction.Prior) {
	f, ok := s.txlog.Top()
	if !ok {
		return
	}
	if f.Record(key, prior) {
		s.logger.Trace("journaled key", "frame", f.ID, "key", key, "existed", prior.Existed)
	}
}
