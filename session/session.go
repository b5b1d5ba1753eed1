// Package session holds the dashboard-facing state of downloaded rate
// tables: the last shaped table per currency and its readiness flag.
//
// The store is memory-only on purpose; downloaded data does not survive
// a restart
package session

import (
	"sort"
	"sync"
	"time"

	"github.com/sig-0/ratescope/frame"
)

// State is the per-currency dashboard state
type State struct {
	UpdatedAt time.Time
	Table     *frame.Table
	Currency  string
	Ready     bool
}

// Store is a mutex-guarded in-memory state store, keyed by
// formatted currency code
type Store struct {
	data map[string]State

	mu sync.RWMutex
}

// NewStore creates an empty session store
func NewStore() *Store {
	return &Store{
		data: make(map[string]State),
	}
}

// Publish stores the freshly shaped table for the currency and
// marks it ready
func (s *Store) Publish(code string, t *frame.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[code] = State{
		Currency:  code,
		Table:     t,
		Ready:     true,
		UpdatedAt: time.Now().UTC(),
	}
}

// Invalidate clears the readiness flag for the currency, keeping the
// stale table out of every downstream view
func (s *Store) Invalidate(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.data[code]
	if !ok {
		return
	}

	st.Ready = false
	s.data[code] = st
}

// Get fetches the state for the currency.
// The second return is false when the currency was never published
// or is not ready
func (s *Store) Get(code string) (State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.data[code]
	if !ok || !st.Ready {
		return State{}, false
	}

	return st, true
}

// Currencies lists the ready currency codes, sorted
func (s *Store) Currencies() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.data))

	for code, st := range s.data {
		if st.Ready {
			out = append(out, code)
		}
	}

	sort.Strings(out)

	return out
}
