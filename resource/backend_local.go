package resource

import (
	"sync"
)

// localStore is the in-memory slot storage behind a Table. Freed slots are
// reused, so handles stay small for long-running processes that open and
// close many sessions.
type localStore struct {
	entries  []entry
	freeList []Handle
	mu       sync.RWMutex
}

type entry struct {
	value any
	kind  string
	valid bool
}

func newLocalStore() *localStore {
	return &localStore{
		entries:  make([]entry, 0, 16),
		freeList: make([]Handle, 0, 4),
	}
}

// create stores a value and returns a handle.
func (s *localStore) create(kind string, value any) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := entry{
		kind:  kind,
		value: value,
		valid: true,
	}

	if len(s.freeList) > 0 {
		handle := s.freeList[len(s.freeList)-1]
		s.freeList = s.freeList[:len(s.freeList)-1]
		s.entries[handle-1] = e
		return handle
	}

	s.entries = append(s.entries, e)
	return Handle(len(s.entries))
}

// drop invalidates a handle and returns its value and kind.
func (s *localStore) drop(handle Handle) (any, string, bool) {
	if handle == 0 {
		return nil, "", false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := handle - 1
	if int(idx) >= len(s.entries) {
		return nil, "", false
	}

	e := &s.entries[idx]
	if !e.valid {
		return nil, "", false
	}

	value, kind := e.value, e.kind
	*e = entry{}
	s.freeList = append(s.freeList, handle)

	return value, kind, true
}

// len returns the number of live entries.
func (s *localStore) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, e := range s.entries {
		if e.valid {
			count++
		}
	}
	return count
}

// each iterates over all live entries.
func (s *localStore) each(fn func(Handle, string, any) bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i, e := range s.entries {
		if e.valid {
			if !fn(Handle(i+1), e.kind, e.value) {
				break
			}
		}
	}
}
