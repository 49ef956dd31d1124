package resource

import (
	"sync"
)

// Table tracks live resources by handle and notifies observers when entries
// are created or dropped.
type Table struct {
	store     *localStore
	observers map[int]Observer
	nextObs   int
	obsMu     sync.RWMutex
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		store:     newLocalStore(),
		observers: make(map[int]Observer),
	}
}

// Insert adds a value and returns its handle. Handles are never 0.
func (t *Table) Insert(kind string, value any) Handle {
	handle := t.store.create(kind, value)

	t.notify(Event{
		Type:   EventCreated,
		Handle: handle,
		Kind:   kind,
		Value:  value,
	})

	return handle
}

// Remove drops an entry and returns (value, true) if it was live.
func (t *Table) Remove(handle Handle) (any, bool) {
	value, kind, ok := t.store.drop(handle)
	if !ok {
		return nil, false
	}

	t.notify(Event{
		Type:   EventDropped,
		Handle: handle,
		Kind:   kind,
		Value:  value,
	})

	return value, true
}

// Subscribe adds an observer for lifecycle events and returns a function
// that removes it.
func (t *Table) Subscribe(o Observer) (unsubscribe func()) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()

	id := t.nextObs
	t.nextObs++
	t.observers[id] = o

	return func() {
		t.obsMu.Lock()
		defer t.obsMu.Unlock()
		delete(t.observers, id)
	}
}

// Len returns the number of live entries.
func (t *Table) Len() int {
	return t.store.len()
}

// Each iterates over live entries until fn returns false.
func (t *Table) Each(fn func(Handle, string, any) bool) {
	t.store.each(fn)
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnResourceEvent(e)
	}
}
