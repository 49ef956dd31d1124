package resource

import (
	"sync"
)

// Owned holds a native resource exclusively and releases it exactly once.
//
// Calls into the resource go through With, which holds the owner's lock for
// the duration of the call. Release takes the same lock, so a release never
// overlaps an in-flight call and every later With fails with ErrReleased.
type Owned[T any] struct {
	value    T
	release  func(T) error
	mu       sync.Mutex
	released bool
}

// NewOwned takes ownership of value. release is invoked once, by the first
// call to Release.
func NewOwned[T any](value T, release func(T) error) *Owned[T] {
	return &Owned[T]{
		value:   value,
		release: release,
	}
}

// With runs fn with the resource while holding the owner's lock.
func (o *Owned[T]) With(fn func(T) error) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.released {
		return ErrReleased
	}
	return fn(o.value)
}

// Release frees the resource. Only the first call runs the release function
// and reports its error; later calls return nil.
func (o *Owned[T]) Release() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.released {
		return nil
	}
	o.released = true

	var zero T
	value := o.value
	o.value = zero
	if o.release == nil {
		return nil
	}
	return o.release(value)
}

// Released reports whether Release has run.
func (o *Owned[T]) Released() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.released
}
