package engine

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Shared is a process-wide engine instance that must not be entered by two
// callers at once.
//
// The value is constructed on the first Do, under the same lock that
// serializes every later call, so concurrent first use constructs it exactly
// once. A failed construction is not remembered and the next Do tries again.
type Shared[T any] struct {
	construct func() (T, error)
	value     T
	mu        sync.Mutex
	ready     bool
}

// NewShared creates a lazily constructed shared instance.
func NewShared[T any](construct func() (T, error)) *Shared[T] {
	return &Shared[T]{construct: construct}
}

// Do runs fn with the shared instance while holding its lock.
func (s *Shared[T]) Do(fn func(T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		v, err := s.construct()
		if err != nil {
			return err
		}
		s.value = v
		s.ready = true
		Logger().Debug("shared engine constructed", zap.String("type", fmt.Sprintf("%T", v)))
	}
	return fn(s.value)
}
