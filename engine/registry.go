package engine

import (
	"sort"
	"sync"

	"github.com/wippyai/spellbound/errors"
)

var (
	registryMu sync.RWMutex
	backends   = make(map[string]Backend)
)

// Register makes a backend available by name. Backend packages call it from
// init on the platforms they support. It panics on a nil backend or a
// duplicate name.
func Register(b Backend) {
	if b == nil {
		panic("engine: Register backend is nil")
	}
	registryMu.Lock()
	defer registryMu.Unlock()

	name := b.Name()
	if _, dup := backends[name]; dup {
		panic("engine: Register called twice for backend " + name)
	}
	backends[name] = b
}

// Lookup returns the backend registered under name.
func Lookup(name string) (Backend, error) {
	registryMu.RLock()
	b, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil, errors.UnknownBackend(name, Names())
	}
	return b, nil
}

// Names returns the registered backend names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}
