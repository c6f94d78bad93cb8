// FILE: lixenwraith/deconfig/registry.go
package deconfig

import (
	"errors"
	"sync"
)

// Registry holds the default adapter chain used by containers declared
// without explicit adapters.
//
// A registry is meant to be set once during start-up and read afterwards.
// Containers read it on every field access without taking a snapshot, so a
// later Set changes how existing containers resolve. Seal the registry once
// start-up is complete to turn such changes into errors.
type Registry struct {
	mu       sync.RWMutex
	adapters Chain
	sealed   bool
}

// NewRegistry creates a registry holding adapters. It may be empty.
func NewRegistry(adapters ...Adapter) *Registry {
	return &Registry{adapters: append(Chain(nil), adapters...)}
}

// Set replaces the default adapters. At least one adapter is required.
func (r *Registry) Set(adapters ...Adapter) error {
	if len(adapters) == 0 {
		return errors.New("deconfig: at least one adapter is required")
	}
	if err := checkAdapters(adapters); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return ErrRegistrySealed
	}
	r.adapters = append(Chain(nil), adapters...)
	return nil
}

// Adapters returns a copy of the current default chain.
func (r *Registry) Adapters() Chain {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append(Chain(nil), r.adapters...)
}

// Seal makes further calls to Set fail with ErrRegistrySealed.
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used by builders that
// were not given one with WithRegistry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// SetDefaultAdapters sets the adapters of the process-wide registry.
// Call it during start-up, before containers are used.
func SetDefaultAdapters(adapters ...Adapter) error {
	return defaultRegistry.Set(adapters...)
}
