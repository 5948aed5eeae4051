package graphics

import "sync"

// Registry allows at most one live Context at a time.
type Registry struct {
	mu      sync.Mutex
	created bool
}

// DefaultRegistry is used when NewContext is given a nil registry.
var DefaultRegistry = &Registry{}

func (r *Registry) acquire() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.created {
		return false
	}
	r.created = true
	return true
}

func (r *Registry) release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = false
}

// Created reports whether a Context is currently live.
func (r *Registry) Created() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.created
}
