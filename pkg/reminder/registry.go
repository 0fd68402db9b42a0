package reminder

import "sync"

// Registry hands out one Machine per movie so every view of the same movie
// shares its state.
type Registry struct {
	deps Deps

	mu       sync.Mutex
	machines map[string]*Machine
}

// NewRegistry returns an empty Registry.
func NewRegistry(deps Deps) *Registry {
	return &Registry{deps: deps, machines: make(map[string]*Machine)}
}

// Machine returns the machine for target.MovieID, creating it on first use.
func (r *Registry) Machine(target Target) *Machine {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.machines[target.MovieID]; ok {
		return m
	}
	m := NewMachine(target, r.deps)
	r.machines[target.MovieID] = m
	return m
}

// Lookup returns the machine for id without creating one.
func (r *Registry) Lookup(id string) (*Machine, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.machines[id]
	return m, ok
}

// Forget drops the machine for id, as when its display goes away.
func (r *Registry) Forget(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.machines, id)
}

// Confirmed exposes the shared confirmed cache.
func (r *Registry) Confirmed() *ConfirmedCache {
	return r.deps.Confirmed
}
