package measure

import "sync"

// Registry is a name-to-plug-in map the driver owns exclusively; the
// driver borrows plug-in instances for the duration of a measure call.
// A small mutex-guarded map, first-wins on duplicate registration: a
// second Register call for the same name is silently dropped rather
// than returning a diagnostic.
type Registry struct {
	mu       sync.RWMutex
	features map[string]Feature
	order    []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{features: make(map[string]Feature)}
}

// Register takes ownership of feature. If its name is already present,
// the new instance is dropped and the previous one is retained.
func (r *Registry) Register(feature Feature) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := feature.Description().Name
	if _, exists := r.features[name]; exists {
		return
	}
	r.features[name] = feature
	r.order = append(r.order, name)
}

// Lookup returns a borrow of the plug-in registered under name.
func (r *Registry) Lookup(name string) (Feature, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.features[name]
	return f, ok
}

// List returns the descriptions of every registered feature, in
// registration order.
func (r *Registry) List() []FeatureDescription {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]FeatureDescription, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.features[name].Description())
	}
	return out
}
