package features

import "sync"

// Registry manages the available feature descriptors
type Registry struct {
	mu          sync.RWMutex
	descriptors map[string]Descriptor
}

var defaultRegistry = &Registry{
	descriptors: make(map[string]Descriptor),
}

// Register registers a descriptor in the default registry
func Register(d Descriptor) {
	defaultRegistry.Register(d)
}

// Get retrieves a descriptor by name from the default registry
func Get(name string) (Descriptor, error) {
	return defaultRegistry.Get(name)
}

// List returns all registered descriptors
func List() []Descriptor {
	return defaultRegistry.List()
}

// Register registers a descriptor by name
func (r *Registry) Register(d Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.descriptors[d.Name()] = d
}

// Get retrieves a descriptor by name
func (r *Registry) Get(name string) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.descriptors[name]
	if !ok {
		return nil, ErrDescriptorNotFound
	}
	return d, nil
}

// List returns all registered descriptors
func (r *Registry) List() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	descriptors := make([]Descriptor, 0, len(r.descriptors))
	for _, d := range r.descriptors {
		descriptors = append(descriptors, d)
	}

	return descriptors
}
