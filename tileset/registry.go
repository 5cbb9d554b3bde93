package tileset

import (
	"fmt"
	"slices"
)

// Registry maps tileset names to loaded tilesets. It is built once during
// asset loading and handed to the renderer and gameplay code. Reads are safe
// from any goroutine; Register and UnloadAll must not race with anything.
type Registry struct {
	sets map[string]*Tileset
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sets: make(map[string]*Tileset)}
}

// Register adds ts under name.
func (r *Registry) Register(name string, ts *Tileset) error {
	if name == "" || ts == nil {
		return fmt.Errorf("%w: register %q: empty name or nil tileset", ErrMalformedTileset, name)
	}
	if _, ok := r.sets[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateTileset, name)
	}
	r.sets[name] = ts
	return nil
}

// Get returns the tileset registered under name.
func (r *Registry) Get(name string) (*Tileset, error) {
	ts, ok := r.sets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTileset, name)
	}
	return ts, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.sets))
	for name := range r.sets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (r *Registry) Len() int { return len(r.sets) }

// UnloadAll releases every tileset. The registry can be reused afterwards.
func (r *Registry) UnloadAll() {
	clear(r.sets)
}
