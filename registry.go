// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cloudtaa

import (
	"maps"
	"slices"
	"sync"
)

// ViewFactory creates the ViewState for a newly seen view.
type ViewFactory func(id ViewID) (*ViewState, error)

// ViewRegistry maps view identities to their ViewState. It is the only
// component that creates or removes view states, and it guarantees at most
// one ViewState per live ViewID.
//
// The map itself is guarded so that independent views can be acquired from
// different goroutines; each ViewState must still be driven by one goroutine
// at a time.
type ViewRegistry struct {
	mu      sync.Mutex
	views   map[ViewID]*ViewState
	factory ViewFactory
}

// NewViewRegistry creates an empty registry that builds views with factory.
func NewViewRegistry(factory ViewFactory) *ViewRegistry {
	return &ViewRegistry{
		views:   make(map[ViewID]*ViewState),
		factory: factory,
	}
}

// Acquire returns the ViewState for id, creating it on first use.
func (r *ViewRegistry) Acquire(id ViewID) (*ViewState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.views[id]; ok {
		return v, nil
	}
	v, err := r.factory(id)
	if err != nil {
		return nil, err
	}
	r.views[id] = v
	Logger().Info("cloudtaa: view registered", "view", uint64(id))
	return v, nil
}

// Lookup returns the ViewState for id without creating one.
func (r *ViewRegistry) Lookup(id ViewID) (*ViewState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.views[id]
	return v, ok
}

// Unregister disposes and removes the view. It reports whether the view
// was registered.
func (r *ViewRegistry) Unregister(id ViewID) bool {
	r.mu.Lock()
	v, ok := r.views[id]
	delete(r.views, id)
	r.mu.Unlock()

	if ok {
		v.Dispose()
	}
	return ok
}

// Len returns the number of registered views.
func (r *ViewRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

// IDs returns the registered view identities in ascending order.
func (r *ViewRegistry) IDs() []ViewID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Sorted(maps.Keys(r.views))
}

// Each calls fn for every registered view in ascending ID order.
func (r *ViewRegistry) Each(fn func(*ViewState) error) error {
	for _, id := range r.IDs() {
		v, ok := r.Lookup(id)
		if !ok {
			continue
		}
		if err := fn(v); err != nil {
			return err
		}
	}
	return nil
}

// locked runs fn with the registry locked and the views in ascending ID
// order. No view can be added or removed while fn runs.
func (r *ViewRegistry) locked(fn func(views []*ViewState) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	views := make([]*ViewState, 0, len(r.views))
	for _, id := range slices.Sorted(maps.Keys(r.views)) {
		views = append(views, r.views[id])
	}
	return fn(views)
}

// Close disposes every view and empties the registry.
func (r *ViewRegistry) Close() {
	r.mu.Lock()
	views := r.views
	r.views = make(map[ViewID]*ViewState)
	r.mu.Unlock()

	for _, id := range slices.Sorted(maps.Keys(views)) {
		views[id].Dispose()
	}
}
