// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package provider

import (
	"fmt"
	"hash"
	"sync"

	"github.com/rhash/RHash/pkg/algorithms"
)

// HashFactory creates a fresh hash.Hash for one algorithm.
type HashFactory func() (hash.Hash, error)

// Registry is a Provider backed by hash.Hash factories, one per algorithm.
//
// Registry is safe for concurrent use. Contexts created from it capture the
// factories at creation time, so later registrations do not affect them.
type Registry struct {
	mu        sync.RWMutex
	factories map[algorithms.ID]HashFactory
}

var _ Provider = (*Registry)(nil)

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[algorithms.ID]HashFactory)}
}

// Register adds the factory for a catalog algorithm.
//
// If the algorithm already has a factory, an error is returned.
func (r *Registry) Register(id algorithms.ID, factory HashFactory) error {
	if _, err := algorithms.Lookup(id); err != nil {
		return err
	}
	if factory == nil {
		return fmt.Errorf("factory for %s cannot be nil", id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[id]; exists {
		return fmt.Errorf("hash algorithm %s already registered", id)
	}
	r.factories[id] = factory
	return nil
}

// MustRegister registers a factory or panics on error.
func (r *Registry) MustRegister(id algorithms.ID, factory HashFactory) {
	if err := r.Register(id, factory); err != nil {
		panic(fmt.Sprintf("failed to register hash algorithm %s: %v", id, err))
	}
}

// Unregister removes the factory for id.
func (r *Registry) Unregister(id algorithms.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[id]; !exists {
		return fmt.Errorf("hash algorithm %s not registered", id)
	}
	delete(r.factories, id)
	return nil
}

// Supported returns the set of algorithms with a registered factory.
func (r *Registry) Supported() algorithms.Set {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var s algorithms.Set
	for id := range r.factories {
		s = s.Add(id)
	}
	return s
}

// IsSupported reports whether id has a registered factory.
func (r *Registry) IsSupported(id algorithms.ID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.factories[id]
	return exists
}

// Create builds a context for every algorithm in set.
func (r *Registry) Create(set algorithms.Set) (Context, error) {
	if set.IsEmpty() {
		return nil, ErrEmptySelection
	}
	infos, err := set.Infos()
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	factories := make([]HashFactory, len(infos))
	var missing algorithms.Set
	for i, info := range infos {
		f, ok := r.factories[info.ID]
		if !ok {
			missing = missing.Add(info.ID)
			continue
		}
		factories[i] = f
	}
	r.mu.RUnlock()

	if !missing.IsEmpty() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, missing)
	}

	ctx := &multiContext{entries: make([]contextEntry, len(infos))}
	for i, info := range infos {
		h, err := factories[i]()
		if err != nil {
			return nil, fmt.Errorf("failed to create %s hash: %w", info.Name, err)
		}
		if h.Size() != info.DigestSize {
			return nil, fmt.Errorf("%s hash produces %d bytes, catalog expects %d",
				info.Name, h.Size(), info.DigestSize)
		}
		ctx.entries[i] = contextEntry{id: info.ID, factory: factories[i], h: h}
	}
	return ctx, nil
}

var defaultRegistry = newBuiltinRegistry()

// Default returns the process-wide registry preloaded with the built-in
// algorithms.
func Default() *Registry {
	return defaultRegistry
}

// Register adds a factory to the default registry.
func Register(id algorithms.ID, factory HashFactory) error {
	return defaultRegistry.Register(id, factory)
}

// Supported returns the algorithms of the default registry.
func Supported() algorithms.Set {
	return defaultRegistry.Supported()
}
