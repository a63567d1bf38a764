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

// Package provider defines the contract between a hashing session and the
// algorithm implementations, and ships a registry-backed implementation.
//
// A Provider turns a selection bitmask into a Context that computes every
// selected algorithm over the same byte stream. The session drives the
// context; it never talks to individual algorithms.
package provider

import (
	"errors"

	"github.com/rhash/RHash/pkg/algorithms"
)

var (
	// ErrUnsupportedAlgorithm is returned when a catalog algorithm has no
	// implementation registered with the provider.
	ErrUnsupportedAlgorithm = errors.New("algorithm not supported by provider")

	// ErrEmptySelection is returned when a context is requested for no
	// algorithm at all.
	ErrEmptySelection = errors.New("empty algorithm selection")

	// ErrNotFinalized is returned when digest bytes are requested before
	// Finalize.
	ErrNotFinalized = errors.New("context not finalized")

	// ErrNotSelected is returned when digest bytes are requested for an
	// algorithm the context does not compute.
	ErrNotSelected = errors.New("algorithm not computed by context")

	// ErrReleased is returned by a context after Release.
	ErrReleased = errors.New("context released")

	// ErrExportUnsupported is returned when an algorithm's state cannot be
	// serialized.
	ErrExportUnsupported = errors.New("algorithm state cannot be exported")
)

// Provider creates multi-algorithm hashing contexts.
type Provider interface {
	// Create returns a context computing every algorithm in set. It fails if
	// set is empty, has bits outside the catalog, or names an algorithm the
	// provider cannot compute.
	Create(set algorithms.Set) (Context, error)
}

// Context holds the running state of several algorithms fed with the same
// bytes.
//
// A Context is not safe for concurrent use; the owning session serializes
// access to it.
type Context interface {
	// Update feeds p to every algorithm of the context before returning.
	Update(p []byte)

	// Finalize completes every algorithm. Calling it again has no effect.
	Finalize()

	// Digest returns a copy of the finalized bytes for id.
	Digest(id algorithms.ID) ([]byte, error)

	// Reset returns the context to its freshly created state.
	Reset()

	// Release drops the algorithm state. The context is unusable afterwards.
	Release()
}

// Exporter is implemented by contexts whose running state can be serialized
// and restored.
type Exporter interface {
	// Export returns the serialized state of every algorithm.
	Export() (map[algorithms.ID][]byte, error)

	// Import replaces the running state of every algorithm.
	Import(states map[algorithms.ID][]byte) error
}
