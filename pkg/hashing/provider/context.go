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
	"encoding"
	"fmt"
	"hash"

	"github.com/rhash/RHash/pkg/algorithms"
)

var (
	_ Context  = (*multiContext)(nil)
	_ Exporter = (*multiContext)(nil)
)

type contextEntry struct {
	id      algorithms.ID
	factory HashFactory
	h       hash.Hash
	sum     []byte
}

// multiContext fans every update out to one hash.Hash per algorithm.
// Entries are kept in catalog order.
type multiContext struct {
	entries   []contextEntry
	finalized bool
	released  bool
}

func (c *multiContext) Update(p []byte) {
	if c.released || c.finalized || len(p) == 0 {
		return
	}
	for i := range c.entries {
		// hash.Hash.Write never returns an error per the interface contract
		_, _ = c.entries[i].h.Write(p)
	}
}

func (c *multiContext) Finalize() {
	if c.released || c.finalized {
		return
	}
	for i := range c.entries {
		c.entries[i].sum = c.entries[i].h.Sum(nil)
	}
	c.finalized = true
}

func (c *multiContext) Digest(id algorithms.ID) ([]byte, error) {
	if c.released {
		return nil, ErrReleased
	}
	if !c.finalized {
		return nil, ErrNotFinalized
	}
	for _, e := range c.entries {
		if e.id == id {
			out := make([]byte, len(e.sum))
			copy(out, e.sum)
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotSelected, id)
}

func (c *multiContext) Reset() {
	if c.released {
		return
	}
	for i := range c.entries {
		e := &c.entries[i]
		// Recreate the hash instead of calling Reset so keyed or wrapped
		// implementations start from their factory state.
		if h, err := e.factory(); err == nil {
			e.h = h
		} else {
			e.h.Reset()
		}
		e.sum = nil
	}
	c.finalized = false
}

func (c *multiContext) Release() {
	c.entries = nil
	c.finalized = false
	c.released = true
}

func (c *multiContext) Export() (map[algorithms.ID][]byte, error) {
	if c.released {
		return nil, ErrReleased
	}
	states := make(map[algorithms.ID][]byte, len(c.entries))
	for _, e := range c.entries {
		m, ok := e.h.(encoding.BinaryMarshaler)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrExportUnsupported, e.id)
		}
		state, err := m.MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("export %s state: %w", e.id, err)
		}
		states[e.id] = state
	}
	return states, nil
}

func (c *multiContext) Import(states map[algorithms.ID][]byte) error {
	if c.released {
		return ErrReleased
	}
	for i := range c.entries {
		e := &c.entries[i]
		state, ok := states[e.id]
		if !ok {
			return fmt.Errorf("missing state for %s", e.id)
		}
		u, ok := e.h.(encoding.BinaryUnmarshaler)
		if !ok {
			return fmt.Errorf("%w: %s", ErrExportUnsupported, e.id)
		}
		if err := u.UnmarshalBinary(state); err != nil {
			return fmt.Errorf("import %s state: %w", e.id, err)
		}
		e.sum = nil
	}
	c.finalized = false
	return nil
}
