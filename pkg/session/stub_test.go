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

package session

import (
	"github.com/rhash/RHash/pkg/algorithms"
	"github.com/rhash/RHash/pkg/hashing/provider"
)

// stubProvider returns fixed digests regardless of input.
type stubProvider struct {
	values map[algorithms.ID][]byte
}

type stubContext struct {
	p         *stubProvider
	set       algorithms.Set
	fed       []byte
	finalized bool
}

func (p *stubProvider) Create(set algorithms.Set) (provider.Context, error) {
	if set.IsEmpty() {
		return nil, provider.ErrEmptySelection
	}
	return &stubContext{p: p, set: set}, nil
}

func (c *stubContext) Update(b []byte) { c.fed = append(c.fed, b...) }
func (c *stubContext) Finalize()       { c.finalized = true }
func (c *stubContext) Reset()          { c.fed, c.finalized = nil, false }
func (c *stubContext) Release()        {}

func (c *stubContext) Digest(id algorithms.ID) ([]byte, error) {
	if !c.finalized {
		return nil, provider.ErrNotFinalized
	}
	if !c.set.Contains(id) {
		return nil, provider.ErrNotSelected
	}
	if v, ok := c.p.values[id]; ok {
		return append([]byte(nil), v...), nil
	}
	return make([]byte, id.DigestSize()), nil
}
