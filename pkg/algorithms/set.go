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

package algorithms

import (
	"fmt"
	"math/bits"
	"strings"
)

// Set is a selection of algorithms packed into a bitmask.
type Set uint64

// NewSet returns the union of the given identifiers.
func NewSet(ids ...ID) Set {
	var s Set
	for _, id := range ids {
		s = s.Add(id)
	}
	return s
}

// Add returns s with id included.
func (s Set) Add(id ID) Set {
	return s | Set(id)
}

// Union returns the algorithms present in either set.
func (s Set) Union(other Set) Set {
	return s | other
}

// Intersect returns the algorithms present in both sets.
func (s Set) Intersect(other Set) Set {
	return s & other
}

// Contains reports whether id is a single algorithm that belongs to s.
func (s Set) Contains(id ID) bool {
	return id != 0 && id&(id-1) == 0 && uint64(s)&uint64(id) != 0
}

// IsEmpty reports whether the set holds no algorithm.
func (s Set) IsEmpty() bool {
	return s == 0
}

// Len returns the number of algorithms in the set.
func (s Set) Len() int {
	return bits.OnesCount64(uint64(s))
}

// Min returns the lowest-bit algorithm of the set. The boolean is false for
// an empty set.
func (s Set) Min() (ID, bool) {
	if s == 0 {
		return 0, false
	}
	return ID(uint64(s) & -uint64(s)), true
}

// Validate fails with ErrUnknownAlgorithm if the set has bits the catalog
// does not own.
func (s Set) Validate() error {
	if extra := s &^ AllIDs; extra != 0 {
		return fmt.Errorf("%w: bit pattern %#x", ErrUnknownAlgorithm, uint64(extra))
	}
	return nil
}

// IDs decomposes the set into its algorithms, lowest bit first.
func (s Set) IDs() ([]ID, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	ids := make([]ID, 0, s.Len())
	for rest := uint64(s); rest != 0; rest &= rest - 1 {
		ids = append(ids, ID(rest&-rest))
	}
	return ids, nil
}

// Infos returns the catalog entries of the set, lowest bit first.
func (s Set) Infos() ([]Info, error) {
	ids, err := s.IDs()
	if err != nil {
		return nil, err
	}
	infos := make([]Info, len(ids))
	for i, id := range ids {
		// IDs has already validated every bit.
		infos[i] = MustLookup(id)
	}
	return infos, nil
}

// String renders the set as a comma separated list of display names.
func (s Set) String() string {
	if s == 0 {
		return ""
	}
	var parts []string
	for rest := uint64(s); rest != 0; rest &= rest - 1 {
		parts = append(parts, ID(rest&-rest).String())
	}
	return strings.Join(parts, ",")
}
