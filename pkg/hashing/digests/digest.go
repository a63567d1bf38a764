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

// Package digests provides the value type for one algorithm's finalized output.
//
// A Digest pairs a catalog algorithm with its raw bytes. It is independent of
// the session that produced it: resetting or closing the session never
// invalidates a Digest already handed out.
package digests

import (
	"bytes"

	"github.com/rhash/RHash/pkg/algorithms"
	"github.com/rhash/RHash/pkg/encoding"
)

// Digest is the finalized output of a single algorithm.
//
// Digest is effectively immutable: its fields are unexported, and the
// constructor and Value copy the underlying bytes.
type Digest struct {
	algorithm algorithms.ID
	value     []byte
}

// NewDigest creates a Digest for the given algorithm. The value slice is
// copied.
func NewDigest(algorithm algorithms.ID, value []byte) Digest {
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	return Digest{
		algorithm: algorithm,
		value:     valueCopy,
	}
}

// Algorithm returns the algorithm that produced the digest.
func (d Digest) Algorithm() algorithms.ID {
	return d.algorithm
}

// Value returns a copy of the raw digest bytes.
func (d Digest) Value() []byte {
	valueCopy := make([]byte, len(d.value))
	copy(valueCopy, d.value)
	return valueCopy
}

// Size returns the length in bytes of the digest value.
func (d Digest) Size() int {
	return len(d.value)
}

// IsZero reports whether d is the zero Digest.
func (d Digest) IsZero() bool {
	return d.algorithm == 0 && len(d.value) == 0
}

// Format renders the digest. encoding.Default resolves to the algorithm's
// preferred rendering.
func (d Digest) Format(f encoding.Format) string {
	return string(encoding.ForAlgorithm(d.algorithm, d.value, f))
}

// Raw is Value; it mirrors the Raw rendering.
func (d Digest) Raw() []byte {
	return d.Value()
}

// Hex returns the lowercase hexadecimal rendering.
func (d Digest) Hex() string {
	return encoding.EncodeToString(d.value, encoding.Hex)
}

// Base32 returns the unpadded lowercase Base32 rendering.
func (d Digest) Base32() string {
	return encoding.EncodeToString(d.value, encoding.Base32)
}

// Base64 returns the padded standard Base64 rendering.
func (d Digest) Base64() string {
	return encoding.EncodeToString(d.value, encoding.Base64)
}

// Multihash returns the digest wrapped as a multihash.
func (d Digest) Multihash() ([]byte, error) {
	return encoding.Multihash(d.algorithm, d.value)
}

// String returns the canonical text form: Base32 for algorithms the catalog
// marks as Base32-displayed, lowercase hexadecimal otherwise.
func (d Digest) String() string {
	return d.Format(encoding.Default)
}

// Equal reports whether both digests come from the same algorithm and hold
// identical bytes.
func (d Digest) Equal(other Digest) bool {
	return d.algorithm == other.algorithm && bytes.Equal(d.value, other.value)
}
