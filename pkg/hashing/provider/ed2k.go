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
	"hash"

	"golang.org/x/crypto/md4" //nolint:staticcheck // ED2K is defined over MD4
)

// ED2KChunkSize is the eDonkey2000 chunk length in bytes.
const ED2KChunkSize = 9728000

// ed2kHash computes the eDonkey2000 hash: MD4 over fixed-size chunks.
//
// A message no longer than one chunk hashes to the MD4 of the chunk. Longer
// messages hash to the MD4 of the concatenated chunk MD4s; an empty trailing
// chunk contributes nothing.
type ed2kHash struct {
	chunk   hash.Hash
	filled  int
	hashes  []byte
	pending bool
}

var _ hash.Hash = (*ed2kHash)(nil)

func newED2K() hash.Hash {
	return &ed2kHash{chunk: md4.New()}
}

func (e *ed2kHash) Write(p []byte) (int, error) {
	n := len(p)
	for len(p) > 0 {
		if e.pending {
			// the previous chunk was full and more data arrived
			e.hashes = e.chunk.Sum(e.hashes)
			e.chunk.Reset()
			e.filled = 0
			e.pending = false
		}
		take := ED2KChunkSize - e.filled
		if take > len(p) {
			take = len(p)
		}
		_, _ = e.chunk.Write(p[:take])
		e.filled += take
		p = p[take:]
		if e.filled == ED2KChunkSize {
			e.pending = true
		}
	}
	return n, nil
}

func (e *ed2kHash) Sum(b []byte) []byte {
	if len(e.hashes) == 0 {
		return e.chunk.Sum(b)
	}
	outer := md4.New()
	_, _ = outer.Write(e.hashes)
	if e.filled > 0 {
		_, _ = outer.Write(e.chunk.Sum(nil))
	}
	return outer.Sum(b)
}

func (e *ed2kHash) Reset() {
	e.chunk.Reset()
	e.filled = 0
	e.hashes = e.hashes[:0]
	e.pending = false
}

func (e *ed2kHash) Size() int { return md4.Size }

func (e *ed2kHash) BlockSize() int { return md4.BlockSize }
