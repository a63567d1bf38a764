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

package encoding

import (
	"errors"
	"fmt"

	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multihash"

	"github.com/rhash/RHash/pkg/algorithms"
)

// ErrNoMultihashCode is returned for algorithms without a multicodec entry.
var ErrNoMultihashCode = errors.New("algorithm has no multihash code")

// multihashCodes maps catalog algorithms to multicodec hash codes.
var multihashCodes = map[algorithms.ID]uint64{
	algorithms.MD4:       0xd4,
	algorithms.MD5:       multihash.MD5,
	algorithms.SHA1:      multihash.SHA1,
	algorithms.SHA224:    0x1013,
	algorithms.SHA256:    multihash.SHA2_256,
	algorithms.SHA384:    0x20,
	algorithms.SHA512:    multihash.SHA2_512,
	algorithms.SHA3_224:  multihash.SHA3_224,
	algorithms.SHA3_256:  multihash.SHA3_256,
	algorithms.SHA3_384:  multihash.SHA3_384,
	algorithms.SHA3_512:  multihash.SHA3_512,
	algorithms.RIPEMD160: 0x1053,
	algorithms.BLAKE2s:   multihash.BLAKE2S_MAX,
	algorithms.BLAKE2b:   multihash.BLAKE2B_MAX,
	algorithms.BLAKE3:    multihash.BLAKE3,
}

// MultihashCode returns the multicodec code for id.
func MultihashCode(id algorithms.ID) (uint64, bool) {
	code, ok := multihashCodes[id]
	return code, ok
}

// Multihash wraps a raw digest into a self-describing multihash.
func Multihash(id algorithms.ID, b []byte) ([]byte, error) {
	code, ok := multihashCodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoMultihashCode, id)
	}
	mh, err := multihash.Encode(b, code)
	if err != nil {
		return nil, fmt.Errorf("encode multihash for %s: %w", id, err)
	}
	return mh, nil
}

// Multibase renders the multihash of a raw digest in the given multibase,
// e.g. multibase.Base32 or multibase.Base58BTC.
func Multibase(id algorithms.ID, b []byte, base multibase.Encoding) (string, error) {
	mh, err := Multihash(id, b)
	if err != nil {
		return "", err
	}
	s, err := multibase.Encode(base, mh)
	if err != nil {
		return "", fmt.Errorf("encode multibase for %s: %w", id, err)
	}
	return s, nil
}
