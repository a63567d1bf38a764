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
	"crypto/md5"  //nolint:gosec // catalog algorithm
	"crypto/sha1" //nolint:gosec // catalog algorithm
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"hash/crc32"

	"github.com/rhash/RHash/pkg/algorithms"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/md4"       //nolint:staticcheck // catalog algorithm
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // catalog algorithm
	"golang.org/x/crypto/sha3"
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

func plain(f func() hash.Hash) HashFactory {
	return func() (hash.Hash, error) { return f(), nil }
}

// Builtin lists the algorithms the default registry computes.
var Builtin = algorithms.NewSet(
	algorithms.CRC32, algorithms.MD4, algorithms.MD5, algorithms.SHA1,
	algorithms.ED2K, algorithms.RIPEMD160,
	algorithms.SHA224, algorithms.SHA256, algorithms.SHA384, algorithms.SHA512,
	algorithms.SHA3_224, algorithms.SHA3_256, algorithms.SHA3_384, algorithms.SHA3_512,
	algorithms.CRC32C, algorithms.BLAKE2s, algorithms.BLAKE2b, algorithms.BLAKE3,
)

func newBuiltinRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(algorithms.CRC32, plain(func() hash.Hash { return crc32.NewIEEE() }))
	r.MustRegister(algorithms.CRC32C, plain(func() hash.Hash { return crc32.New(castagnoli) }))
	r.MustRegister(algorithms.MD4, plain(md4.New))
	r.MustRegister(algorithms.MD5, plain(md5.New))
	r.MustRegister(algorithms.SHA1, plain(sha1.New))
	r.MustRegister(algorithms.ED2K, plain(newED2K))
	r.MustRegister(algorithms.RIPEMD160, plain(ripemd160.New))
	r.MustRegister(algorithms.SHA224, plain(sha256.New224))
	r.MustRegister(algorithms.SHA256, plain(sha256.New))
	r.MustRegister(algorithms.SHA384, plain(sha512.New384))
	r.MustRegister(algorithms.SHA512, plain(sha512.New))
	r.MustRegister(algorithms.SHA3_224, plain(sha3.New224))
	r.MustRegister(algorithms.SHA3_256, plain(sha3.New256))
	r.MustRegister(algorithms.SHA3_384, plain(sha3.New384))
	r.MustRegister(algorithms.SHA3_512, plain(sha3.New512))
	r.MustRegister(algorithms.BLAKE2s, func() (hash.Hash, error) { return blake2s.New256(nil) })
	r.MustRegister(algorithms.BLAKE2b, func() (hash.Hash, error) { return blake2b.New512(nil) })
	r.MustRegister(algorithms.BLAKE3, plain(func() hash.Hash { return blake3.New() }))
	return r
}
