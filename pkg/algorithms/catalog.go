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

// Package algorithms is the static catalog of hash and checksum algorithms.
//
// Every algorithm owns a fixed bit position. Bit positions are part of the
// public contract: selections are persisted and exchanged as bitmasks, so a
// position is never reused or renumbered. The bit position also defines the
// total order of algorithms, which is used to pick the default algorithm of a
// selection and to order magnet link parameters.
package algorithms

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrUnknownAlgorithm is returned when an identifier, bit pattern or name has
// no owner in the catalog.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// ID identifies a single algorithm. Its value is the algorithm's bit.
type ID uint64

// Catalog identifiers. The values match librhash's RHASH_* constants so that
// masks stay interchangeable with it. Never renumber.
const (
	CRC32           ID = 1 << 0
	MD4             ID = 1 << 1
	MD5             ID = 1 << 2
	SHA1            ID = 1 << 3
	Tiger           ID = 1 << 4
	TTH             ID = 1 << 5
	BTIH            ID = 1 << 6
	ED2K            ID = 1 << 7
	AICH            ID = 1 << 8
	Whirlpool       ID = 1 << 9
	RIPEMD160       ID = 1 << 10
	GOST94          ID = 1 << 11
	GOST94CryptoPro ID = 1 << 12
	HAS160          ID = 1 << 13
	GOST12_256      ID = 1 << 14
	GOST12_512      ID = 1 << 15
	SHA224          ID = 1 << 16
	SHA256          ID = 1 << 17
	SHA384          ID = 1 << 18
	SHA512          ID = 1 << 19
	EDONR256        ID = 1 << 20
	EDONR512        ID = 1 << 21
	SHA3_224        ID = 1 << 22
	SHA3_256        ID = 1 << 23
	SHA3_384        ID = 1 << 24
	SHA3_512        ID = 1 << 25
	CRC32C          ID = 1 << 26
	Snefru128       ID = 1 << 27
	Snefru256       ID = 1 << 28
	BLAKE2s         ID = 1 << 29
	BLAKE2b         ID = 1 << 30
	BLAKE3          ID = 1 << 31
)

// Count is the number of algorithms in the catalog.
const Count = 32

// DisplayFormat is the preferred textual rendering of an algorithm's digest.
type DisplayFormat int

const (
	// DisplayHex renders digests as lowercase hexadecimal.
	DisplayHex DisplayFormat = iota
	// DisplayBase32 renders digests as unpadded lowercase Base32.
	DisplayBase32
)

// Info describes one catalog entry.
type Info struct {
	// ID is the algorithm's bit.
	ID ID
	// Name is the display name, e.g. "SHA-256".
	Name string
	// DigestSize is the length of the raw digest in bytes.
	DigestSize int
	// Display is the default rendering used by a digest's string form.
	Display DisplayFormat
	// MagnetName is the URN namespace token used in magnet links.
	MagnetName string
	// MagnetDisplay is the rendering used for the digest inside magnet links.
	// It equals Display for every algorithm except SHA1, which magnet links
	// carry in Base32.
	MagnetDisplay DisplayFormat
}

// Bit returns the zero-based bit position of the algorithm.
func (i Info) Bit() int {
	return bits.TrailingZeros64(uint64(i.ID))
}

// Base32 reports whether the algorithm is displayed in Base32 by default.
func (i Info) Base32() bool {
	return i.Display == DisplayBase32
}

func entry(id ID, name string, size int, display DisplayFormat, magnet string) Info {
	return Info{
		ID:            id,
		Name:          name,
		DigestSize:    size,
		Display:       display,
		MagnetName:    magnet,
		MagnetDisplay: display,
	}
}

// catalog is indexed by bit position.
var catalog = [Count]Info{
	entry(CRC32, "CRC32", 4, DisplayHex, "crc32"),
	entry(MD4, "MD4", 16, DisplayHex, "md4"),
	entry(MD5, "MD5", 16, DisplayHex, "md5"),
	{ID: SHA1, Name: "SHA1", DigestSize: 20, Display: DisplayHex, MagnetName: "sha1", MagnetDisplay: DisplayBase32},
	entry(Tiger, "TIGER", 24, DisplayHex, "tiger"),
	entry(TTH, "TTH", 24, DisplayBase32, "tree:tiger"),
	entry(BTIH, "BTIH", 20, DisplayHex, "btih"),
	entry(ED2K, "ED2K", 16, DisplayHex, "ed2k"),
	entry(AICH, "AICH", 20, DisplayBase32, "aich"),
	entry(Whirlpool, "WHIRLPOOL", 64, DisplayHex, "whirlpool"),
	entry(RIPEMD160, "RIPEMD-160", 20, DisplayHex, "ripemd160"),
	entry(GOST94, "GOST94", 32, DisplayHex, "gost94"),
	entry(GOST94CryptoPro, "GOST94-CRYPTOPRO", 32, DisplayHex, "gost94-cryptopro"),
	entry(HAS160, "HAS-160", 20, DisplayHex, "has160"),
	entry(GOST12_256, "GOST12-256", 32, DisplayHex, "gost12-256"),
	entry(GOST12_512, "GOST12-512", 64, DisplayHex, "gost12-512"),
	entry(SHA224, "SHA-224", 28, DisplayHex, "sha224"),
	entry(SHA256, "SHA-256", 32, DisplayHex, "sha256"),
	entry(SHA384, "SHA-384", 48, DisplayHex, "sha384"),
	entry(SHA512, "SHA-512", 64, DisplayHex, "sha512"),
	entry(EDONR256, "EDON-R256", 32, DisplayHex, "edon-r256"),
	entry(EDONR512, "EDON-R512", 64, DisplayHex, "edon-r512"),
	entry(SHA3_224, "SHA3-224", 28, DisplayHex, "sha3-224"),
	entry(SHA3_256, "SHA3-256", 32, DisplayHex, "sha3-256"),
	entry(SHA3_384, "SHA3-384", 48, DisplayHex, "sha3-384"),
	entry(SHA3_512, "SHA3-512", 64, DisplayHex, "sha3-512"),
	entry(CRC32C, "CRC32C", 4, DisplayHex, "crc32c"),
	entry(Snefru128, "SNEFRU-128", 16, DisplayHex, "snefru128"),
	entry(Snefru256, "SNEFRU-256", 32, DisplayHex, "snefru256"),
	entry(BLAKE2s, "BLAKE2S", 32, DisplayHex, "blake2s"),
	entry(BLAKE2b, "BLAKE2B", 64, DisplayHex, "blake2b"),
	entry(BLAKE3, "BLAKE3", 32, DisplayHex, "blake3"),
}

// AllIDs is the mask of every catalog algorithm.
const AllIDs Set = 1<<Count - 1

// Lookup returns the catalog entry for a single algorithm.
//
// It fails with ErrUnknownAlgorithm when id is zero, has more than one bit
// set, or names a bit the catalog does not own.
func Lookup(id ID) (Info, error) {
	if id == 0 || id&(id-1) != 0 {
		return Info{}, fmt.Errorf("%w: bit pattern %#x", ErrUnknownAlgorithm, uint64(id))
	}
	bit := bits.TrailingZeros64(uint64(id))
	if bit >= Count {
		return Info{}, fmt.Errorf("%w: bit pattern %#x", ErrUnknownAlgorithm, uint64(id))
	}
	return catalog[bit], nil
}

// MustLookup is like Lookup but panics on a miss. A miss means the caller
// holds an identifier that was never part of the catalog.
func MustLookup(id ID) Info {
	info, err := Lookup(id)
	if err != nil {
		panic(err)
	}
	return info
}

// All returns every catalog entry in bit order.
func All() []Info {
	out := make([]Info, Count)
	copy(out, catalog[:])
	return out
}

// Valid reports whether id is a single catalog algorithm.
func (id ID) Valid() bool {
	_, err := Lookup(id)
	return err == nil
}

// String returns the display name, or a hexadecimal placeholder for
// identifiers outside the catalog.
func (id ID) String() string {
	info, err := Lookup(id)
	if err != nil {
		return fmt.Sprintf("ID(%#x)", uint64(id))
	}
	return info.Name
}

// DigestSize returns the raw digest length, or 0 for unknown identifiers.
func (id ID) DigestSize() int {
	info, err := Lookup(id)
	if err != nil {
		return 0
	}
	return info.DigestSize
}

// Base32 reports whether the algorithm is displayed in Base32 by default.
func (id ID) Base32() bool {
	info, err := Lookup(id)
	return err == nil && info.Base32()
}
