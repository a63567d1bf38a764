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

// Package encoding renders raw digest bytes as text.
//
// A Format selects one of four renderings (raw, hexadecimal, Base32,
// Base64) and may carry the Uppercase and Reverse modifiers. Encoding is pure:
// the input is never modified and the output never aliases it.
package encoding

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/multiformats/go-base32"

	"github.com/rhash/RHash/pkg/algorithms"
)

// Format selects a digest rendering. The numeric values follow librhash's
// RHPR_* print flags.
type Format int

const (
	// Default picks the algorithm's preferred rendering; without an
	// algorithm it behaves as Hex.
	Default Format = 0x0
	// Raw returns the digest bytes unchanged.
	Raw Format = 0x1
	// Hex renders two hexadecimal digits per byte.
	Hex Format = 0x2
	// Base32 renders RFC 4648 Base32 without padding.
	Base32 Format = 0x3
	// Base64 renders standard Base64 with padding.
	Base64 Format = 0x4

	// Uppercase renders letters in upper case (Hex and Base32).
	Uppercase Format = 0x8
	// Reverse reverses the byte order before hexadecimal rendering. It is
	// used for algorithms that are conventionally shown little-endian.
	Reverse Format = 0x10

	baseMask     = 0x7
	modifierMask = Uppercase | Reverse
)

var rawBase32 = base32.RawStdEncoding

// Base strips the modifiers and returns the rendering itself.
func (f Format) Base() Format {
	return f & baseMask
}

// Upper reports whether the Uppercase modifier is set.
func (f Format) Upper() bool {
	return f&Uppercase != 0
}

// Reversed reports whether the Reverse modifier is set.
func (f Format) Reversed() bool {
	return f&Reverse != 0
}

// String returns a short name such as "hex" or "base32|upper".
func (f Format) String() string {
	var name string
	switch f.Base() {
	case Default:
		name = "default"
	case Raw:
		name = "raw"
	case Hex:
		name = "hex"
	case Base32:
		name = "base32"
	case Base64:
		name = "base64"
	default:
		name = fmt.Sprintf("format(%d)", int(f.Base()))
	}
	if f.Upper() {
		name += "|upper"
	}
	if f.Reversed() {
		name += "|reverse"
	}
	return name
}

// ParseFormat resolves a rendering name: "default", "raw", "hex", "base32"
// or "base64".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return Default, nil
	case "raw":
		return Raw, nil
	case "hex":
		return Hex, nil
	case "base32":
		return Base32, nil
	case "base64":
		return Base64, nil
	default:
		return Default, fmt.Errorf("unknown digest format %q (supported: default, raw, hex, base32, base64)", s)
	}
}

// DefaultFormat returns the catalog-preferred rendering for id.
func DefaultFormat(id algorithms.ID) Format {
	if id.Base32() {
		return Base32
	}
	return Hex
}

// MagnetFormat returns the rendering used for id inside magnet links.
func MagnetFormat(id algorithms.ID) Format {
	info, err := algorithms.Lookup(id)
	if err != nil {
		return Hex
	}
	if info.MagnetDisplay == algorithms.DisplayBase32 {
		return Base32
	}
	return Hex
}

// ForAlgorithm encodes b, resolving Default to the algorithm's preferred
// rendering while keeping any modifiers.
func ForAlgorithm(id algorithms.ID, b []byte, f Format) []byte {
	if f.Base() == Default {
		f |= DefaultFormat(id)
	}
	return Encode(b, f)
}

// Encode renders b according to f.
func Encode(b []byte, f Format) []byte {
	switch f.Base() {
	case Raw:
		out := make([]byte, len(b))
		copy(out, b)
		return out
	case Base32:
		out := make([]byte, rawBase32.EncodedLen(len(b)))
		rawBase32.Encode(out, b)
		if f.Upper() {
			return out
		}
		return bytes.ToLower(out)
	case Base64:
		out := make([]byte, base64.StdEncoding.EncodedLen(len(b)))
		base64.StdEncoding.Encode(out, b)
		return out
	default:
		src := b
		if f.Reversed() {
			src = reversed(b)
		}
		out := make([]byte, hex.EncodedLen(len(src)))
		hex.Encode(out, src)
		if f.Upper() {
			return bytes.ToUpper(out)
		}
		return out
	}
}

// EncodeToString is Encode returning a string.
func EncodeToString(b []byte, f Format) string {
	return string(Encode(b, f))
}

// EncodedLen returns the length of Encode(b, f) for an input of n bytes.
func EncodedLen(n int, f Format) int {
	switch f.Base() {
	case Raw:
		return n
	case Base32:
		return rawBase32.EncodedLen(n)
	case Base64:
		return base64.StdEncoding.EncodedLen(n)
	default:
		return hex.EncodedLen(n)
	}
}

func reversed(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}

// DecodeString parses text produced by Encode with the given base format.
// Hex and Base32 input is accepted in either case.
func DecodeString(s string, f Format) ([]byte, error) {
	switch f.Base() {
	case Raw:
		return []byte(s), nil
	case Base32:
		b, err := rawBase32.DecodeString(strings.ToUpper(s))
		if err != nil {
			return nil, fmt.Errorf("invalid base32 digest: %w", err)
		}
		return b, nil
	case Base64:
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 digest: %w", err)
		}
		return b, nil
	default:
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid hex digest: %w", err)
		}
		if f.Reversed() {
			b = reversed(b)
		}
		return b, nil
	}
}
