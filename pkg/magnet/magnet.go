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

// Package magnet assembles and parses magnet URIs carrying file digests.
//
// A built link has the shape
//
//	magnet:?xl=<size>&dn=<name>&xt=urn:<token>:<digest>&xt=...
//
// with exact-topic parameters ordered by catalog bit position.
package magnet

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/rhash/RHash/pkg/algorithms"
	"github.com/rhash/RHash/pkg/encoding"
	"github.com/rhash/RHash/pkg/hashing/digests"
)

// Scheme is the prefix of every magnet link.
const Scheme = "magnet:?"

// Descriptor holds the inputs of a magnet link.
type Descriptor struct {
	// Filename becomes the dn parameter. It is omitted when empty.
	Filename string
	// Size becomes the xl parameter: the number of bytes hashed.
	Size uint64
	// Digests become xt parameters. Order does not matter.
	Digests []digests.Digest
}

// Options tune the rendering of a link.
type Options struct {
	// Uppercase renders digest values in upper case.
	Uppercase bool
}

// Build renders d as a magnet link with default options.
func Build(d Descriptor) string {
	return BuildWithOptions(d, Options{})
}

// BuildWithOptions renders d as a magnet link.
//
// Digests with an algorithm outside the catalog are skipped. When several
// digests share an algorithm only the first one is used.
func BuildWithOptions(d Descriptor, opts Options) string {
	var b strings.Builder
	b.WriteString(Scheme)
	b.WriteString("xl=")
	b.WriteString(strconv.FormatUint(d.Size, 10))

	if d.Filename != "" {
		b.WriteString("&dn=")
		b.WriteString(EscapeComponent(d.Filename))
	}

	for _, dg := range orderDigests(d.Digests) {
		info := algorithms.MustLookup(dg.Algorithm())
		f := encoding.MagnetFormat(info.ID)
		if opts.Uppercase {
			f |= encoding.Uppercase
		}
		b.WriteString("&xt=urn:")
		b.WriteString(info.MagnetName)
		b.WriteByte(':')
		b.WriteString(dg.Format(f))
	}
	return b.String()
}

// orderDigests drops unusable and duplicate digests and sorts the rest by
// catalog bit.
func orderDigests(in []digests.Digest) []digests.Digest {
	var seen algorithms.Set
	out := make([]digests.Digest, 0, len(in))
	for _, dg := range in {
		id := dg.Algorithm()
		if !id.Valid() || seen.Contains(id) {
			continue
		}
		seen = seen.Add(id)
		out = append(out, dg)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Algorithm() < out[j].Algorithm()
	})
	return out
}

// EscapeComponent percent-encodes s as a URI component. Spaces become %20
// and slashes %2F.
func EscapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
