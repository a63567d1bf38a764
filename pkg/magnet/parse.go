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

package magnet

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rhash/RHash/pkg/algorithms"
	"github.com/rhash/RHash/pkg/encoding"
	"github.com/rhash/RHash/pkg/hashing/digests"
)

// ErrMalformedLink is returned by Parse for input that is not a magnet link.
var ErrMalformedLink = errors.New("malformed magnet link")

// Topic is one exact-topic (xt) parameter.
type Topic struct {
	// ID is the catalog algorithm, or 0 when Token is not in the catalog.
	ID algorithms.ID
	// Token is the URN namespace, e.g. "tree:tiger".
	Token string
	// Value is the digest text as it appeared in the link.
	Value string
}

// Known reports whether the topic names a catalog algorithm.
func (t Topic) Known() bool {
	return t.ID != 0
}

// Digest decodes the topic value. Hex and Base32 renderings are both
// accepted, distinguished by length.
func (t Topic) Digest() (digests.Digest, error) {
	if !t.Known() {
		return digests.Digest{}, fmt.Errorf("%w: urn:%s", algorithms.ErrUnknownAlgorithm, t.Token)
	}
	size := t.ID.DigestSize()
	var f encoding.Format
	switch len(t.Value) {
	case encoding.EncodedLen(size, encoding.Hex):
		f = encoding.Hex
	case encoding.EncodedLen(size, encoding.Base32):
		f = encoding.Base32
	default:
		return digests.Digest{}, fmt.Errorf("%w: %s value has length %d",
			ErrMalformedLink, t.ID, len(t.Value))
	}
	b, err := encoding.DecodeString(t.Value, f)
	if err != nil {
		return digests.Digest{}, fmt.Errorf("%w: %v", ErrMalformedLink, err)
	}
	return digests.NewDigest(t.ID, b), nil
}

// Link is a parsed magnet link.
type Link struct {
	// Size is the xl parameter; valid only when HasSize is set.
	Size    uint64
	HasSize bool
	// Filename is the unescaped dn parameter.
	Filename string
	// Topics lists every xt parameter in link order.
	Topics []Topic
	// Extra keeps parameters other than xl, dn and xt.
	Extra url.Values
}

// Unknown returns the topics whose URN token is not in the catalog.
func (l *Link) Unknown() []Topic {
	var out []Topic
	for _, t := range l.Topics {
		if !t.Known() {
			out = append(out, t)
		}
	}
	return out
}

// Topic returns the first topic for id.
func (l *Link) Topic(id algorithms.ID) (Topic, bool) {
	for _, t := range l.Topics {
		if t.ID == id {
			return t, true
		}
	}
	return Topic{}, false
}

// Parse decodes a magnet link.
func Parse(uri string) (*Link, error) {
	if len(uri) < len(Scheme) || !strings.EqualFold(uri[:len(Scheme)], Scheme) {
		return nil, fmt.Errorf("%w: missing %q prefix", ErrMalformedLink, Scheme)
	}

	link := &Link{}
	query := uri[len(Scheme):]
	if query == "" {
		return link, nil
	}
	for _, param := range strings.Split(query, "&") {
		key, value, ok := strings.Cut(param, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: parameter %q", ErrMalformedLink, param)
		}
		switch key {
		case "xl":
			n, err := strconv.ParseUint(value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: xl=%q", ErrMalformedLink, value)
			}
			link.Size, link.HasSize = n, true
		case "dn":
			name, err := url.QueryUnescape(value)
			if err != nil {
				return nil, fmt.Errorf("%w: dn: %v", ErrMalformedLink, err)
			}
			link.Filename = name
		case "xt":
			t, err := parseTopic(value)
			if err != nil {
				return nil, err
			}
			link.Topics = append(link.Topics, t)
		default:
			v, err := url.QueryUnescape(value)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrMalformedLink, key, err)
			}
			if link.Extra == nil {
				link.Extra = url.Values{}
			}
			link.Extra.Add(key, v)
		}
	}
	return link, nil
}

func parseTopic(value string) (Topic, error) {
	urn, ok := strings.CutPrefix(value, "urn:")
	if !ok {
		return Topic{}, fmt.Errorf("%w: xt=%q is not a urn", ErrMalformedLink, value)
	}
	i := strings.LastIndexByte(urn, ':')
	if i <= 0 || i == len(urn)-1 {
		return Topic{}, fmt.Errorf("%w: xt=%q", ErrMalformedLink, value)
	}
	t := Topic{Token: strings.ToLower(urn[:i]), Value: urn[i+1:]}
	if id, ok := algorithms.ByMagnetName(t.Token); ok {
		t.ID = id
	}
	return t, nil
}
