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
	"strings"
)

// aliases maps lowercase spellings that are neither display names nor magnet
// tokens.
var aliases = map[string]ID{
	"crc":        CRC32,
	"sha-1":      SHA1,
	"sha2-224":   SHA224,
	"sha2-256":   SHA256,
	"sha2-384":   SHA384,
	"sha2-512":   SHA512,
	"sha-224":    SHA224,
	"sha-256":    SHA256,
	"sha-384":    SHA384,
	"sha-512":    SHA512,
	"tigertree":  TTH,
	"tree:tiger": TTH,
	"rmd160":     RIPEMD160,
	"gost":       GOST94,
	"edonr256":   EDONR256,
	"edonr512":   EDONR512,
	"blake2s256": BLAKE2s,
	"blake2b512": BLAKE2b,
}

var byName = func() map[string]ID {
	m := make(map[string]ID, 3*Count)
	for _, info := range catalog {
		m[strings.ToLower(info.Name)] = info.ID
		m[info.MagnetName] = info.ID
		m[strings.ReplaceAll(strings.ToLower(info.Name), "-", "")] = info.ID
	}
	for k, v := range aliases {
		m[k] = v
	}
	return m
}()

// Parse resolves an algorithm name. Display names, magnet tokens and common
// aliases are accepted, case-insensitively.
func Parse(name string) (ID, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if id, ok := byName[key]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// ByMagnetName resolves a magnet URN namespace token such as "tree:tiger".
func ByMagnetName(token string) (ID, bool) {
	for _, info := range catalog {
		if info.MagnetName == token {
			return info.ID, true
		}
	}
	return 0, false
}

// ParseList resolves a comma separated list of names into a Set. The special
// name "all" selects the whole catalog.
func ParseList(list string) (Set, error) {
	var s Set
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.EqualFold(part, "all") {
			s = s.Union(AllIDs)
			continue
		}
		id, err := Parse(part)
		if err != nil {
			return 0, err
		}
		s = s.Add(id)
	}
	return s, nil
}

// ParseNames resolves every name in names into a single Set.
func ParseNames(names []string) (Set, error) {
	var s Set
	for _, n := range names {
		part, err := ParseList(n)
		if err != nil {
			return 0, err
		}
		s = s.Union(part)
	}
	return s, nil
}
