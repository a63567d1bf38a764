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

package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/rhash/RHash/pkg/encoding"
)

// fileConfig mirrors the TOML layout:
//
//	[hashing]
//	algorithms = ["sha256", "ed2k"]
//	chunk_size = 65536
//	jobs = 4
//	fail_fast = false
//	recursive = true
//	follow_symlinks = false
//	exclude = [".git"]
//
//	[output]
//	format = "base32"
//	uppercase = false
//	magnet = false
type fileConfig struct {
	Hashing struct {
		Algorithms     []string `toml:"algorithms"`
		ChunkSize      int      `toml:"chunk_size"`
		Jobs           int      `toml:"jobs"`
		FailFast       bool     `toml:"fail_fast"`
		Recursive      bool     `toml:"recursive"`
		FollowSymlinks bool     `toml:"follow_symlinks"`
		Exclude        []string `toml:"exclude"`
	} `toml:"hashing"`
	Output struct {
		Format    string `toml:"format"`
		Uppercase bool   `toml:"uppercase"`
		Magnet    bool   `toml:"magnet"`
	} `toml:"output"`
}

// LoadFile returns the defaults overridden by the settings in a TOML file.
func LoadFile(path string) (*HashingConfig, error) {
	c := NewHashingConfig()
	if err := c.ApplyFile(path); err != nil {
		return nil, err
	}
	return c, nil
}

// ApplyFile overrides the settings present in a TOML file. Keys absent
// from the file leave the current values untouched; unknown keys are an
// error.
func (c *HashingConfig) ApplyFile(path string) error {
	var fc fileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if meta.IsDefined("hashing", "algorithms") {
		c.SetAlgorithmNames(fc.Hashing.Algorithms...)
	}
	if meta.IsDefined("hashing", "chunk_size") {
		c.SetChunkSize(fc.Hashing.ChunkSize)
	}
	if meta.IsDefined("hashing", "jobs") {
		c.SetJobs(fc.Hashing.Jobs)
	}
	if meta.IsDefined("hashing", "fail_fast") {
		c.SetFailFast(fc.Hashing.FailFast)
	}
	if meta.IsDefined("hashing", "recursive") {
		c.SetRecursive(fc.Hashing.Recursive)
	}
	if meta.IsDefined("hashing", "follow_symlinks") {
		c.SetFollowSymlinks(fc.Hashing.FollowSymlinks)
	}
	if meta.IsDefined("hashing", "exclude") {
		c.AddExcludedPaths(fc.Hashing.Exclude...)
	}
	if meta.IsDefined("output", "format") {
		f, err := encoding.ParseFormat(fc.Output.Format)
		if err != nil {
			return fmt.Errorf("%s: [output].format: %w", path, err)
		}
		c.SetFormat(f)
	}
	if meta.IsDefined("output", "uppercase") {
		c.SetUppercase(fc.Output.Uppercase)
	}
	if meta.IsDefined("output", "magnet") {
		c.SetMagnet(fc.Output.Magnet)
	}

	if err := c.Validate(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
