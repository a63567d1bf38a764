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
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rhash/RHash/pkg/algorithms"
	"github.com/rhash/RHash/pkg/encoding"
)

func TestNewHashingConfigDefaults(t *testing.T) {
	c := NewHashingConfig()
	if c.Algorithms() != algorithms.NewSet(algorithms.CRC32) {
		t.Errorf("Algorithms() = %v, want CRC32", c.Algorithms())
	}
	if c.ChunkSize() != 8192 {
		t.Errorf("ChunkSize() = %d, want 8192", c.ChunkSize())
	}
	if c.Format() != encoding.Default {
		t.Errorf("Format() = %v, want default", c.Format())
	}
	if c.Jobs() != 0 || c.FailFast() || c.Magnet() {
		t.Error("unexpected non-zero defaults")
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestHashingConfigChaining(t *testing.T) {
	c := NewHashingConfig().
		SetAlgorithmNames("md5,sha1").
		SetFormat(encoding.Base32).
		SetUppercase(true).
		SetMagnet(true).
		SetChunkSize(1024).
		SetJobs(3).
		SetFailFast(true).
		SetRecursive(true).
		SetFollowSymlinks(true).
		AddExcludedPaths("a", "b")

	if c.Algorithms() != algorithms.NewSet(algorithms.MD5, algorithms.SHA1) {
		t.Errorf("Algorithms() = %v", c.Algorithms())
	}
	if c.Format() != encoding.Base32|encoding.Uppercase {
		t.Errorf("Format() = %v", c.Format())
	}

	bo := c.BatchOptions()
	if bo.ChunkSize != 1024 || bo.Jobs != 3 || !bo.FailFast || !bo.Magnet || !bo.Uppercase {
		t.Errorf("BatchOptions() = %+v", bo)
	}
	eo := c.ExpandOptions()
	if !eo.Recursive || !eo.FollowSymlinks || len(eo.Exclude) != 2 {
		t.Errorf("ExpandOptions() = %+v", eo)
	}
}

func TestHashingConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		c       *HashingConfig
		wantErr string
	}{
		{"empty selection", NewHashingConfig().SetAlgorithms(0), "no hash algorithm"},
		{"unknown bits", NewHashingConfig().SetAlgorithms(algorithms.Set(1 << 50)), "unknown algorithm"},
		{"unknown name", NewHashingConfig().SetAlgorithmNames("md5,nope"), "nope"},
		{"negative chunk", NewHashingConfig().SetChunkSize(-1), "chunk size"},
		{"negative jobs", NewHashingConfig().SetJobs(-2), "jobs"},
		{"bad format", NewHashingConfig().SetFormat(encoding.Format(7)), "format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func writeTOML(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "rhash.toml")
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadFile(t *testing.T) {
	p := writeTOML(t, `
[hashing]
algorithms = ["sha256", "ed2k"]
chunk_size = 65536
jobs = 4
recursive = true
exclude = [".git"]

[output]
format = "base64"
magnet = true
`)
	c, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if c.Algorithms() != algorithms.NewSet(algorithms.SHA256, algorithms.ED2K) {
		t.Errorf("Algorithms() = %v", c.Algorithms())
	}
	if c.ChunkSize() != 65536 || c.Jobs() != 4 || !c.Magnet() {
		t.Errorf("unexpected config %+v", c)
	}
	if c.Format() != encoding.Base64 {
		t.Errorf("Format() = %v", c.Format())
	}
	if c.FailFast() {
		t.Error("absent key changed fail_fast")
	}
	if eo := c.ExpandOptions(); !eo.Recursive || len(eo.Exclude) != 1 {
		t.Errorf("ExpandOptions() = %+v", eo)
	}
}

func TestApplyFileKeepsUnsetValues(t *testing.T) {
	p := writeTOML(t, "[output]\nuppercase = true\n")
	c := NewHashingConfig().SetAlgorithms(algorithms.NewSet(algorithms.MD5)).SetJobs(2)
	if err := c.ApplyFile(p); err != nil {
		t.Fatalf("ApplyFile() error = %v", err)
	}
	if c.Algorithms() != algorithms.NewSet(algorithms.MD5) || c.Jobs() != 2 {
		t.Error("ApplyFile() overwrote keys absent from the file")
	}
	if c.Format()&encoding.Uppercase == 0 {
		t.Error("uppercase not applied")
	}
}

func TestAlgorithmsConfigured(t *testing.T) {
	if NewHashingConfig().AlgorithmsConfigured() {
		t.Error("AlgorithmsConfigured() = true for defaults")
	}
	if !NewHashingConfig().SetAlgorithms(algorithms.NewSet(algorithms.MD5)).AlgorithmsConfigured() {
		t.Error("AlgorithmsConfigured() = false after SetAlgorithms")
	}
	if !NewHashingConfig().SetAlgorithmNames("sha1").AlgorithmsConfigured() {
		t.Error("AlgorithmsConfigured() = false after SetAlgorithmNames")
	}

	c, err := LoadFile(writeTOML(t, "[output]\nmagnet = true\n"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if c.AlgorithmsConfigured() {
		t.Error("AlgorithmsConfigured() = true for a file without algorithms")
	}

	c, err = LoadFile(writeTOML(t, "[hashing]\nalgorithms = [\"crc32\"]\n"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if !c.AlgorithmsConfigured() {
		t.Error("AlgorithmsConfigured() = false for a file naming the default algorithm")
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"syntax", "[hashing\n", "failed to parse TOML"},
		{"unknown key", "[hashing]\ncolour = 1\n", "unknown keys: hashing.colour"},
		{"bad format", "[output]\nformat = \"octal\"\n", "[output].format"},
		{"bad algorithm", "[hashing]\nalgorithms = [\"md7\"]\n", "md7"},
		{"bad chunk", "[hashing]\nchunk_size = -5\n", "chunk size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeTOML(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadFile() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("LoadFile() on missing file succeeded")
	}
}

func TestHash(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "abc"), []byte("abc"), 0o600); err != nil {
		t.Fatal(err)
	}
	c := NewHashingConfig().SetAlgorithms(algorithms.NewSet(algorithms.MD5)).SetRecursive(true)

	results, err := c.Hash(context.Background(), []string{dir}, nil, nil, nil)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if len(results) != 1 || results[0].Err != nil {
		t.Fatalf("Hash() results = %+v", results)
	}
	if got := results[0].Digests[0].Hex(); got != "900150983cd24fb0d6963f7d28e17f72" {
		t.Errorf("digest = %s", got)
	}

	if _, err := NewHashingConfig().SetAlgorithms(0).Hash(context.Background(), []string{dir}, nil, nil, nil); err == nil {
		t.Error("Hash() with invalid config succeeded")
	}
}
