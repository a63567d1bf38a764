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
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    ID
		wantErr bool
	}{
		{"md5", MD5, false},
		{"MD5", MD5, false},
		{" sha1 ", SHA1, false},
		{"SHA-256", SHA256, false},
		{"sha256", SHA256, false},
		{"sha2-256", SHA256, false},
		{"tree:tiger", TTH, false},
		{"tth", TTH, false},
		{"ripemd-160", RIPEMD160, false},
		{"edon-r512", EDONR512, false},
		{"sha3-256", SHA3_256, false},
		{"blake3", BLAKE3, false},
		{"whirlpool", Whirlpool, false},
		{"sha4", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnknownAlgorithm) {
				t.Errorf("Parse(%q) error = %v, want ErrUnknownAlgorithm", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseList(t *testing.T) {
	s, err := ParseList("md5, sha1,,crc32")
	if err != nil {
		t.Fatalf("ParseList() error = %v", err)
	}
	if want := NewSet(MD5, SHA1, CRC32); s != want {
		t.Errorf("ParseList() = %v, want %v", s, want)
	}

	all, err := ParseList("all")
	if err != nil {
		t.Fatalf("ParseList(all) error = %v", err)
	}
	if all != AllIDs {
		t.Errorf("ParseList(all) = %#x, want %#x", uint64(all), uint64(AllIDs))
	}

	if _, err := ParseList("md5,nope"); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("ParseList() error = %v, want ErrUnknownAlgorithm", err)
	}
}

func TestParseNames(t *testing.T) {
	s, err := ParseNames([]string{"md5", "tth,aich"})
	if err != nil {
		t.Fatalf("ParseNames() error = %v", err)
	}
	if want := NewSet(MD5, TTH, AICH); s != want {
		t.Errorf("ParseNames() = %v, want %v", s, want)
	}
}

func TestByMagnetName(t *testing.T) {
	if id, ok := ByMagnetName("tree:tiger"); !ok || id != TTH {
		t.Errorf("ByMagnetName(tree:tiger) = %v, %v", id, ok)
	}
	if _, ok := ByMagnetName("sha4"); ok {
		t.Error("ByMagnetName(sha4) reported ok")
	}
}
