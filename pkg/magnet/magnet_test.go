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
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rhash/RHash/pkg/algorithms"
	"github.com/rhash/RHash/pkg/encoding"
	"github.com/rhash/RHash/pkg/hashing/digests"
)

func hexDigest(t *testing.T, id algorithms.ID, s string) digests.Digest {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return digests.NewDigest(id, b)
}

func b32Digest(t *testing.T, id algorithms.ID, s string) digests.Digest {
	t.Helper()
	b, err := encoding.DecodeString(s, encoding.Base32)
	require.NoError(t, err)
	return digests.NewDigest(id, b)
}

func TestBuild(t *testing.T) {
	const tth = "asd4ujseh5m47pdyb46kbtsqtsgdklbhyxomuia"
	md5abc := hexDigest(t, algorithms.MD5, "900150983cd24fb0d6963f7d28e17f72")
	crc := hexDigest(t, algorithms.CRC32, "261dafe6")
	md5n := hexDigest(t, algorithms.MD5, "d577273ff885c3f84dadb8578bb41399")

	tests := []struct {
		name string
		d    Descriptor
		opts Options
		want string
	}{
		{
			name: "md5 and tth",
			d: Descriptor{
				Filename: "file.txt",
				Size:     3,
				Digests:  []digests.Digest{b32Digest(t, algorithms.TTH, tth), md5abc},
			},
			want: "magnet:?xl=3&dn=file.txt&xt=urn:md5:900150983cd24fb0d6963f7d28e17f72&xt=urn:tree:tiger:" + tth,
		},
		{
			name: "escaped filename",
			d: Descriptor{
				Filename: "test/12345.txt",
				Size:     6,
				Digests:  []digests.Digest{md5n, crc},
			},
			want: "magnet:?xl=6&dn=test%2F12345.txt&xt=urn:crc32:261dafe6&xt=urn:md5:d577273ff885c3f84dadb8578bb41399",
		},
		{
			name: "no filename",
			d:    Descriptor{Size: 6, Digests: []digests.Digest{crc}},
			want: "magnet:?xl=6&xt=urn:crc32:261dafe6",
		},
		{
			name: "no digests",
			d:    Descriptor{Filename: "a b.txt", Size: 0},
			want: "magnet:?xl=0&dn=a%20b.txt",
		},
		{
			name: "duplicates collapsed",
			d:    Descriptor{Size: 6, Digests: []digests.Digest{crc, crc, hexDigest(t, algorithms.CRC32, "00000000")}},
			want: "magnet:?xl=6&xt=urn:crc32:261dafe6",
		},
		{
			name: "invalid algorithm skipped",
			d:    Descriptor{Size: 6, Digests: []digests.Digest{digests.NewDigest(algorithms.ID(3), []byte{1}), crc}},
			want: "magnet:?xl=6&xt=urn:crc32:261dafe6",
		},
		{
			name: "sha1 in base32",
			d:    Descriptor{Size: 1, Digests: []digests.Digest{digests.NewDigest(algorithms.SHA1, make([]byte, 20))}},
			want: "magnet:?xl=1&xt=urn:sha1:" + strings.Repeat("a", 32),
		},
		{
			name: "uppercase",
			d:    Descriptor{Size: 6, Digests: []digests.Digest{crc}},
			opts: Options{Uppercase: true},
			want: "magnet:?xl=6&xt=urn:crc32:261DAFE6",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildWithOptions(tt.d, tt.opts)
			require.Equal(t, tt.want, got)
			require.False(t, strings.HasSuffix(got, "&"))
		})
	}
}

func TestEscapeComponent(t *testing.T) {
	require.Equal(t, "a%20b%2Fc%2Bd%26e", EscapeComponent("a b/c+d&e"))
	require.Equal(t, "plain-name_1.0~x", EscapeComponent("plain-name_1.0~x"))
}

func TestParseRoundTrip(t *testing.T) {
	uri := "magnet:?xl=6&dn=test%2F12345%20x.txt&xt=urn:crc32:261dafe6&xt=urn:md5:d577273ff885c3f84dadb8578bb41399&xt=urn:foo:bar&tr=http%3A%2F%2Ft"
	link, err := Parse(uri)
	require.NoError(t, err)

	require.True(t, link.HasSize)
	require.EqualValues(t, 6, link.Size)
	require.Equal(t, "test/12345 x.txt", link.Filename)
	require.Len(t, link.Topics, 3)
	require.Equal(t, "http://t", link.Extra.Get("tr"))

	unknown := link.Unknown()
	require.Len(t, unknown, 1)
	require.Equal(t, "foo", unknown[0].Token)
	_, err = unknown[0].Digest()
	require.ErrorIs(t, err, algorithms.ErrUnknownAlgorithm)

	topic, ok := link.Topic(algorithms.MD5)
	require.True(t, ok)
	d, err := topic.Digest()
	require.NoError(t, err)
	require.Equal(t, "d577273ff885c3f84dadb8578bb41399", d.Hex())
}

func TestParseTopicEncodings(t *testing.T) {
	const tth = "asd4ujseh5m47pdyb46kbtsqtsgdklbhyxomuia"
	link, err := Parse("magnet:?xt=urn:tree:tiger:" + strings.ToUpper(tth) + "&xt=urn:sha1:" + strings.Repeat("0", 40))
	require.NoError(t, err)
	require.False(t, link.HasSize)

	topic, ok := link.Topic(algorithms.TTH)
	require.True(t, ok)
	d, err := topic.Digest()
	require.NoError(t, err)
	require.Equal(t, tth, d.String())

	topic, ok = link.Topic(algorithms.SHA1)
	require.True(t, ok)
	d, err = topic.Digest()
	require.NoError(t, err)
	require.Equal(t, make([]byte, 20), d.Value())

	_, err = Topic{ID: algorithms.MD5, Token: "md5", Value: "abc"}.Digest()
	require.ErrorIs(t, err, ErrMalformedLink)
}

func TestParseErrors(t *testing.T) {
	for _, uri := range []string{
		"",
		"http://example.com",
		"magnet:?xl",
		"magnet:?xl=abc",
		"magnet:?xl=-1",
		"magnet:?xt=md5:abc",
		"magnet:?xt=urn:md5",
		"magnet:?xt=urn:md5:",
		"magnet:?dn=%zz",
		"magnet:?=x",
	} {
		t.Run(uri, func(t *testing.T) {
			_, err := Parse(uri)
			require.ErrorIs(t, err, ErrMalformedLink)
		})
	}
}

func TestBuildParseAgree(t *testing.T) {
	d := Descriptor{
		Filename: "dir/my file+1.bin",
		Size:     1 << 40,
		Digests: []digests.Digest{
			digests.NewDigest(algorithms.AICH, make([]byte, 20)),
			digests.NewDigest(algorithms.ED2K, []byte("0123456789abcdef")),
		},
	}
	link, err := Parse(Build(d))
	require.NoError(t, err)
	require.Equal(t, d.Filename, link.Filename)
	require.Equal(t, d.Size, link.Size)
	require.Len(t, link.Topics, 2)
	require.Equal(t, algorithms.ED2K, link.Topics[0].ID)
	require.Equal(t, algorithms.AICH, link.Topics[1].ID)
	for i, topic := range link.Topics {
		got, err := topic.Digest()
		require.NoError(t, err)
		require.True(t, got.Equal(d.Digests[1-i]))
	}
}
