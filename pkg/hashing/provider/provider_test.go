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
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"hash"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/md4" //nolint:staticcheck

	"github.com/rhash/RHash/pkg/algorithms"
)

func digestHex(t *testing.T, ctx Context, id algorithms.ID) string {
	t.Helper()
	b, err := ctx.Digest(id)
	require.NoError(t, err)
	return hex.EncodeToString(b)
}

func TestBuiltinVectors(t *testing.T) {
	tests := []struct {
		id   algorithms.ID
		want string
	}{
		{algorithms.CRC32, "352441c2"},
		{algorithms.CRC32C, "364b3fb7"},
		{algorithms.MD4, "a448017aaf21d8525fc10ae87aa6729d"},
		{algorithms.MD5, "900150983cd24fb0d6963f7d28e17f72"},
		{algorithms.SHA1, "a9993e364706816aba3e25717850c26c9cd0d89d"},
		{algorithms.ED2K, "a448017aaf21d8525fc10ae87aa6729d"},
		{algorithms.RIPEMD160, "8eb208f7e05d987a9b044a8e98c6b087f15a0bfc"},
		{algorithms.SHA256, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{algorithms.SHA3_256, "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532"},
		{algorithms.BLAKE3, "6437b3ac38465133ffb63b75273a8db548c558465d79db03fd359c6cd5bd9d85"},
	}

	var set algorithms.Set
	for _, tt := range tests {
		set = set.Add(tt.id)
	}
	ctx, err := Default().Create(set)
	require.NoError(t, err)
	defer ctx.Release()

	ctx.Update([]byte("a"))
	ctx.Update([]byte("bc"))
	ctx.Finalize()

	for _, tt := range tests {
		t.Run(tt.id.String(), func(t *testing.T) {
			require.Equal(t, tt.want, digestHex(t, ctx, tt.id))
		})
	}
}

func TestBuiltinDigestSizes(t *testing.T) {
	ids, err := Builtin.IDs()
	require.NoError(t, err)
	for _, id := range ids {
		ctx, err := Default().Create(algorithms.NewSet(id))
		require.NoError(t, err, id.String())
		ctx.Finalize()
		b, err := ctx.Digest(id)
		require.NoError(t, err)
		require.Len(t, b, id.DigestSize(), id.String())
	}
	require.Equal(t, Builtin, Supported())
}

func TestCreateErrors(t *testing.T) {
	_, err := Default().Create(0)
	require.ErrorIs(t, err, ErrEmptySelection)

	_, err = Default().Create(algorithms.NewSet(algorithms.MD5, algorithms.TTH))
	require.ErrorIs(t, err, ErrUnsupportedAlgorithm)

	r := NewRegistry()
	require.NoError(t, r.Register(algorithms.MD5, func() (hash.Hash, error) { return sha256.New(), nil }))
	_, err = r.Create(algorithms.NewSet(algorithms.MD5))
	require.Error(t, err, "digest size mismatch must be rejected")

	failing := errors.New("boom")
	require.NoError(t, r.Register(algorithms.SHA1, func() (hash.Hash, error) { return nil, failing }))
	_, err = r.Create(algorithms.NewSet(algorithms.SHA1))
	require.ErrorIs(t, err, failing)
}

func TestRegistryRegistration(t *testing.T) {
	r := NewRegistry()
	f := func() (hash.Hash, error) { return md4.New(), nil }

	require.NoError(t, r.Register(algorithms.MD4, f))
	require.Error(t, r.Register(algorithms.MD4, f), "duplicate registration")
	require.ErrorIs(t, r.Register(algorithms.ID(3), f), algorithms.ErrUnknownAlgorithm)
	require.Error(t, r.Register(algorithms.MD5, nil))
	require.True(t, r.IsSupported(algorithms.MD4))
	require.Equal(t, algorithms.NewSet(algorithms.MD4), r.Supported())

	require.NoError(t, r.Unregister(algorithms.MD4))
	require.Error(t, r.Unregister(algorithms.MD4))
	require.False(t, r.IsSupported(algorithms.MD4))

	require.Panics(t, func() {
		r.MustRegister(algorithms.ID(3), f)
	})
}

func TestContextLifecycle(t *testing.T) {
	ctx, err := Default().Create(algorithms.NewSet(algorithms.MD5, algorithms.SHA1))
	require.NoError(t, err)

	ctx.Update([]byte("x"))
	_, err = ctx.Digest(algorithms.MD5)
	require.ErrorIs(t, err, ErrNotFinalized)

	ctx.Finalize()
	_, err = ctx.Digest(algorithms.SHA256)
	require.ErrorIs(t, err, ErrNotSelected)

	// updates after finalize are ignored by the context
	ctx.Update([]byte("ignored"))
	ctx.Finalize()
	require.Equal(t, "9dd4e461268c8034f5c8564e155c67a6", digestHex(t, ctx, algorithms.MD5))

	ctx.Reset()
	ctx.Finalize()
	require.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", digestHex(t, ctx, algorithms.MD5))

	b, err := ctx.Digest(algorithms.MD5)
	require.NoError(t, err)
	b[0] ^= 0xff
	require.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", digestHex(t, ctx, algorithms.MD5))

	ctx.Release()
	_, err = ctx.Digest(algorithms.MD5)
	require.ErrorIs(t, err, ErrReleased)
}

func TestExportImport(t *testing.T) {
	set := algorithms.NewSet(algorithms.CRC32, algorithms.MD5, algorithms.SHA256)
	src, err := Default().Create(set)
	require.NoError(t, err)
	src.Update([]byte("a"))

	states, err := src.(Exporter).Export()
	require.NoError(t, err)
	require.Len(t, states, 3)

	dst, err := Default().Create(set)
	require.NoError(t, err)
	require.NoError(t, dst.(Exporter).Import(states))
	dst.Update([]byte("bc"))
	dst.Finalize()

	require.Equal(t, "352441c2", digestHex(t, dst, algorithms.CRC32))
	require.Equal(t, "900150983cd24fb0d6963f7d28e17f72", digestHex(t, dst, algorithms.MD5))

	delete(states, algorithms.MD5)
	require.Error(t, dst.(Exporter).Import(states))

	ed, err := Default().Create(algorithms.NewSet(algorithms.ED2K))
	require.NoError(t, err)
	_, err = ed.(Exporter).Export()
	require.ErrorIs(t, err, ErrExportUnsupported)
}

func md4Of(parts ...[]byte) []byte {
	h := md4.New()
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}

func TestED2KChunking(t *testing.T) {
	chunk := bytes.Repeat([]byte{'x'}, ED2KChunkSize)
	tail := []byte("tail!")

	tests := []struct {
		name string
		data []byte
		want []byte
	}{
		{"empty", nil, md4Of()},
		{"exactly one chunk", chunk, md4Of(chunk)},
		{"one chunk and a tail", append(append([]byte{}, chunk...), tail...),
			md4Of(md4Of(chunk), md4Of(tail))},
		{"two chunks", append(append([]byte{}, chunk...), chunk...),
			md4Of(md4Of(chunk), md4Of(chunk))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newED2K()
			// feed in uneven pieces to cross chunk boundaries mid-write
			data := tt.data
			for len(data) > 0 {
				n := 1 << 20
				if n > len(data) {
					n = len(data)
				}
				h.Write(data[:n])
				data = data[n:]
			}
			require.Equal(t, tt.want, h.Sum(nil))

			h.Reset()
			require.Equal(t, md4Of(), h.Sum(nil))
		})
	}
}
