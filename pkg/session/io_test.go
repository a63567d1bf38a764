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

package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rhash/RHash/pkg/algorithms"
)

func TestUpdateReaderChunkSizes(t *testing.T) {
	payload := strings.Repeat("0123456789", 1000)
	want, err := HashMessage(algorithms.SHA256, []byte(payload))
	require.NoError(t, err)

	for _, chunk := range []int{0, 1, 7, 4096, 1 << 20} {
		s := mustNew(t, algorithms.SHA256)
		n, err := s.UpdateReader(context.Background(), iotest.HalfReader(strings.NewReader(payload)), chunk)
		require.NoError(t, err)
		require.EqualValues(t, len(payload), n)
		require.NoError(t, s.Finish())

		got, err := s.Digest(algorithms.SHA256)
		require.NoError(t, err)
		require.True(t, want.Equal(got), "chunk size %d", chunk)
	}
}

// stallingReader blocks in Read until release is closed.
type stallingReader struct {
	started chan struct{}
	release chan struct{}
}

func (r *stallingReader) Read([]byte) (int, error) {
	close(r.started)
	<-r.release
	return 0, nil
}

func TestUpdateReaderHoldsLockDuringRead(t *testing.T) {
	s := mustNew(t, algorithms.MD5)
	r := &stallingReader{started: make(chan struct{}), release: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := s.UpdateReader(ctx, r, 4)
		done <- err
	}()
	<-r.started

	closed := make(chan error, 1)
	go func() { closed <- s.Close() }()

	select {
	case <-closed:
		t.Fatal("Close() returned while Read was blocked")
	case <-time.After(50 * time.Millisecond):
	}

	// Cancellation is only seen once Read returns.
	cancel()
	select {
	case <-done:
		t.Fatal("UpdateReader() returned while Read was blocked")
	case <-time.After(20 * time.Millisecond):
	}

	close(r.release)
	require.ErrorIs(t, <-done, context.Canceled)
	require.NoError(t, <-closed)
	require.ErrorIs(t, s.Update([]byte("x")), ErrClosed)
}

func TestUpdateReaderErrors(t *testing.T) {
	s := mustNew(t, algorithms.MD5)

	_, err := s.UpdateReader(context.Background(), strings.NewReader("x"), -1)
	require.ErrorIs(t, err, ErrInvalidRange)

	boom := errors.New("boom")
	_, err = s.UpdateReader(context.Background(), iotest.ErrReader(boom), 16)
	require.ErrorIs(t, err, boom)
	require.True(t, IsKind(err, KindIO))

	_, err = s.UpdateReader(context.Background(), iotest.ErrReader(boom), 0)
	require.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n, err := s.UpdateReader(ctx, strings.NewReader("data"), 2)
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, n)

	require.NoError(t, s.Finish())
	_, err = s.UpdateReader(context.Background(), strings.NewReader("x"), 1)
	require.ErrorIs(t, err, ErrFinished)
}

func TestUpdateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0o600))

	d, err := HashFile(context.Background(), algorithms.MD5, path)
	require.NoError(t, err)
	require.Equal(t, "900150983cd24fb0d6963f7d28e17f72", d.Hex())

	_, err = HashFile(context.Background(), algorithms.MD5, filepath.Join(dir, "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)
	require.True(t, IsKind(err, KindIO))

	s := mustNew(t, algorithms.MD5)
	_, err = s.UpdateFile(context.Background(), "", 0)
	require.True(t, IsKind(err, KindIO))

	link, err := MagnetForFile(context.Background(), path, algorithms.NewSet(algorithms.MD5))
	require.NoError(t, err)
	require.Equal(t, "magnet:?xl=3&dn=data.bin&xt=urn:md5:900150983cd24fb0d6963f7d28e17f72", link)
}

func TestHashMessage(t *testing.T) {
	tests := []struct {
		id   algorithms.ID
		data string
		want string
	}{
		{algorithms.CRC32, "a", "e8b7be43"},
		{algorithms.MD5, "a", "0cc175b9c0f1b6a831c399e269772661"},
		{algorithms.SHA1, "a", "86f7e437faa5a7fce15d1ddcb9eaeaea377667b8"},
		{algorithms.MD5, "", "d41d8cd98f00b204e9800998ecf8427e"},
	}
	for _, tt := range tests {
		d, err := HashMessage(tt.id, []byte(tt.data))
		require.NoError(t, err)
		require.Equal(t, tt.want, d.Hex(), tt.id.String())
	}

	_, err := HashMessage(algorithms.ID(6), nil)
	require.ErrorIs(t, err, ErrUnknownAlgorithm)
}
