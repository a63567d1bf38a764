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
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rhash/RHash/pkg/algorithms"
	"github.com/rhash/RHash/pkg/hashing/digests"
)

// DefaultChunkSize is the read buffer size used when a caller passes a
// chunk size of zero to UpdateFile.
const DefaultChunkSize = 8192

// UpdateReader streams r into the session in chunks of chunkSize bytes until
// EOF. A chunk size of zero reads r in one go with io.ReadAll, which buffers
// the whole stream in memory with no upper bound; use it only for inputs of
// known, small size.
//
// The session lock is held for the whole stream so concurrent updates
// cannot interleave with it. ctx is checked between chunks only, never
// during a Read: a reader that blocks keeps the lock, and Close, Finished
// and every other method of the session wait until that Read returns.
// Readers that may stall should be made to return when ctx is cancelled,
// e.g. by closing them from another goroutine or setting a deadline. The
// returned count covers bytes fed before any error.
func (s *Session) UpdateReader(ctx context.Context, r io.Reader, chunkSize int) (int64, error) {
	const op = "update"
	if chunkSize < 0 {
		return 0, newError(KindInvalidRange, op,
			fmt.Sprintf("chunk size must be non-negative, got %d", chunkSize), nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkFresh(op); err != nil {
		return 0, err
	}

	if chunkSize == 0 {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return 0, newError(KindIO, op, "read failed", err)
		}
		s.update(data)
		return int64(len(data)), nil
	}

	var total int64
	buf := make([]byte, chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		n, err := r.Read(buf)
		if n > 0 {
			s.update(buf[:n])
			total += int64(n)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return total, nil
			}
			return total, newError(KindIO, op, "read failed", err)
		}
	}
}

// UpdateFile streams the file at path into the session.
func (s *Session) UpdateFile(ctx context.Context, path string, chunkSize int) (int64, error) {
	if path == "" {
		return 0, newError(KindIO, "update", "file path must be non-empty", nil)
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, newError(KindIO, "update", fmt.Sprintf("open file %q", path), err)
	}
	defer f.Close()

	if chunkSize == 0 {
		chunkSize = DefaultChunkSize
	}
	return s.UpdateReader(ctx, f, chunkSize)
}

// HashMessage returns the digest of data for a single algorithm.
func HashMessage(id algorithms.ID, data []byte, opts ...Option) (digests.Digest, error) {
	s, err := newSingle("hash", id, opts)
	if err != nil {
		return digests.Digest{}, err
	}
	defer s.Close()

	if err := s.Update(data); err != nil {
		return digests.Digest{}, err
	}
	if err := s.Finish(); err != nil {
		return digests.Digest{}, err
	}
	return s.Digest(id)
}

// HashFile returns the digest of the file at path for a single algorithm.
func HashFile(ctx context.Context, id algorithms.ID, path string, opts ...Option) (digests.Digest, error) {
	s, err := newSingle("hash", id, opts)
	if err != nil {
		return digests.Digest{}, err
	}
	defer s.Close()

	if _, err := s.UpdateFile(ctx, path, DefaultChunkSize); err != nil {
		return digests.Digest{}, err
	}
	if err := s.Finish(); err != nil {
		return digests.Digest{}, err
	}
	return s.Digest(id)
}

// MagnetForFile hashes the file at path with ids and returns its magnet
// link, named after the file's base name.
func MagnetForFile(ctx context.Context, path string, ids algorithms.Set, opts ...Option) (string, error) {
	s, err := New(ids, opts...)
	if err != nil {
		return "", err
	}
	defer s.Close()

	if _, err := s.UpdateFile(ctx, path, DefaultChunkSize); err != nil {
		return "", err
	}
	if err := s.Finish(); err != nil {
		return "", err
	}
	return s.Magnet(filepath.Base(path))
}

func newSingle(op string, id algorithms.ID, opts []Option) (*Session, error) {
	if !id.Valid() {
		return nil, &Error{Kind: KindUnknownAlgorithm, Op: op, Algorithm: id,
			Cause: algorithms.ErrUnknownAlgorithm}
	}
	return New(algorithms.NewSet(id), opts...)
}
