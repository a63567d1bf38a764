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
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/rhash/RHash/pkg/algorithms"
	"github.com/rhash/RHash/pkg/hashing/provider"
)

const snapshotSchemaVersion uint16 = 1

// snapshotPayload is the msgpack form of a session.
type snapshotPayload struct {
	// Schema version for safe invalidation when the format changes
	Schema uint16 `msgpack:"schema"`

	Selection uint64            `msgpack:"selection"`
	Finished  bool              `msgpack:"finished"`
	Size      uint64            `msgpack:"size"`
	States    map[uint64][]byte `msgpack:"states"`
}

// Snapshot serializes the running state of the session so that hashing can
// resume later, possibly in another process, with Restore.
//
// It fails with ErrSnapshotUnsupported as the cause when the provider
// context cannot export the state of every selected algorithm.
func (s *Session) Snapshot() ([]byte, error) {
	const op = "snapshot"
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(op); err != nil {
		return nil, err
	}
	exp, ok := s.ctx.(provider.Exporter)
	if !ok {
		return nil, newError(KindSnapshot, op, "", ErrSnapshotUnsupported)
	}
	states, err := exp.Export()
	if err != nil {
		return nil, newError(KindSnapshot, op, "", fmt.Errorf("%w: %w", ErrSnapshotUnsupported, err))
	}

	payload := snapshotPayload{
		Schema:    snapshotSchemaVersion,
		Selection: uint64(s.selection),
		Finished:  s.finished,
		Size:      s.size,
		States:    make(map[uint64][]byte, len(states)),
	}
	for id, state := range states {
		payload.States[uint64(id)] = state
	}

	data, err := msgpack.Marshal(&payload)
	if err != nil {
		return nil, newError(KindSnapshot, op, "encode failed", err)
	}
	s.logger.WithField("bytes", s.size).Debugln("session snapshot taken")
	return data, nil
}

// Restore rebuilds a session from Snapshot output. The provider chosen with
// WithProvider must be able to import the recorded state.
func Restore(data []byte, opts ...Option) (*Session, error) {
	const op = "restore"
	var payload snapshotPayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, newError(KindSnapshot, op, "decode failed", err)
	}
	if payload.Schema != snapshotSchemaVersion {
		return nil, newError(KindSnapshot, op,
			fmt.Sprintf("unsupported snapshot schema %d", payload.Schema), nil)
	}

	s, err := New(algorithms.Set(payload.Selection), opts...)
	if err != nil {
		return nil, err
	}
	imp, ok := s.ctx.(provider.Exporter)
	if !ok {
		_ = s.Close()
		return nil, newError(KindSnapshot, op, "", ErrSnapshotUnsupported)
	}
	states := make(map[algorithms.ID][]byte, len(payload.States))
	for id, state := range payload.States {
		states[algorithms.ID(id)] = state
	}
	if err := imp.Import(states); err != nil {
		_ = s.Close()
		return nil, newError(KindSnapshot, op, "import failed", err)
	}

	s.size = payload.Size
	if payload.Finished {
		s.ctx.Finalize()
		s.finished = true
	}
	s.logger.WithField("bytes", s.size).Debugln("session restored")
	return s, nil
}
