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

// Package session implements the incremental multi-algorithm hashing
// session.
//
// A Session computes every algorithm of its selection over one byte stream.
// It starts fresh, accepts updates until Finish, then answers digest and
// magnet queries. Reset returns it to the fresh state; Close releases it.
//
//	s, err := session.NewWithIDs(algorithms.MD5, algorithms.SHA1)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//	_ = s.UpdateString("abc")
//	_ = s.Finish()
//	d, _ := s.Digest(algorithms.MD5)
//	fmt.Println(d) // 900150983cd24fb0d6963f7d28e17f72
//
// All methods are safe for concurrent use; calls on one Session are
// serialized. Independent sessions share no mutable state.
package session

import (
	"sync"

	"github.com/rhash/RHash/pkg/algorithms"
	"github.com/rhash/RHash/pkg/hashing/digests"
	"github.com/rhash/RHash/pkg/hashing/provider"
	"github.com/rhash/RHash/pkg/logging"
	"github.com/rhash/RHash/pkg/magnet"
)

// Session is an incremental hashing session over a fixed algorithm
// selection.
type Session struct {
	mu sync.Mutex

	selection algorithms.Set
	defaultID algorithms.ID
	provider  provider.Provider
	logger    logging.Logger

	ctx      provider.Context
	finished bool
	closed   bool
	size     uint64
}

// Option configures a Session.
type Option func(*options)

type options struct {
	provider provider.Provider
	logger   logging.Logger
}

// WithProvider sets the algorithm provider. The default is provider.Default().
func WithProvider(p provider.Provider) Option {
	return func(o *options) {
		o.provider = p
	}
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.provider == nil {
		o.provider = provider.Default()
	}
	o.logger = logging.EnsureLogger(o.logger)
	return o
}

// New creates a fresh session computing every algorithm in selection.
func New(selection algorithms.Set, opts ...Option) (*Session, error) {
	const op = "new"
	if selection.IsEmpty() {
		return nil, newError(KindInvalidSelection, op, "empty algorithm selection", nil)
	}
	if err := selection.Validate(); err != nil {
		return nil, newError(KindUnknownAlgorithm, op, "", err)
	}
	o := buildOptions(opts)

	ctx, err := o.provider.Create(selection)
	if err != nil {
		return nil, newError(KindProvider, op, "failed to create hashing context", err)
	}
	defaultID, _ := selection.Min()

	s := &Session{
		selection: selection,
		defaultID: defaultID,
		provider:  o.provider,
		logger:    o.logger.WithField("algorithms", selection.String()),
		ctx:       ctx,
	}
	s.logger.Debugln("session created")
	return s, nil
}

// NewWithIDs creates a session for the given algorithms.
func NewWithIDs(ids ...algorithms.ID) (*Session, error) {
	return New(algorithms.NewSet(ids...))
}

// checkOpen must be called with s.mu held.
func (s *Session) checkOpen(op string) error {
	if s.closed {
		return newError(KindClosed, op, "session is closed", nil)
	}
	return nil
}

// checkFresh must be called with s.mu held.
func (s *Session) checkFresh(op string) error {
	if err := s.checkOpen(op); err != nil {
		return err
	}
	if s.finished {
		return newError(KindFinishedState, op, "session is finished", nil)
	}
	return nil
}

// checkFinished must be called with s.mu held.
func (s *Session) checkFinished(op string) error {
	if err := s.checkOpen(op); err != nil {
		return err
	}
	if !s.finished {
		return newError(KindNotFinished, op, "session is not finished", nil)
	}
	return nil
}

// update must be called with s.mu held and the session fresh.
func (s *Session) update(p []byte) {
	s.ctx.Update(p)
	s.size += uint64(len(p))
}

// Update feeds b to every selected algorithm.
func (s *Session) Update(b []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkFresh("update"); err != nil {
		return err
	}
	s.update(b)
	return nil
}

// UpdateRange feeds b[offset:offset+length] to every selected algorithm.
// The range is validated before any byte is forwarded.
func (s *Session) UpdateRange(b []byte, offset, length int) error {
	const op = "update"
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(op); err != nil {
		return err
	}
	if offset < 0 || length < 0 || offset > len(b) || length > len(b)-offset {
		return newError(KindInvalidRange, op,
			"range [offset, offset+length) exceeds buffer bounds", nil)
	}
	if err := s.checkFresh(op); err != nil {
		return err
	}
	s.update(b[offset : offset+length])
	return nil
}

// UpdateString feeds the bytes of str.
func (s *Session) UpdateString(str string) error {
	return s.Update([]byte(str))
}

// Write implements io.Writer. It fails once the session is finished.
func (s *Session) Write(p []byte) (int, error) {
	if err := s.Update(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Finish finalizes every algorithm. Calling it again is a no-op.
func (s *Session) Finish() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen("finish"); err != nil {
		return err
	}
	if s.finished {
		return nil
	}
	s.ctx.Finalize()
	s.finished = true
	s.logger.WithField("bytes", s.size).Debugln("session finished")
	return nil
}

// Finished reports whether Finish has been called since creation or the
// last Reset.
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

// Reset discards all processed data and returns the session to its fresh
// state. Digests obtained earlier stay valid.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen("reset"); err != nil {
		return err
	}
	s.ctx.Reset()
	s.finished = false
	s.size = 0
	s.logger.Debugln("session reset")
	return nil
}

// Close releases the hashing context. Every later call except Close fails
// with ErrClosed.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.ctx.Release()
	s.ctx = nil
	s.closed = true
	s.logger.Debugln("session closed")
	return nil
}

// Selection returns the algorithms computed by the session.
func (s *Session) Selection() algorithms.Set {
	return s.selection
}

// DefaultAlgorithm returns the lowest-bit algorithm of the selection.
func (s *Session) DefaultAlgorithm() algorithms.ID {
	return s.defaultID
}

// BytesHashed returns the number of bytes fed since creation or the last
// Reset.
func (s *Session) BytesHashed() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

// digest must be called with s.mu held and the session finished.
func (s *Session) digest(op string, id algorithms.ID) (digests.Digest, error) {
	if !id.Valid() {
		return digests.Digest{}, &Error{Kind: KindUnknownAlgorithm, Op: op, Algorithm: id,
			Cause: algorithms.ErrUnknownAlgorithm}
	}
	if !s.selection.Contains(id) {
		return digests.Digest{}, &Error{Kind: KindUnselectedAlgorithm, Op: op, Algorithm: id,
			Message: "algorithm not selected"}
	}
	raw, err := s.ctx.Digest(id)
	if err != nil {
		return digests.Digest{}, &Error{Kind: KindProvider, Op: op, Algorithm: id, Cause: err}
	}
	return digests.NewDigest(id, raw), nil
}

// Digest returns the finalized digest of id.
func (s *Session) Digest(id algorithms.ID) (digests.Digest, error) {
	const op = "digest"
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkFinished(op); err != nil {
		return digests.Digest{}, err
	}
	return s.digest(op, id)
}

// DefaultDigest returns the digest of DefaultAlgorithm.
func (s *Session) DefaultDigest() (digests.Digest, error) {
	return s.Digest(s.defaultID)
}

// Digests returns the digests of every selected algorithm in catalog order.
func (s *Session) Digests() ([]digests.Digest, error) {
	const op = "digests"
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkFinished(op); err != nil {
		return nil, err
	}
	return s.collect(op, s.selection)
}

// collect must be called with s.mu held and the session finished.
func (s *Session) collect(op string, set algorithms.Set) ([]digests.Digest, error) {
	ids, err := set.IDs()
	if err != nil {
		return nil, newError(KindUnknownAlgorithm, op, "", err)
	}
	out := make([]digests.Digest, 0, len(ids))
	for _, id := range ids {
		d, err := s.digest(op, id)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Magnet builds a magnet link for the finished session. Requested ids
// outside the selection are skipped; with no ids the whole selection is
// used. An empty filename omits the dn parameter.
func (s *Session) Magnet(filename string, ids ...algorithms.ID) (string, error) {
	return s.MagnetWithOptions(filename, magnet.Options{}, ids...)
}

// MagnetWithOptions is Magnet with rendering options.
func (s *Session) MagnetWithOptions(filename string, opts magnet.Options, ids ...algorithms.ID) (string, error) {
	const op = "magnet"
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkFinished(op); err != nil {
		return "", err
	}

	include := s.selection
	if len(ids) > 0 {
		include = 0
		for _, id := range ids {
			if s.selection.Contains(id) {
				include = include.Add(id)
			}
		}
	}
	ds, err := s.collect(op, include)
	if err != nil {
		return "", err
	}
	return magnet.BuildWithOptions(magnet.Descriptor{
		Filename: filename,
		Size:     s.size,
		Digests:  ds,
	}, opts), nil
}
