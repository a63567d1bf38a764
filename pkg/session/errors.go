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
	"errors"
	"fmt"

	"github.com/rhash/RHash/pkg/algorithms"
)

// ErrorKind represents the category of a session error.
type ErrorKind int

const (
	// KindUnknown indicates an unclassified error.
	KindUnknown ErrorKind = iota

	// KindInvalidSelection indicates an empty algorithm selection.
	KindInvalidSelection

	// KindUnknownAlgorithm indicates a bit pattern or id outside the catalog.
	KindUnknownAlgorithm

	// KindInvalidRange indicates an out-of-bounds byte range.
	KindInvalidRange

	// KindFinishedState indicates a mutation of a finished session.
	KindFinishedState

	// KindNotFinished indicates a digest query before Finish.
	KindNotFinished

	// KindUnselectedAlgorithm indicates a digest query for an algorithm
	// outside the selection.
	KindUnselectedAlgorithm

	// KindClosed indicates use of a closed session.
	KindClosed

	// KindProvider indicates the algorithm provider could not serve the
	// selection.
	KindProvider

	// KindIO indicates a read failure while feeding the session.
	KindIO

	// KindSnapshot indicates a snapshot could not be taken or restored.
	KindSnapshot
)

// String returns a human-readable name for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindInvalidSelection:
		return "InvalidSelection"
	case KindUnknownAlgorithm:
		return "UnknownAlgorithm"
	case KindInvalidRange:
		return "InvalidRange"
	case KindFinishedState:
		return "FinishedState"
	case KindNotFinished:
		return "NotFinished"
	case KindUnselectedAlgorithm:
		return "UnselectedAlgorithm"
	case KindClosed:
		return "Closed"
	case KindProvider:
		return "ProviderError"
	case KindIO:
		return "IOError"
	case KindSnapshot:
		return "SnapshotError"
	default:
		return "UnknownError"
	}
}

// Error is the error type returned by Session operations.
//
// Callers match a category either with errors.Is against the sentinel
// values below or with IsKind:
//
//	if errors.Is(err, session.ErrNotFinished) {
//	    // call Finish first
//	}
type Error struct {
	// Kind categorizes the error for programmatic handling.
	Kind ErrorKind

	// Op is the session operation that failed, e.g. "update".
	Op string

	// Algorithm is the algorithm involved, if any.
	Algorithm algorithms.ID

	// Message is a human-readable description of what went wrong.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

// Sentinel values for errors.Is. They carry only a Kind.
var (
	ErrInvalidSelection    = &Error{Kind: KindInvalidSelection}
	ErrUnknownAlgorithm    = &Error{Kind: KindUnknownAlgorithm}
	ErrInvalidRange        = &Error{Kind: KindInvalidRange}
	ErrFinished            = &Error{Kind: KindFinishedState}
	ErrNotFinished         = &Error{Kind: KindNotFinished}
	ErrUnselectedAlgorithm = &Error{Kind: KindUnselectedAlgorithm}
	ErrClosed              = &Error{Kind: KindClosed}
)

// ErrSnapshotUnsupported is the cause reported when the provider context
// cannot export its state.
var ErrSnapshotUnsupported = errors.New("provider context does not support snapshots")

func newError(kind ErrorKind, op, message string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Algorithm != 0 {
		msg = fmt.Sprintf("%s (algorithm: %s)", msg, e.Algorithm)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Cause != nil {
		return fmt.Sprintf("session: %s: %v", msg, e.Cause)
	}
	return "session: " + msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a sentinel of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t == e {
		return true
	}
	return t.Op == "" && t.Message == "" && t.Cause == nil && t.Algorithm == 0 && t.Kind == e.Kind
}

// IsKind reports whether err is a session error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind == kind
	}
	return false
}
