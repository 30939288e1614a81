/*
NAME
  aerr.go

DESCRIPTION
  aerr provides the encoder's error taxonomy: InvalidArgument for bad
  caller input, EncodeFailed for internal invariant violations, and the
  informational Empty used by receive_packet. It also holds the
  last-error slot described by the encoder's error handling design so
  that callers without idiomatic Go error values (e.g. a C ABI) can
  retrieve a human-readable message.

LICENSE
  Copyright (C) 2026 Blackfin Media. All Rights Reserved.
*/

// Package aerr defines the av1enc error taxonomy and the last-error slot.
package aerr

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
)

// Kind classifies an av1enc error per the encoder's error handling design.
type Kind int

const (
	// InvalidArgument indicates a caller supplied an out-of-range or
	// otherwise malformed argument. The encoder remains usable.
	InvalidArgument Kind = iota

	// EncodeFailed indicates an internal invariant was violated. This
	// should be unreachable given validated input; the encoder is left
	// in a defined but unusable state after this error.
	EncodeFailed

	// Empty is informational: receive_packet has no packet ready.
	Empty
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "InvalidArgument"
	case EncodeFailed:
		return "EncodeFailed"
	case Empty:
		return "Empty"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned across the av1enc API
// boundary. It carries a Kind so callers can branch on error category
// without string matching.
type Error struct {
	Kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

// Unwrap allows errors.Is/errors.As to see through to the wrapped cause.
func (e *Error) Unwrap() error { return e.err }

// New builds an Error of the given kind with a static message, recording
// it in the last-error slot.
func New(kind Kind, msg string) error {
	e := &Error{Kind: kind, msg: msg}
	record(e)
	return e
}

// Wrap builds an Error of the given kind wrapping cause, recording it in
// the last-error slot. cause is wrapped with errors.Wrap so that a %+v
// format still shows the originating stack, matching the teacher's
// h264dec error-wrapping convention.
func Wrap(kind Kind, cause error, msg string) error {
	if cause == nil {
		return New(kind, msg)
	}
	e := &Error{Kind: kind, msg: msg, err: errors.Wrap(cause, msg)}
	record(e)
	return e
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

var (
	mu   sync.Mutex
	last string
)

// record stores err's message in the last-error slot. It is called only
// from New/Wrap so every constructed Error updates the slot, matching the
// "human-readable message retrievable via a ... last-error slot"
// requirement without exposing a bare package-level error value.
func record(err error) {
	mu.Lock()
	defer mu.Unlock()
	last = err.Error()
}

// LastErrorMessage returns the message of the most recently constructed
// Error, or the empty string if none has been constructed yet.
func LastErrorMessage() string {
	mu.Lock()
	defer mu.Unlock()
	return last
}
