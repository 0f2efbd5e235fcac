// Package jxlerr defines the error taxonomy surfaced by the codec to its
// caller. Every fallible operation in the encoder and decoder returns an
// error built from one of the Kinds below, wrapped with the underlying
// cause where one exists.
package jxlerr

import (
	stderrors "errors"
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a codec error without pinning down its exact Go type,
// mirroring the error-union approach used throughout the reference corpus
// (a flat taxonomy rather than one exported type per failure).
type Kind int

// Error kinds surfaced to the host. See spec section 7.
const (
	// InvalidSignature indicates a container or codestream signature
	// mismatch.
	InvalidSignature Kind = iota
	// InvalidBitstream indicates a structural parse failure, early EOF, or
	// a table post-condition violation.
	InvalidBitstream
	// InvalidDimensions indicates a width or height of zero or one that
	// exceeds 2^28.
	InvalidDimensions
	// InvalidParameter indicates a zero-frequency symbol encoded, an
	// empty frequency table, a zero alphabet size, a wrong-size scale
	// map, or a channel count out of range.
	InvalidParameter
	// UnsupportedFeature indicates a channel count below 3 on the VarDCT
	// path, a custom color encoding without an ICC profile, or an
	// unrecognized extra-channel type.
	UnsupportedFeature
	// BufferTooSmall indicates the caller-supplied output buffer cannot
	// hold the next write.
	BufferTooSmall
	// IoError wraps an error surfaced from the byte sink or source.
	IoError
)

func (k Kind) String() string {
	switch k {
	case InvalidSignature:
		return "invalid signature"
	case InvalidBitstream:
		return "invalid bitstream"
	case InvalidDimensions:
		return "invalid dimensions"
	case InvalidParameter:
		return "invalid parameter"
	case UnsupportedFeature:
		return "unsupported feature"
	case BufferTooSmall:
		return "buffer too small"
	case IoError:
		return "io error"
	default:
		return "unknown error"
	}
}

// Error is a codec error tagged with a Kind, optionally wrapping a cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("jxl: %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("jxl: %s: %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is/errors.As to see through to the wrapped cause.
func (e *Error) Unwrap() error { return e.Cause }

// New returns a new error of the given kind with a formatted message.
func New(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps cause as an error of the given kind, adding a formatted
// message and a stack trace via github.com/pkg/errors the way the teacher's
// errutil helper wraps plain io/bitio errors.
func Wrap(cause error, kind Kind, format string, args ...interface{}) error {
	if cause == nil {
		return nil
	}
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Cause:   errors.WithStack(cause),
	}
}

// Is reports whether err (or any error it wraps) is a *Error of kind k.
func Is(err error, k Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Kind == k {
			return true
		}
		err = stderrors.Unwrap(err)
	}
	return false
}
