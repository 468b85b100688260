// Copyright 2024 The classfile Authors. All rights reserved.
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE file.

package classfile

import "fmt"

// ErrorKind discriminates the class of failure that aborted a parse.
type ErrorKind int

const (
	// ErrBadMagic means the first four bytes were not 0xCAFEBABE.
	ErrBadMagic ErrorKind = iota

	// ErrTruncated means a read ran past the end of the buffer.
	ErrTruncated

	// ErrTrailingBytes means bytes remained after the top-level parse
	// finished.
	ErrTrailingBytes

	// ErrUnknownConstantTag means a constant pool tag byte is not one of
	// the fourteen tags defined by the JVM spec.
	ErrUnknownConstantTag

	// ErrUnknownReferenceKind means a MethodHandle reference kind fell
	// outside 1..9.
	ErrUnknownReferenceKind

	// ErrUnknownOpcode means an instruction byte is not a defined opcode.
	ErrUnknownOpcode

	// ErrMalformedPool means the constant pool is inconsistent: a Long or
	// Double occupies the final slot, or an index is 0, out of range, on a
	// Long/Double placeholder slot, or refers to an entry of the wrong kind.
	// It is also returned when a recognized attribute's body does not
	// occupy exactly attribute_length bytes. A length that would overrun
	// the buffer is reported as ErrTruncated.
	ErrMalformedPool

	// ErrMalformedCode means the instruction stream is malformed: a
	// reserved operand byte that must be zero is not, or a tableswitch's
	// high is below its low. An instruction that overruns the code window
	// is reported as ErrTruncated.
	ErrMalformedCode

	// ErrInvalidNameIndex means an attribute_name_index did not resolve
	// to a Utf8 constant pool entry.
	ErrInvalidNameIndex

	// ErrInvalidUtf8 means a Utf8 constant's bytes failed UTF-8 decoding
	// where decoding was required (attribute name resolution and
	// ClassFile.Utf8String).
	ErrInvalidUtf8

	// ErrUnknownAttribute means an attribute name was not recognized and
	// the active policy is to reject rather than skip.
	ErrUnknownAttribute

	// ErrUnknownAccessBits means an access-flags field carried bits
	// outside its defined mask and the active policy is to reject them.
	ErrUnknownAccessBits

	// ErrAttributeDepthExceeded means attribute recursion (Code inside
	// Code, transitively) went past the configured ceiling.
	ErrAttributeDepthExceeded
)

func (k ErrorKind) String() string {
	switch k {
	case ErrBadMagic:
		return "bad magic"
	case ErrTruncated:
		return "truncated"
	case ErrTrailingBytes:
		return "trailing bytes"
	case ErrUnknownConstantTag:
		return "unknown constant tag"
	case ErrUnknownReferenceKind:
		return "unknown reference kind"
	case ErrUnknownOpcode:
		return "unknown opcode"
	case ErrMalformedPool:
		return "malformed pool"
	case ErrMalformedCode:
		return "malformed code"
	case ErrInvalidNameIndex:
		return "invalid name index"
	case ErrInvalidUtf8:
		return "invalid utf8"
	case ErrUnknownAttribute:
		return "unknown attribute"
	case ErrUnknownAccessBits:
		return "unknown access bits"
	case ErrAttributeDepthExceeded:
		return "attribute depth exceeded"
	default:
		return "unknown error"
	}
}

// ParseError is the single discriminated error type returned by this
// package. Offset is the byte offset into the input buffer at which the
// failure was detected, when that is locally known; it is -1 otherwise.
type ParseError struct {
	Kind   ErrorKind
	Offset int64
	// Detail carries tag/opcode/name values and similar context. It may
	// be nil.
	Detail any
	// Err wraps an underlying error, when one exists. The decoders in this
	// package leave it nil.
	Err error
}

func (e *ParseError) Error() string {
	if e.Offset >= 0 {
		if e.Detail != nil {
			return fmt.Sprintf("classfile: %s at offset %d: %v", e.Kind, e.Offset, e.Detail)
		}
		return fmt.Sprintf("classfile: %s at offset %d", e.Kind, e.Offset)
	}
	if e.Detail != nil {
		return fmt.Sprintf("classfile: %s: %v", e.Kind, e.Detail)
	}
	return fmt.Sprintf("classfile: %s", e.Kind)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is reports whether target is a *ParseError with the same Kind, so that
// callers can write errors.Is(err, &ParseError{Kind: ErrTruncated}).
func (e *ParseError) Is(target error) bool {
	other, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

func newParseError(kind ErrorKind, offset int64, detail any) *ParseError {
	return &ParseError{Kind: kind, Offset: offset, Detail: detail}
}

func wrapParseError(kind ErrorKind, offset int64, detail any, err error) *ParseError {
	return &ParseError{Kind: kind, Offset: offset, Detail: detail, Err: err}
}
