// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ferr is the one error type every pipeline stage raises, kept
// in its own package so internal collaborators and the root package
// can both construct and compare it without an import cycle.
package ferr

import "fmt"

// Kind classifies a failure raised by the package. Callers should
// compare with errors.Is against a sentinel, not by parsing Msg.
type Kind int

const (
	InvalidOption Kind = iota + 1
	UnknownEncoding
	BufferTooSmall
	ShortRow
	OverlongRow
	ConversionError
	IOError
)

func (k Kind) String() string {
	switch k {
	case InvalidOption:
		return "InvalidOption"
	case UnknownEncoding:
		return "UnknownEncoding"
	case BufferTooSmall:
		return "BufferTooSmall"
	case ShortRow:
		return "ShortRow"
	case OverlongRow:
		return "OverlongRow"
	case ConversionError:
		return "ConversionError"
	case IOError:
		return "IOError"
	default:
		return "Unknown"
	}
}

// Error is the package's single error type. Offset is a byte offset
// into the source; Row and Col are zero-based indices into the parsed
// row and declared field list, when known (-1 otherwise).
type Error struct {
	Kind   Kind
	Msg    string
	Offset int64
	Row    int
	Col    int

	err error
}

func (e *Error) Error() string {
	switch {
	case e.Row >= 0 && e.Col >= 0:
		return fmt.Sprintf("fwf: %s: %s (row %d, col %d, offset %d)", e.Kind, e.Msg, e.Row, e.Col, e.Offset)
	case e.Offset != 0:
		return fmt.Sprintf("fwf: %s: %s (offset %d)", e.Kind, e.Msg, e.Offset)
	default:
		return fmt.Sprintf("fwf: %s: %s", e.Kind, e.Msg)
	}
}

func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is a *Error with the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New builds an *Error with no row/col coordinates.
func New(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
		Row:  -1,
		Col:  -1,
		err:  cause,
	}
}

// NewCoord builds an *Error with row/col/offset coordinates attached.
func NewCoord(kind Kind, row, col int, offset int64, format string, args ...interface{}) *Error {
	return &Error{
		Kind:   kind,
		Msg:    fmt.Sprintf(format, args...),
		Offset: offset,
		Row:    row,
		Col:    col,
	}
}
