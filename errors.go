// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fwf

import "github.com/kardianos/fwf/internal/ferr"

// ErrorKind classifies a failure raised by the package. Compare it
// with errors.Is against the sentinel *Error values below, not by
// parsing the message.
type ErrorKind = ferr.Kind

const (
	InvalidOption   = ferr.InvalidOption
	UnknownEncoding = ferr.UnknownEncoding
	BufferTooSmall  = ferr.BufferTooSmall
	ShortRow        = ferr.ShortRow
	OverlongRow     = ferr.OverlongRow
	ConversionError = ferr.ConversionError
	IOError         = ferr.IOError
)

// Error is the single error type fwf returns. It carries enough
// coordinates to locate the failure in the input.
type Error = ferr.Error

// Sentinel values usable with errors.Is(err, fwf.ErrInvalidOption).
var (
	ErrInvalidOption   = &Error{Kind: InvalidOption, Row: -1, Col: -1}
	ErrUnknownEncoding = &Error{Kind: UnknownEncoding, Row: -1, Col: -1}
	ErrBufferTooSmall  = &Error{Kind: BufferTooSmall, Row: -1, Col: -1}
	ErrShortRow        = &Error{Kind: ShortRow, Row: -1, Col: -1}
	ErrOverlongRow     = &Error{Kind: OverlongRow, Row: -1, Col: -1}
	ErrConversion      = &Error{Kind: ConversionError, Row: -1, Col: -1}
	ErrIO              = &Error{Kind: IOError, Row: -1, Col: -1}
)

func newError(kind ErrorKind, cause error, format string, args ...interface{}) *Error {
	return ferr.New(kind, cause, format, args...)
}
