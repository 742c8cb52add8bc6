// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package infer implements the per-column type lattice promotion:
// observing trimmed field bytes and widening a column's candidate type,
// starting from NULL; a candidate type is never narrowed.
package infer

import (
	"github.com/kardianos/fwf/internal/convert"
	"github.com/kardianos/fwf/internal/convopts"
	"github.com/kardianos/fwf/internal/ferr"
	"github.com/kardianos/fwf/internal/ftype"
)

// Options bundles the null/true/false value sets and COBOL overpunch
// tables needed to classify a field during inference.
type Options = convopts.Options

// State tracks one column's inference progress. A column whose type
// was declared by the caller is Fixed and Observe becomes a no-op.
type State struct {
	Type  ftype.Type
	fixed bool
}

// Fixed returns a State pinned to t, bypassing inference.
func Fixed(t ftype.Type) State {
	return State{Type: t, fixed: true}
}

// Observe classifies one trimmed field and promotes the state's Type
// upward in the lattice if the current candidate can't represent it.
// Promotion never narrows: once a column is STRING it stays STRING.
func (s *State) Observe(opts Options, trimmed []byte) {
	if s.fixed {
		return
	}
	if convert.IsNull(trimmed, opts.NullValues) {
		return // NULL observation never promotes
	}
	if s.Type == ftype.String {
		return // already widest, nothing left to try
	}

	if _, ok := convert.ParseBool(trimmed, opts.TrueValues, opts.FalseValues); ok {
		s.promote(ftype.Bool)
		return
	}
	if _, err := convert.ParseInt64(trimmed, opts.IsCobol, opts.PosValues, opts.NegValues); err == nil {
		s.promote(ftype.Int64)
		return
	}
	if _, err := convert.ParseFloat64(trimmed); err == nil {
		s.promote(ftype.Float64)
		return
	}
	s.promote(ftype.String)
}

func (s *State) promote(t ftype.Type) {
	if s.Type.Less(t) {
		s.Type = t
	}
}

// ErrUnsupported is returned by a caller-declared column type this
// package doesn't know how to validate against, kept here so
// coordinate can surface a consistent InvalidOption error.
var ErrUnsupported = ferr.New(ferr.InvalidOption, nil, "unsupported declared column type")
