// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package column implements the append-only, typed, nullable column
// builder the rest of the pipeline assembles rows into, plus the
// widening a builder undergoes when a later value no longer fits its
// resolved type.
//
// A Builder retains each row's full field bytes alongside its typed
// value so that Widen can rebuild the column's typed arrays from
// scratch under a wider type without re-reading the source.
package column

import (
	"github.com/kardianos/fwf/internal/convert"
	"github.com/kardianos/fwf/internal/convopts"
	"github.com/kardianos/fwf/internal/ferr"
	"github.com/kardianos/fwf/internal/ftype"
)

// Builder accumulates one column's values across a single block. The
// coordinator concatenates per-block Columns, in block order, to
// produce the final table column.
type Builder struct {
	typ  ftype.Type
	opts convopts.Options

	nulls []bool
	raw   [][]byte // full, untrimmed field bytes; nil for null rows

	bools  []bool
	ints   []int64
	floats []float64
	strs   []string
	bins   [][]byte
}

// New returns a Builder that will accept values of typ. Declared
// (non-inferred) columns should pass typ as the caller's declared
// type; such a Builder still widens if asked (Widen doesn't know
// whether a type was declared — that policy belongs to the caller),
// but the coordinator never calls Widen for declared columns per
// spec: a declared-type conversion failure is a fatal ConversionError.
func New(typ ftype.Type, opts convopts.Options) *Builder {
	return &Builder{typ: typ, opts: opts}
}

func (b *Builder) Type() ftype.Type { return b.typ }
func (b *Builder) Len() int         { return len(b.nulls) }

// ErrNeedsWiden is returned by Append when full's trimmed value
// doesn't fit the builder's current type and isn't null. The caller
// should call Widen with a wider type and retry Append on the result.
var ErrNeedsWiden = ferr.New(ferr.ConversionError, nil, "value does not fit column type, widening required")

// Append converts one field's full (untrimmed) bytes and stores it.
// Nullness is decided from the ASCII-trimmed bytes: always for
// non-string columns, and for string columns only when
// opts.StringsCanBeNull is set, per the field conversion rules.
func (b *Builder) Append(full []byte) error {
	trimmed := convert.Trim(full)

	nullApplies := b.typ != ftype.String || b.opts.StringsCanBeNull
	if nullApplies && convert.IsNull(trimmed, b.opts.NullValues) {
		b.appendNull()
		return nil
	}

	switch b.typ {
	case ftype.Null:
		return ErrNeedsWiden
	case ftype.Bool:
		v, ok := convert.ParseBool(trimmed, b.opts.TrueValues, b.opts.FalseValues)
		if !ok {
			return ErrNeedsWiden
		}
		b.appendRaw(full)
		b.bools = append(b.bools, v)
		return nil
	case ftype.Int64:
		v, err := convert.ParseInt64(trimmed, b.opts.IsCobol, b.opts.PosValues, b.opts.NegValues)
		if err != nil {
			return ErrNeedsWiden
		}
		b.appendRaw(full)
		b.ints = append(b.ints, v)
		return nil
	case ftype.Float64:
		v, err := convert.ParseFloat64(trimmed)
		if err != nil {
			return ErrNeedsWiden
		}
		b.appendRaw(full)
		b.floats = append(b.floats, v)
		return nil
	case ftype.String:
		b.appendRaw(full)
		b.strs = append(b.strs, string(full))
		return nil
	case ftype.Binary:
		cp := append([]byte(nil), full...)
		b.appendRaw(full)
		b.bins = append(b.bins, cp)
		return nil
	default:
		return ferr.New(ferr.InvalidOption, nil, "unsupported column type %v", b.typ)
	}
}

func (b *Builder) appendRaw(full []byte) {
	cp := append([]byte(nil), full...)
	b.raw = append(b.raw, cp)
	b.nulls = append(b.nulls, false)
}

func (b *Builder) appendNull() {
	b.raw = append(b.raw, nil)
	b.nulls = append(b.nulls, true)
	switch b.typ {
	case ftype.Bool:
		b.bools = append(b.bools, false)
	case ftype.Int64:
		b.ints = append(b.ints, 0)
	case ftype.Float64:
		b.floats = append(b.floats, 0)
	case ftype.String:
		b.strs = append(b.strs, "")
	case ftype.Binary:
		b.bins = append(b.bins, nil)
	}
}

// AppendNull appends an explicit null without reference to field
// bytes.
func (b *Builder) AppendNull() { b.appendNull() }

// Next returns the type one step wider than t in the lattice, the
// escalation coordinate uses to retry a failed Append after widening.
func Next(t ftype.Type) ftype.Type { return nextWider(t) }

func nextWider(t ftype.Type) ftype.Type {
	switch t {
	case ftype.Null:
		return ftype.Bool
	case ftype.Bool:
		return ftype.Int64
	case ftype.Int64:
		return ftype.Float64
	default:
		return ftype.String
	}
}

// Widen rebuilds the column under the narrowest type that is at least
// as wide as minTo and under which every already-stored raw value
// reparses successfully. NULL->T is free (no reparsing needed).
// INT64->FLOAT64 reparses numerically; anything promoted past
// FLOAT64 reparses as STRING, which always succeeds.
func (b *Builder) Widen(minTo ftype.Type) *Builder {
	for t := minTo; ; t = nextWider(t) {
		if nb, ok := b.tryRebuild(t); ok {
			return nb
		}
		if t == ftype.String {
			panic("fwf: internal: string rebuild must always succeed")
		}
	}
}

func (b *Builder) tryRebuild(t ftype.Type) (*Builder, bool) {
	nb := &Builder{typ: t, opts: b.opts}
	nb.nulls = append(nb.nulls, b.nulls...)
	nb.raw = append(nb.raw, b.raw...)

	for i, isNull := range b.nulls {
		if isNull {
			nb.appendZero(t)
			continue
		}
		full := b.raw[i]
		trimmed := convert.Trim(full)
		switch t {
		case ftype.Bool:
			v, ok := convert.ParseBool(trimmed, b.opts.TrueValues, b.opts.FalseValues)
			if !ok {
				return nil, false
			}
			nb.bools = append(nb.bools, v)
		case ftype.Int64:
			v, err := convert.ParseInt64(trimmed, b.opts.IsCobol, b.opts.PosValues, b.opts.NegValues)
			if err != nil {
				return nil, false
			}
			nb.ints = append(nb.ints, v)
		case ftype.Float64:
			v, err := convert.ParseFloat64(trimmed)
			if err != nil {
				return nil, false
			}
			nb.floats = append(nb.floats, v)
		case ftype.String:
			nb.strs = append(nb.strs, string(full))
		default:
			return nil, false
		}
	}
	return nb, true
}

func (b *Builder) appendZero(t ftype.Type) {
	switch t {
	case ftype.Bool:
		b.bools = append(b.bools, false)
	case ftype.Int64:
		b.ints = append(b.ints, 0)
	case ftype.Float64:
		b.floats = append(b.floats, 0)
	case ftype.String:
		b.strs = append(b.strs, "")
	case ftype.Binary:
		b.bins = append(b.bins, nil)
	}
}

// AppendWiden appends full to b, widening and retrying as many times
// as needed when the current type can't hold the value. It returns the
// builder that should replace b in the caller's slot (Widen produces a
// new *Builder rather than mutating in place). A declared (fixed-type)
// column should not call this: the coordinator treats its ErrNeedsWiden
// as a fatal ConversionError instead.
func AppendWiden(b *Builder, full []byte) (*Builder, error) {
	for {
		err := b.Append(full)
		if err == nil {
			return b, nil
		}
		if err != ErrNeedsWiden {
			return b, err
		}
		b = b.Widen(Next(b.Type()))
	}
}

// Column is the finalized result of a Builder. Raw retains each row's
// full field bytes (nil for null rows) so the coordinator can widen an
// already-finalized chunk later, when a subsequent block forces a
// column-wide type promotion; see FromColumn.
type Column struct {
	Type   ftype.Type
	Nulls  []bool
	Raw    [][]byte
	Bools  []bool
	Ints   []int64
	Floats []float64
	Strs   []string
	Bins   [][]byte
}

func (c Column) Len() int { return len(c.Nulls) }

// Finalize snapshots the builder into a Column. The builder must not
// be used afterward.
func (b *Builder) Finalize() Column {
	return Column{
		Type:   b.typ,
		Nulls:  b.nulls,
		Raw:    b.raw,
		Bools:  b.bools,
		Ints:   b.ints,
		Floats: b.floats,
		Strs:   b.strs,
		Bins:   b.bins,
	}
}

// FromColumn reconstructs a Builder capable of widening an
// already-finalized chunk: its typed arrays are rebuilt from Raw by
// Widen, not reused from c.
func FromColumn(c Column, opts convopts.Options) *Builder {
	return &Builder{typ: c.Type, opts: opts, nulls: c.Nulls, raw: c.Raw}
}

// Concat concatenates same-typed column chunks, in order, into one
// Column. All chunks must share the same Type (the coordinator widens
// any non-conforming chunk before calling Concat).
func Concat(chunks []Column) Column {
	if len(chunks) == 0 {
		return Column{}
	}
	out := Column{Type: chunks[0].Type}
	total := 0
	for _, c := range chunks {
		total += c.Len()
	}
	out.Nulls = make([]bool, 0, total)
	switch out.Type {
	case ftype.Bool:
		out.Bools = make([]bool, 0, total)
	case ftype.Int64:
		out.Ints = make([]int64, 0, total)
	case ftype.Float64:
		out.Floats = make([]float64, 0, total)
	case ftype.String:
		out.Strs = make([]string, 0, total)
	case ftype.Binary:
		out.Bins = make([][]byte, 0, total)
	}
	for _, c := range chunks {
		out.Nulls = append(out.Nulls, c.Nulls...)
		switch out.Type {
		case ftype.Bool:
			out.Bools = append(out.Bools, c.Bools...)
		case ftype.Int64:
			out.Ints = append(out.Ints, c.Ints...)
		case ftype.Float64:
			out.Floats = append(out.Floats, c.Floats...)
		case ftype.String:
			out.Strs = append(out.Strs, c.Strs...)
		case ftype.Binary:
			out.Bins = append(out.Bins, c.Bins...)
		}
	}
	return out
}
