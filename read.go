// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fwf

import (
	"context"
	"io"
	"os"

	"github.com/kardianos/fwf/internal/convopts"
	"github.com/kardianos/fwf/internal/coordinate"
	"github.com/kardianos/fwf/internal/source"
)

// Source supplies the bytes ReadFWF parses. The only implementations
// are BufferSource, StreamSource and whatever NewFileSource returns;
// the unexported method keeps the set closed the way the format itself
// is closed (an opaque byte stream, per the external interface).
type Source interface {
	toInternal() source.Source
}

// BufferSource wraps an in-memory byte slice as a Source. The slice is
// read, not copied; callers must not mutate it while ReadFWF runs.
type BufferSource []byte

func (b BufferSource) toInternal() source.Source { return source.NewBuffer([]byte(b)) }

// StreamSource wraps an io.Reader as a Source.
type StreamSource struct{ R io.Reader }

func (s StreamSource) toInternal() source.Source { return source.NewStream(s.R) }

type fileSource struct{ f *os.File }

func (s *fileSource) toInternal() source.Source { return source.NewStream(s.f) }
func (s *fileSource) Close() error               { return s.f.Close() }

// NewFileSource opens path for reading. The returned Source closes the
// file itself once ReadFWF has consumed it.
func NewFileSource(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newError(IOError, err, "opening %q", path)
	}
	return &fileSource{f: f}, nil
}

// ReadFWF parses src into a Table. readOpts and convertOpts may be nil,
// meaning DefaultReadOptions and DefaultConvertOptions respectively.
// parseOpts must come from NewParseOptions (or otherwise carry a
// non-empty FieldWidths).
func ReadFWF(src Source, parseOpts ParseOptions, readOpts *ReadOptions, convertOpts *ConvertOptions) (*Table, error) {
	if len(parseOpts.FieldWidths) == 0 {
		return nil, newError(InvalidOption, nil, "parse_options must be constructed with NewParseOptions")
	}

	ro := DefaultReadOptions()
	if readOpts != nil {
		var err error
		ro, err = NewReadOptions(*readOpts)
		if err != nil {
			return nil, err
		}
	}
	co := DefaultConvertOptions()
	if convertOpts != nil {
		var err error
		co, err = NewConvertOptions(*convertOpts)
		if err != nil {
			return nil, err
		}
	}

	if closer, ok := src.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	result, err := coordinate.Run(context.Background(), src.toInternal(),
		coordinate.ParseSpec{
			FieldWidths:      parseOpts.FieldWidths,
			HeaderRows:       parseOpts.HeaderRows,
			IgnoreEmptyLines: parseOpts.IgnoreEmptyLines,
			SkipColumns:      parseOpts.SkipColumns,
		},
		coordinate.ReadSpec{
			Encoding:           ro.Encoding,
			UseThreads:         ro.UseThreads,
			BlockSize:          ro.BlockSize,
			BufferSafetyFactor: ro.BufferSafetyFactor,
			SkipRows:           ro.SkipRows,
			ColumnNames:        ro.ColumnNames,
		},
		coordinate.ConvertSpec{
			ColumnTypes: co.ColumnTypes,
			Values: convopts.Options{
				NullValues:       co.NullValues,
				TrueValues:       co.TrueValues,
				FalseValues:      co.FalseValues,
				StringsCanBeNull: co.StringsCanBeNull,
				IsCobol:          co.IsCobol,
				PosValues:        co.PosValues,
				NegValues:        co.NegValues,
			},
		},
	)
	if err != nil {
		return nil, err
	}

	cols := make([]Column, len(result.Columns))
	for i, c := range result.Columns {
		cols[i] = Column{
			Type:   c.Type,
			Nulls:  c.Nulls,
			Bools:  c.Bools,
			Ints:   c.Ints,
			Floats: c.Floats,
			Strs:   c.Strs,
			Bins:   c.Bins,
		}
	}
	return &Table{Names: result.Names, Columns: cols}, nil
}
