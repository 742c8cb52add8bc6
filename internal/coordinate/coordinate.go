// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coordinate drives the read pipeline end to end: it pulls
// blocks from a source, transcodes and splits them into rows, resolves
// the header and schema, and — when enabled — fans block conversion out
// across a bounded worker pool while keeping output rows in input
// order, the way internal/start.RunAll fans independent services out
// across an errgroup.
package coordinate

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/kardianos/fwf/internal/column"
	"github.com/kardianos/fwf/internal/convert"
	"github.com/kardianos/fwf/internal/convopts"
	"github.com/kardianos/fwf/internal/ferr"
	"github.com/kardianos/fwf/internal/ftype"
	"github.com/kardianos/fwf/internal/infer"
	"github.com/kardianos/fwf/internal/rowfmt"
	"github.com/kardianos/fwf/internal/source"
	"github.com/kardianos/fwf/internal/split"
	"github.com/kardianos/fwf/internal/transcode"
)

// ParseSpec mirrors the row-shape fields of fwf.ParseOptions.
type ParseSpec struct {
	FieldWidths      []int
	HeaderRows       int
	IgnoreEmptyLines bool
	SkipColumns      map[int]struct{}
}

// ReadSpec mirrors the byte-stream fields of fwf.ReadOptions.
type ReadSpec struct {
	Encoding           string
	UseThreads         bool
	BlockSize          int
	BufferSafetyFactor float64
	SkipRows           int
	ColumnNames        []string
}

// ConvertSpec mirrors fwf.ConvertOptions: per-column declared types plus
// the shared value-conversion options.
type ConvertSpec struct {
	ColumnTypes map[string]ftype.Type
	Values      convopts.Options
}

// Result is the coordinator's output: resolved column names alongside
// their finalized columns, in field order after skip_columns.
type Result struct {
	Names   []string
	Columns []column.Column
}

// Run executes the full pipeline against src and returns the
// assembled table. It is the single code path for both use_threads
// settings: false runs every block through the same per-block
// conversion function inline, true fans the same function out across a
// bounded worker pool, so the two modes cannot diverge in behavior.
func Run(ctx context.Context, src source.Source, parse ParseSpec, read ReadSpec, conv ConvertSpec) (*Result, error) {
	for i := range parse.SkipColumns {
		if i < 0 || i >= len(parse.FieldWidths) {
			return nil, ferr.New(ferr.InvalidOption, nil, "skip_columns index %d out of range for %d field widths", i, len(parse.FieldWidths))
		}
	}

	tc, err := transcode.New(read.Encoding, read.BufferSafetyFactor)
	if err != nil {
		return nil, err
	}
	sp := split.New(parse.IgnoreEmptyLines)
	puller := &rowPuller{src: src, tc: tc, sp: sp, blockSize: read.BlockSize}

	colCount := len(parse.FieldWidths) - len(parse.SkipColumns)

	names, err := resolveHeader(puller, parse, read)
	if err != nil {
		return nil, err
	}

	declared := make([]ftype.Type, colCount)
	fixed := make([]bool, colCount)
	for i, name := range names {
		if t, ok := conv.ColumnTypes[name]; ok {
			if t == ftype.Null {
				return nil, infer.ErrUnsupported
			}
			declared[i] = t
			fixed[i] = true
		}
	}

	var batches []dataBatch
	for {
		seq, row, ok, err := puller.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if len(batches) == 0 || batches[len(batches)-1].seq != seq {
			batches = append(batches, dataBatch{seq: seq})
		}
		b := &batches[len(batches)-1]
		b.rows = append(b.rows, row)
	}

	if len(batches) == 0 {
		cols := make([]column.Column, colCount)
		for i := range cols {
			t := ftype.Null
			if fixed[i] {
				t = declared[i]
			}
			cols[i] = column.Column{Type: t}
		}
		return &Result{Names: names, Columns: cols}, nil
	}

	types := make([]ftype.Type, colCount)
	for i := range types {
		if fixed[i] {
			types[i] = declared[i]
		}
	}
	types = inferTypes(batches[0].rows, parse, types, fixed, conv.Values)

	chunksByCol := make([][]column.Column, colCount)
	firstCols, firstTypes, err := processBatch(batches[0].rows, parse, types, fixed, conv.Values)
	if err != nil {
		return nil, err
	}
	registry := firstTypes
	for i := range chunksByCol {
		chunksByCol[i] = []column.Column{firstCols[i]}
	}

	rest := batches[1:]
	var restCols [][]column.Column
	var restTypes [][]ftype.Type
	if read.UseThreads {
		restCols, restTypes, err = runConcurrent(ctx, rest, parse, registry, fixed, conv.Values)
	} else {
		restCols, restTypes, err = runSequential(rest, parse, registry, fixed, conv.Values)
	}
	if err != nil {
		return nil, err
	}

	for bi := range rest {
		for i := 0; i < colCount; i++ {
			c := restCols[bi][i]
			t := restTypes[bi][i]
			switch {
			case registry[i].Less(t):
				registry[i] = t
				for j, old := range chunksByCol[i] {
					if old.Type.Less(registry[i]) {
						chunksByCol[i][j] = column.FromColumn(old, conv.Values).Widen(registry[i]).Finalize()
					}
				}
			case t.Less(registry[i]):
				c = column.FromColumn(c, conv.Values).Widen(registry[i]).Finalize()
			}
			chunksByCol[i] = append(chunksByCol[i], c)
		}
	}

	cols := make([]column.Column, colCount)
	for i := range cols {
		cols[i] = column.Concat(chunksByCol[i])
	}
	return &Result{Names: names, Columns: cols}, nil
}

type dataBatch struct {
	seq  int
	rows [][]byte
}

// rowPuller flattens the sequential source -> transcode -> split stage
// into one row at a time, tagging each with the sequence number of the
// block that produced it. Blocks are only read as rows are demanded.
type rowPuller struct {
	src       source.Source
	tc        *transcode.Transcoder
	sp        *split.Splitter
	blockSize int

	pending [][]byte
	curSeq  int
	nextSeq int
	done    bool
}

func (p *rowPuller) next() (seq int, row []byte, ok bool, err error) {
	for len(p.pending) == 0 {
		if p.done {
			return 0, nil, false, nil
		}
		raw, eof, err := p.src.ReadBlock(p.blockSize)
		if err != nil {
			return 0, nil, false, err
		}
		out, err := p.tc.Transcode(raw, eof)
		if err != nil {
			return 0, nil, false, err
		}
		p.pending = p.sp.Split(out, eof)
		p.curSeq = p.nextSeq
		p.nextSeq++
		if eof {
			p.done = true
		}
	}
	// Split's rows are only valid until its next call, but callers keep
	// rows across blocks, so hand out a copy.
	row = append([]byte(nil), p.pending[0]...)
	p.pending = p.pending[1:]
	return p.curSeq, row, true, nil
}

// resolveHeader drops skip_rows rows, then either trusts
// read.ColumnNames verbatim or consumes parse.HeaderRows rows, taking
// column names from row 0 of those, trimmed. Names are resolved from
// the unfiltered field list and then filtered by skip_columns.
func resolveHeader(puller *rowPuller, parse ParseSpec, read ReadSpec) ([]string, error) {
	for remaining := read.SkipRows; remaining > 0; remaining-- {
		_, _, ok, err := puller.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
	}

	if len(read.ColumnNames) > 0 {
		return filterNames(read.ColumnNames, parse), nil
	}

	var raw []string
	for remaining, seen := parse.HeaderRows, false; remaining > 0; remaining-- {
		_, row, ok, err := puller.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if !seen {
			fields := rowfmt.Split(row, parse.FieldWidths, nil)
			raw = make([]string, len(fields))
			for i, f := range fields {
				raw[i] = string(convert.Trim(f))
			}
			seen = true
		}
	}
	return filterNames(raw, parse), nil
}

func filterNames(raw []string, parse ParseSpec) []string {
	names := make([]string, 0, len(parse.FieldWidths)-len(parse.SkipColumns))
	for i := range parse.FieldWidths {
		if _, dropped := parse.SkipColumns[i]; dropped {
			continue
		}
		if i < len(raw) {
			names = append(names, raw[i])
		} else {
			names = append(names, syntheticName(i))
		}
	}
	return names
}

func syntheticName(i int) string {
	const digits = "0123456789"
	if i < 10 {
		return "col" + string(digits[i])
	}
	buf := []byte("col")
	var tmp []byte
	for n := i; n > 0; n /= 10 {
		tmp = append(tmp, digits[n%10])
	}
	for j := len(tmp) - 1; j >= 0; j-- {
		buf = append(buf, tmp[j])
	}
	return string(buf)
}

func inferTypes(rows [][]byte, parse ParseSpec, types []ftype.Type, fixed []bool, opts convopts.Options) []ftype.Type {
	states := make([]infer.State, len(types))
	for i, t := range types {
		if fixed[i] {
			states[i] = infer.Fixed(t)
		}
	}
	for _, row := range rows {
		fields := rowfmt.Split(row, parse.FieldWidths, parse.SkipColumns)
		for i, f := range fields {
			states[i].Observe(opts, convert.Trim(f))
		}
	}
	out := make([]ftype.Type, len(types))
	for i := range states {
		out[i] = states[i].Type
	}
	return out
}

// processBatch is the single code path blocks run through, whether
// dispatched to a worker or called inline.
func processBatch(rows [][]byte, parse ParseSpec, types []ftype.Type, fixed []bool, opts convopts.Options) ([]column.Column, []ftype.Type, error) {
	colCount := len(types)
	builders := make([]*column.Builder, colCount)
	for i, t := range types {
		builders[i] = column.New(t, opts)
	}

	for rowIdx, row := range rows {
		fields := rowfmt.Split(row, parse.FieldWidths, parse.SkipColumns)
		for i, f := range fields {
			if fixed[i] {
				if err := builders[i].Append(f); err != nil {
					return nil, nil, ferr.NewCoord(ferr.ConversionError, rowIdx, i, -1,
						"column %d: value %q does not fit declared type %v", i, f, types[i])
				}
				continue
			}
			nb, err := column.AppendWiden(builders[i], f)
			if err != nil {
				return nil, nil, ferr.NewCoord(ferr.ConversionError, rowIdx, i, -1, "column %d: %v", i, err)
			}
			builders[i] = nb
		}
	}

	cols := make([]column.Column, colCount)
	resultTypes := make([]ftype.Type, colCount)
	for i, b := range builders {
		cols[i] = b.Finalize()
		resultTypes[i] = b.Type()
	}
	return cols, resultTypes, nil
}

func runSequential(batches []dataBatch, parse ParseSpec, types []ftype.Type, fixed []bool, opts convopts.Options) ([][]column.Column, [][]ftype.Type, error) {
	cols := make([][]column.Column, len(batches))
	resultTypes := make([][]ftype.Type, len(batches))
	for i, b := range batches {
		c, t, err := processBatch(b.rows, parse, types, fixed, opts)
		if err != nil {
			return nil, nil, err
		}
		cols[i] = c
		resultTypes[i] = t
	}
	return cols, resultTypes, nil
}

// runConcurrent processes batches against a fixed, already-resolved
// schema through a semaphore-bounded errgroup, the way
// internal/start.RunAll bounds and awaits a set of concurrent
// top-level runs. Each batch's schema snapshot is the same: the
// registry only changes once all blocks are in and the coordinator
// reassembles them in sequence, per spec (the first block under a lock,
// subsequent blocks read-only).
func runConcurrent(ctx context.Context, batches []dataBatch, parse ParseSpec, types []ftype.Type, fixed []bool, opts convopts.Options) ([][]column.Column, [][]ftype.Type, error) {
	cols := make([][]column.Column, len(batches))
	resultTypes := make([][]ftype.Type, len(batches))

	maxWorkers := int64(runtime.GOMAXPROCS(0))
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	sem := semaphore.NewWeighted(maxWorkers)
	g, gctx := errgroup.WithContext(ctx)

	for i, b := range batches {
		i, b := i, b
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			c, t, err := processBatch(b.rows, parse, types, fixed, opts)
			if err != nil {
				return err
			}
			cols[i] = c
			resultTypes[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return cols, resultTypes, nil
}
