// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fwf reads fixed-width formatted byte streams into a columnar,
// typed, nullable table.
//
// A fixed-width row is a sequence of bytes partitioned by a fixed
// schedule of byte widths, one per declared column, optionally
// terminated by a line terminator. The package reads such a stream,
// optionally transcoding it from a legacy codepage (including the
// COBOL / EBCDIC signed-overpunch convention for numeric fields),
// infers a type per column from a sample of the data, converts every
// field into that type, and assembles the result into column arrays
// with null bitmaps.
//
// The pipeline is:
//
//	source -> transcode -> split -> rowfmt -> infer/convert -> column -> Table
//
// Reading can be serial or use a bounded worker pool that parses and
// converts blocks concurrently while preserving row order; see
// ReadOptions.UseThreads.
//
// Basic usage:
//
//	parseOpts, err := fwf.NewParseOptions([]int{6, 6})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	table, err := fwf.ReadFWF(fwf.BufferSource(data), parseOpts, nil, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
package fwf
