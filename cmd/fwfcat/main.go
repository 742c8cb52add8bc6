// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command fwfcat reads a fixed-width file and prints its resolved
// schema and row count.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/kardianos/fwf"
	"github.com/kardianos/fwf/internal/optionsfile"
	"github.com/kardianos/fwf/internal/start"
)

var (
	file     = flag.String("file", "", "path to the fixed-width input file")
	widths   = flag.String("widths", "", "comma-separated field byte widths, e.g. 6,6,10")
	config   = flag.String("config", "", "directory to load field widths/encoding/cobol from, instead of -widths")
	encoding = flag.String("encoding", "", "input codepage, e.g. CP1047 or Big5; empty means UTF-8")
	cobol    = flag.Bool("cobol", false, "enable COBOL signed-overpunch numeric conversion")
	noHeader = flag.Bool("no-header", false, "treat row 0 as data, not a header")
)

func main() {
	flag.Parse()
	if err := start.Start(context.Background(), 5*time.Second, run); err != nil {
		log.Print(err)
	}
}

func run(ctx context.Context) error {
	return start.RunAll(ctx, cat)
}

func cat(ctx context.Context) error {
	if *file == "" {
		return fmt.Errorf("fwfcat: -file is required")
	}

	fieldWidths, enc, isCobol, err := resolveLayout()
	if err != nil {
		return err
	}

	parseOpts, err := fwf.NewParseOptions(fieldWidths)
	if err != nil {
		return err
	}
	if *noHeader {
		parseOpts.HeaderRows = 0
	}

	src, err := fwf.NewFileSource(*file)
	if err != nil {
		return err
	}

	readOpts := fwf.DefaultReadOptions()
	readOpts.Encoding = enc
	convertOpts := fwf.DefaultConvertOptions()
	convertOpts.IsCobol = isCobol

	table, err := fwf.ReadFWF(src, parseOpts, &readOpts, &convertOpts)
	if err != nil {
		return err
	}

	fmt.Printf("%d rows, %d columns\n", table.NumRows(), table.NumCols())
	for i, name := range table.Names {
		fmt.Printf("  %-20s %s\n", name, table.Columns[i].Type)
	}
	return nil
}

func resolveLayout() (fieldWidths []int, enc string, isCobol bool, err error) {
	if *config != "" {
		spec, err := optionsfile.Load(*config)
		if err != nil {
			return nil, "", false, err
		}
		return spec.FieldWidths, spec.Encoding, spec.IsCobol, nil
	}
	if *widths == "" {
		return nil, "", false, fmt.Errorf("fwfcat: one of -widths or -config is required")
	}
	fieldWidths, err = parseWidths(*widths)
	if err != nil {
		return nil, "", false, err
	}
	return fieldWidths, *encoding, *cobol, nil
}

func parseWidths(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		w, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("fwfcat: invalid width %q: %w", p, err)
		}
		out = append(out, w)
	}
	return out, nil
}
