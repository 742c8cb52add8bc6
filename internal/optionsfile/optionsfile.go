// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package optionsfile loads a column layout from a small directory of
// plain-text files, the way cmd/fwfcat's -config flag lets a layout be
// checked into a repo instead of spelled out on the command line.
package optionsfile

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kardianos/fwf/internal/ferr"
)

// Spec is the subset of options loadable from a directory: a required
// "widths" file (whitespace-separated positive integers, one or more
// per line) plus optional "encoding" and "cobol" files.
type Spec struct {
	FieldWidths []int
	Encoding    string
	IsCobol     bool
}

// Load reads dir, which must contain at least a "widths" file.
func Load(dir string) (Spec, error) {
	if dir == "" {
		return Spec{}, ferr.New(ferr.InvalidOption, nil, "missing configuration directory")
	}
	widths, err := readWidths(filepath.Join(dir, "widths"))
	if err != nil {
		return Spec{}, err
	}
	spec := Spec{FieldWidths: widths}
	if b, err := os.ReadFile(filepath.Join(dir, "encoding")); err == nil {
		spec.Encoding = strings.TrimSpace(string(b))
	}
	if b, err := os.ReadFile(filepath.Join(dir, "cobol")); err == nil {
		spec.IsCobol = strings.TrimSpace(string(b)) == "true"
	}
	return spec, nil
}

func readWidths(path string) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ferr.New(ferr.IOError, err, "reading %q", path)
	}
	defer f.Close()

	var widths []int
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		for _, tok := range strings.Fields(sc.Text()) {
			w, err := strconv.Atoi(tok)
			if err != nil {
				return nil, ferr.New(ferr.InvalidOption, err, "invalid width %q in %q", tok, path)
			}
			widths = append(widths, w)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, ferr.New(ferr.IOError, err, "reading %q", path)
	}
	if len(widths) == 0 {
		return nil, ferr.New(ferr.InvalidOption, nil, "%q declares no field widths", path)
	}
	return widths, nil
}
