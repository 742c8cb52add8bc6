// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package convopts carries the value-conversion configuration shared
// by the inferencer, the value converter and the column assembler, so
// none of them need to import the root package.
package convopts

// Options mirrors the value-conversion fields of fwf.ConvertOptions.
type Options struct {
	NullValues       [][]byte
	TrueValues       [][]byte
	FalseValues      [][]byte
	StringsCanBeNull bool
	IsCobol          bool
	PosValues        map[byte]byte
	NegValues        map[byte]byte
}
