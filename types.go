// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fwf

import "github.com/kardianos/fwf/internal/ftype"

// Type is a closed variant describing the value stored in a column.
// See internal/ftype for the lattice it forms.
type Type = ftype.Type

const (
	Null    = ftype.Null
	Bool    = ftype.Bool
	Int64   = ftype.Int64
	Float64 = ftype.Float64
	String  = ftype.String
	Binary  = ftype.Binary
)
