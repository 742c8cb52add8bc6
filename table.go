// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fwf

// Table is the result of ReadFWF: an ordered list of named columns, all
// of equal length.
type Table struct {
	Names   []string
	Columns []Column
}

// NumRows returns the row count shared by every column, or 0 for a
// table with no columns.
func (t *Table) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return t.Columns[0].Len()
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.Columns) }

// Column is one finalized, typed, nullable column. Exactly one of
// Bools, Ints, Floats, Strs, Bins holds data, selected by Type; the
// others are nil. Nulls[i] true means the cell at row i has no value,
// regardless of whatever zero value sits in the typed slice at i.
type Column struct {
	Type   Type
	Nulls  []bool
	Bools  []bool
	Ints   []int64
	Floats []float64
	Strs   []string
	Bins   [][]byte
}

// Len returns the column's row count.
func (c Column) Len() int { return len(c.Nulls) }

// IsNull reports whether row i is null.
func (c Column) IsNull(i int) bool { return c.Nulls[i] }
