// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fwf

import (
	"testing"

	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"
)

func mustParseOptions(t *testing.T, widths []int) ParseOptions {
	t.Helper()
	po, err := NewParseOptions(widths)
	if err != nil {
		t.Fatalf("NewParseOptions: %v", err)
	}
	return po
}

func TestReadFWFHeaderOnly(t *testing.T) {
	po := mustParseOptions(t, []int{2, 3, 1})
	table, err := ReadFWF(BufferSource("abcdef"), po, nil, nil)
	if err != nil {
		t.Fatalf("ReadFWF: %v", err)
	}
	wantNames := []string{"ab", "cde", "f"}
	if table.NumCols() != 3 {
		t.Fatalf("NumCols() = %d, want 3", table.NumCols())
	}
	for i, n := range wantNames {
		if table.Names[i] != n {
			t.Errorf("Names[%d] = %q, want %q", i, table.Names[i], n)
		}
	}
	if table.NumRows() != 0 {
		t.Errorf("NumRows() = %d, want 0", table.NumRows())
	}
}

func TestReadFWFExplicitNamesNoHeader(t *testing.T) {
	po := mustParseOptions(t, []int{1, 2, 3, 3})
	ro := DefaultReadOptions()
	ro.ColumnNames = []string{"a", "b", "c", "d"}
	table, err := ReadFWF(BufferSource("123456789"), po, &ro, nil)
	if err != nil {
		t.Fatalf("ReadFWF: %v", err)
	}
	if table.NumRows() != 1 {
		t.Fatalf("NumRows() = %d, want 1", table.NumRows())
	}
	want := map[string]int64{"a": 1, "b": 23, "c": 456, "d": 789}
	for i, name := range table.Names {
		col := table.Columns[i]
		if col.Type != Int64 {
			t.Fatalf("column %q Type = %v, want Int64", name, col.Type)
		}
		if col.Ints[0] != want[name] {
			t.Errorf("column %q = %d, want %d", name, col.Ints[0], want[name])
		}
	}
}

func TestReadFWFNullsAndBools(t *testing.T) {
	po := mustParseOptions(t, []int{6, 6})
	table, err := ReadFWF(BufferSource("a     b     \r\n null N/A   \r\n123456  true"), po, nil, nil)
	if err != nil {
		t.Fatalf("ReadFWF: %v", err)
	}
	colA, colB := table.Columns[0], table.Columns[1]
	if colA.Type != Int64 {
		t.Fatalf("colA.Type = %v, want Int64", colA.Type)
	}
	if !colA.IsNull(0) || colA.IsNull(1) {
		t.Errorf("colA nulls = [%v %v], want [true false]", colA.IsNull(0), colA.IsNull(1))
	}
	if colA.Ints[1] != 123456 {
		t.Errorf("colA.Ints[1] = %d, want 123456", colA.Ints[1])
	}
	if colB.Type != Bool {
		t.Fatalf("colB.Type = %v, want Bool", colB.Type)
	}
	if !colB.IsNull(0) || colB.IsNull(1) {
		t.Errorf("colB nulls = [%v %v], want [true false]", colB.IsNull(0), colB.IsNull(1))
	}
	if !colB.Bools[1] {
		t.Error("colB.Bools[1] = false, want true")
	}
}

func TestReadFWFCobolOverpunch(t *testing.T) {
	po := mustParseOptions(t, []int{3, 3, 2})
	co := DefaultConvertOptions()
	co.IsCobol = true
	table, err := ReadFWF(BufferSource("a  b  c \r\n1A ab 12\r\n33Jcde34\r\n6}  fg56\r\n 3Dhij78"), po, nil, &co)
	if err != nil {
		t.Fatalf("ReadFWF: %v", err)
	}
	colA, colC := table.Columns[0], table.Columns[2]
	if colA.Type != Int64 {
		t.Fatalf("colA.Type = %v, want Int64", colA.Type)
	}
	wantA := []int64{11, -331, -60, 34}
	for i, w := range wantA {
		if colA.Ints[i] != w {
			t.Errorf("colA.Ints[%d] = %d, want %d", i, colA.Ints[i], w)
		}
	}
	if colC.Type != Int64 {
		t.Fatalf("colC.Type = %v, want Int64", colC.Type)
	}
	wantC := []int64{12, 34, 56, 78}
	for i, w := range wantC {
		if colC.Ints[i] != w {
			t.Errorf("colC.Ints[%d] = %d, want %d", i, colC.Ints[i], w)
		}
	}
}

func TestReadFWFSkipColumns(t *testing.T) {
	po, err := NewParseOptions([]int{3, 3, 3})
	if err != nil {
		t.Fatalf("NewParseOptions: %v", err)
	}
	po.SkipColumns = map[int]struct{}{0: {}, 2: {}}
	table, err := ReadFWF(BufferSource("a  b  c  \r\n11 ab 123\r\n33 cde456\r\n-60 fg789"), po, nil, nil)
	if err != nil {
		t.Fatalf("ReadFWF: %v", err)
	}
	if table.NumCols() != 1 || table.Names[0] != "b" {
		t.Fatalf("Names = %v, want [b]", table.Names)
	}
	col := table.Columns[0]
	if col.Type != String {
		t.Fatalf("col.Type = %v, want String", col.Type)
	}
	want := []string{"ab ", "cde", " fg"}
	for i, w := range want {
		if col.Strs[i] != w {
			t.Errorf("col.Strs[%d] = %q, want %q", i, col.Strs[i], w)
		}
	}
}

func TestReadFWFEncodingPassthroughBig5(t *testing.T) {
	const data = "a     b     \r\n111111222222\r\n333333444444"
	po := mustParseOptions(t, []int{6, 6})

	plain, err := ReadFWF(BufferSource(data), po, nil, nil)
	if err != nil {
		t.Fatalf("ReadFWF(utf8): %v", err)
	}

	encoded, _, err := transform.Bytes(traditionalchinese.Big5.NewEncoder(), []byte(data))
	if err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	ro := DefaultReadOptions()
	ro.Encoding = "Big5"
	encTable, err := ReadFWF(BufferSource(string(encoded)), po, &ro, nil)
	if err != nil {
		t.Fatalf("ReadFWF(Big5): %v", err)
	}

	if plain.Columns[0].Type != Int64 || encTable.Columns[0].Type != Int64 {
		t.Fatalf("Type = %v / %v, want Int64 / Int64", plain.Columns[0].Type, encTable.Columns[0].Type)
	}
	if plain.Columns[1].Type != Int64 || encTable.Columns[1].Type != Int64 {
		t.Fatalf("Type = %v / %v, want Int64 / Int64", plain.Columns[1].Type, encTable.Columns[1].Type)
	}
	for i := range plain.Columns {
		for r := range plain.Columns[i].Ints {
			if plain.Columns[i].Ints[r] != encTable.Columns[i].Ints[r] {
				t.Errorf("column %d row %d: utf8 %d, Big5 %d", i, r, plain.Columns[i].Ints[r], encTable.Columns[i].Ints[r])
			}
		}
	}
}

func TestReadFWFDeclaredNullTypeIsUnsupported(t *testing.T) {
	po := mustParseOptions(t, []int{4})
	co := DefaultConvertOptions()
	co.ColumnTypes = map[string]Type{"a": Null}
	_, err := ReadFWF(BufferSource("a   \r\n1234"), po, nil, &co)
	if err == nil {
		t.Fatal("expected an error for a column declared with type Null")
	}
	if kind := err.(*Error).Kind; kind != InvalidOption {
		t.Errorf("Kind = %v, want InvalidOption", kind)
	}
}

func TestReadFWFSkipColumnsOutOfRangeIsInvalidOption(t *testing.T) {
	po, err := NewParseOptions([]int{3, 3, 3})
	if err != nil {
		t.Fatalf("NewParseOptions: %v", err)
	}
	po.SkipColumns = map[int]struct{}{5: {}}
	_, err = ReadFWF(BufferSource("a  b  c  \r\n11 ab 123"), po, nil, nil)
	if err == nil {
		t.Fatal("expected an error for a skip_columns index beyond field_widths")
	}
	if kind := err.(*Error).Kind; kind != InvalidOption {
		t.Errorf("Kind = %v, want InvalidOption", kind)
	}
}

func TestReadFWFDeclaredTypeMismatchIsFatal(t *testing.T) {
	po := mustParseOptions(t, []int{8})
	co := DefaultConvertOptions()
	co.ColumnTypes = map[string]Type{"a": Int64}
	_, err := ReadFWF(BufferSource("a   \r\nnotanint"), po, nil, &co)
	if err == nil {
		t.Fatal("expected an error for a declared-type column that can't parse")
	}
	if kind := err.(*Error).Kind; kind != ConversionError {
		t.Errorf("Kind = %v, want ConversionError", kind)
	}
}

func TestReadFWFUseThreadsParity(t *testing.T) {
	po := mustParseOptions(t, []int{4})

	var data []byte
	data = append(data, "a   \r\n"...)
	for i := 0; i < 40; i++ {
		if i == 20 {
			data = append(data, "abc \r\n"...)
			continue
		}
		data = append(data, "123 \r\n"...)
	}

	seqOpts := DefaultReadOptions()
	seqOpts.UseThreads = false
	seqOpts.BlockSize = 16
	parOpts := DefaultReadOptions()
	parOpts.UseThreads = true
	parOpts.BlockSize = 16

	seqTable, err := ReadFWF(BufferSource(data), po, &seqOpts, nil)
	if err != nil {
		t.Fatalf("ReadFWF(sequential): %v", err)
	}
	parTable, err := ReadFWF(BufferSource(data), po, &parOpts, nil)
	if err != nil {
		t.Fatalf("ReadFWF(concurrent): %v", err)
	}

	seqCol, parCol := seqTable.Columns[0], parTable.Columns[0]
	if seqCol.Type != parCol.Type {
		t.Fatalf("Type mismatch: sequential %v, concurrent %v", seqCol.Type, parCol.Type)
	}
	if seqCol.Len() != parCol.Len() || seqCol.Len() != 40 {
		t.Fatalf("Len mismatch: sequential %d, concurrent %d, want 40", seqCol.Len(), parCol.Len())
	}
	for i := range seqCol.Strs {
		if seqCol.Strs[i] != parCol.Strs[i] {
			t.Errorf("Strs[%d]: sequential %q, concurrent %q", i, seqCol.Strs[i], parCol.Strs[i])
		}
	}
}

func TestReadFWFEqualColumnLengths(t *testing.T) {
	po := mustParseOptions(t, []int{3, 3})
	table, err := ReadFWF(BufferSource("a  b  \r\n1  2  \r\n3  4  "), po, nil, nil)
	if err != nil {
		t.Fatalf("ReadFWF: %v", err)
	}
	n := table.Columns[0].Len()
	for i, c := range table.Columns {
		if c.Len() != n {
			t.Errorf("Columns[%d].Len() = %d, want %d", i, c.Len(), n)
		}
	}
	if table.NumRows() != n {
		t.Errorf("NumRows() = %d, want %d", table.NumRows(), n)
	}
}

func TestNewParseOptionsRejectsEmptyWidths(t *testing.T) {
	if _, err := NewParseOptions(nil); err == nil {
		t.Fatal("expected InvalidOption for empty field_widths")
	}
}

func TestNewParseOptionsRejectsNonPositiveWidth(t *testing.T) {
	if _, err := NewParseOptions([]int{3, 0, 2}); err == nil {
		t.Fatal("expected InvalidOption for a non-positive width")
	}
}

func TestNewReadOptionsRejectsLowSafetyFactor(t *testing.T) {
	_, err := NewReadOptions(ReadOptions{BufferSafetyFactor: 0.5})
	if err == nil {
		t.Fatal("expected InvalidOption for buffer_safety_factor < 1")
	}
}
