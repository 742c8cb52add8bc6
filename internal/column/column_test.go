// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package column

import (
	"testing"

	"github.com/kardianos/fwf/internal/convopts"
	"github.com/kardianos/fwf/internal/ftype"
)

func testOpts() convopts.Options {
	return convopts.Options{
		NullValues:  [][]byte{[]byte(""), []byte("N/A")},
		TrueValues:  [][]byte{[]byte("true"), []byte("T"), []byte("1")},
		FalseValues: [][]byte{[]byte("false"), []byte("F"), []byte("0")},
	}
}

func TestBuilderAppendInt64(t *testing.T) {
	b := New(ftype.Int64, testOpts())
	for _, v := range []string{"1", "  2 ", "", "-3"} {
		if err := b.Append([]byte(v)); err != nil {
			t.Fatalf("Append(%q): %v", v, err)
		}
	}
	c := b.Finalize()
	if c.Len() != 4 {
		t.Fatalf("Len = %d, want 4", c.Len())
	}
	wantNulls := []bool{false, false, true, false}
	wantInts := []int64{1, 2, 0, -3}
	for i := range wantNulls {
		if c.Nulls[i] != wantNulls[i] {
			t.Errorf("Nulls[%d] = %v, want %v", i, c.Nulls[i], wantNulls[i])
		}
	}
	for i, w := range wantInts {
		if !c.Nulls[i] && c.Ints[i] != w {
			t.Errorf("Ints[%d] = %d, want %d", i, c.Ints[i], w)
		}
	}
}

func TestBuilderStringNullGating(t *testing.T) {
	opts := testOpts()
	opts.StringsCanBeNull = false
	b := New(ftype.String, opts)
	if err := b.Append([]byte("")); err != nil {
		t.Fatal(err)
	}
	c := b.Finalize()
	if c.Nulls[0] {
		t.Error("empty string should not be null when StringsCanBeNull is false")
	}
	if c.Strs[0] != "" {
		t.Errorf("Strs[0] = %q, want empty string", c.Strs[0])
	}

	opts.StringsCanBeNull = true
	b2 := New(ftype.String, opts)
	if err := b2.Append([]byte("")); err != nil {
		t.Fatal(err)
	}
	c2 := b2.Finalize()
	if !c2.Nulls[0] {
		t.Error("empty string should be null when StringsCanBeNull is true")
	}
}

func TestBuilderAppendNeedsWiden(t *testing.T) {
	b := New(ftype.Int64, testOpts())
	if err := b.Append([]byte("not a number")); err != ErrNeedsWiden {
		t.Fatalf("Append = %v, want ErrNeedsWiden", err)
	}
}

func TestAppendWidenEscalatesToString(t *testing.T) {
	opts := testOpts()
	b := New(ftype.Bool, opts)
	var err error
	b, err = AppendWiden(b, []byte("true"))
	if err != nil {
		t.Fatal(err)
	}
	b, err = AppendWiden(b, []byte("not a bool or number"))
	if err != nil {
		t.Fatal(err)
	}
	if b.Type() != ftype.String {
		t.Fatalf("Type = %v, want String", b.Type())
	}
	c := b.Finalize()
	if c.Strs[0] != "true" || c.Strs[1] != "not a bool or number" {
		t.Errorf("Strs = %v", c.Strs)
	}
}

func TestAppendWidenIntToFloat(t *testing.T) {
	opts := testOpts()
	b := New(ftype.Int64, opts)
	var err error
	for _, v := range []string{"1", "2", "3.5"} {
		b, err = AppendWiden(b, []byte(v))
		if err != nil {
			t.Fatalf("AppendWiden(%q): %v", v, err)
		}
	}
	if b.Type() != ftype.Float64 {
		t.Fatalf("Type = %v, want Float64", b.Type())
	}
	c := b.Finalize()
	want := []float64{1, 2, 3.5}
	for i, w := range want {
		if c.Floats[i] != w {
			t.Errorf("Floats[%d] = %v, want %v", i, c.Floats[i], w)
		}
	}
}

func TestAppendWidenPreservesNulls(t *testing.T) {
	opts := testOpts()
	b := New(ftype.Int64, opts)
	var err error
	b, err = AppendWiden(b, []byte(""))
	if err != nil {
		t.Fatal(err)
	}
	b, err = AppendWiden(b, []byte("abc"))
	if err != nil {
		t.Fatal(err)
	}
	if b.Type() != ftype.String {
		t.Fatalf("Type = %v, want String", b.Type())
	}
	c := b.Finalize()
	if !c.Nulls[0] {
		t.Error("row 0 should still be null after widening")
	}
	if c.Strs[1] != "abc" {
		t.Errorf("Strs[1] = %q, want %q", c.Strs[1], "abc")
	}
}

func TestFromColumnWidensFinalizedChunk(t *testing.T) {
	opts := testOpts()
	b := New(ftype.Int64, opts)
	if err := b.Append([]byte("1")); err != nil {
		t.Fatal(err)
	}
	if err := b.Append([]byte("2")); err != nil {
		t.Fatal(err)
	}
	c := b.Finalize()

	nb := FromColumn(c, opts).Widen(ftype.String)
	if nb.Type() != ftype.String {
		t.Fatalf("Type = %v, want String", nb.Type())
	}
	rewidened := nb.Finalize()
	if rewidened.Strs[0] != "1" || rewidened.Strs[1] != "2" {
		t.Errorf("Strs = %v, want [1 2]", rewidened.Strs)
	}
}

func TestConcat(t *testing.T) {
	opts := testOpts()
	b1 := New(ftype.Int64, opts)
	b1.Append([]byte("1"))
	b2 := New(ftype.Int64, opts)
	b2.Append([]byte("2"))
	b2.Append([]byte("3"))

	out := Concat([]Column{b1.Finalize(), b2.Finalize()})
	if out.Len() != 3 {
		t.Fatalf("Len = %d, want 3", out.Len())
	}
	want := []int64{1, 2, 3}
	for i, w := range want {
		if out.Ints[i] != w {
			t.Errorf("Ints[%d] = %d, want %d", i, out.Ints[i], w)
		}
	}
}

func TestBuilderBinaryKeepsRawBytes(t *testing.T) {
	b := New(ftype.Binary, testOpts())
	b.Append([]byte("raw\x00bytes"))
	c := b.Finalize()
	if string(c.Bins[0]) != "raw\x00bytes" {
		t.Errorf("Bins[0] = %q", c.Bins[0])
	}
}
