// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transcode

import (
	"bytes"
	"testing"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"
)

func TestTranscodePassthrough(t *testing.T) {
	for _, name := range []string{"", "utf8", "UTF-8", "ascii"} {
		tr, err := New(name, 4)
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		out, err := tr.Transcode([]byte("hello"), true)
		if err != nil {
			t.Fatalf("Transcode: %v", err)
		}
		if string(out) != "hello" {
			t.Errorf("New(%q): got %q, want %q", name, out, "hello")
		}
	}
}

func TestTranscodeUnknownEncoding(t *testing.T) {
	if _, err := New("not-a-real-codepage", 4); err == nil {
		t.Fatal("expected an error for an unresolvable encoding name")
	}
}

func TestTranscodeEBCDICRoundTrip(t *testing.T) {
	const want = "ABC123 xyz HELLO"
	encoded, _, err := transform.Bytes(charmap.CodePage1047.NewEncoder(), []byte(want))
	if err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}

	tr, err := New("cp1047", 4)
	if err != nil {
		t.Fatal(err)
	}
	got, err := tr.Transcode(encoded, true)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTranscodeBig5RoundTrip(t *testing.T) {
	const want = "123456 789012 中文"
	encoded, _, err := transform.Bytes(traditionalchinese.Big5.NewEncoder(), []byte(want))
	if err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}

	tr, err := New("Big5", 4)
	if err != nil {
		t.Fatal(err)
	}
	got, err := tr.Transcode(encoded, true)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTranscodeAcrossBlocks(t *testing.T) {
	const want = "hello world, this is a longer row of text"
	encoded, _, err := transform.Bytes(charmap.CodePage1047.NewEncoder(), []byte(want))
	if err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}

	tr, err := New("cp1047", 4)
	if err != nil {
		t.Fatal(err)
	}
	mid := len(encoded) / 2
	part1, err := tr.Transcode(encoded[:mid], false)
	if err != nil {
		t.Fatal(err)
	}
	part2, err := tr.Transcode(encoded[mid:], true)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(part1) + string(part2); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTranscodeGrowsBufferWhenSafetyFactorTooSmall(t *testing.T) {
	var wideByte byte
	found := false
	for b := 0; b < 256; b++ {
		if utf8.RuneLen(charmap.CodePage1047.DecodeByte(byte(b))) > 1 {
			wideByte = byte(b)
			found = true
			break
		}
	}
	if !found {
		t.Skip("CP1047 has no byte decoding to a multi-byte rune")
	}

	payload := bytes.Repeat([]byte{wideByte}, 64)
	tr, err := New("cp1047", 1)
	if err != nil {
		t.Fatal(err)
	}
	out, err := tr.Transcode(payload, true)
	if err != nil {
		t.Fatalf("Transcode: %v", err)
	}
	if len(out) <= len(payload) {
		t.Fatalf("expected output to expand past input length, got %d bytes for %d input", len(out), len(payload))
	}
}

func TestSwaplfnlModifierParsed(t *testing.T) {
	_, _, swapRequested, _, ok := resolve("cp037,swaplfnl")
	if !ok {
		t.Fatal("resolve(cp037,swaplfnl) failed")
	}
	if !swapRequested {
		t.Error("expected swapRequested true")
	}
}

func TestSwapBytes(t *testing.T) {
	in := []byte{0x15, 0x41, 0x25}
	out := swapBytes(in, 0x15, 0x25)
	want := []byte{0x25, 0x41, 0x15}
	if !bytes.Equal(out, want) {
		t.Errorf("swapBytes = %v, want %v", out, want)
	}
}

func TestSwapBytesNoOp(t *testing.T) {
	in := []byte("plain ascii")
	out := swapBytes(in, 0x15, 0x25)
	if !bytes.Equal(out, in) {
		t.Errorf("swapBytes modified input with no matching bytes: %v", out)
	}
}

func TestCarryOf(t *testing.T) {
	src := []byte("abcdef")
	if got := string(carryOf(nil, src, 4)); got != "ef" {
		t.Errorf("carryOf = %q, want %q", got, "ef")
	}
	if got := carryOf(nil, src, 6); len(got) != 0 {
		t.Errorf("carryOf with nSrc==len(src) = %q, want empty", got)
	}
}
