// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package transcode maps blocks of input bytes in a legacy codepage to
// UTF-8, one block at a time, preserving a carry tail across calls the
// way golang.org/x/text/transform.Transformer already requires of its
// callers: unconsumed trailing bytes of an incomplete character are
// held and prepended to the next call's input.
package transcode

import (
	"bytes"

	"golang.org/x/text/transform"

	"github.com/kardianos/fwf/internal/ferr"
)

// Transcoder converts blocks from a resolved codepage to UTF-8. The
// zero value is not usable; construct with New.
type Transcoder struct {
	passthrough bool
	dec         transform.Transformer
	swap        swapPair
	doSwap      bool
	safety      float64
	carry       []byte
}

// New resolves name (a codepage, optionally suffixed ",swaplfnl") and
// returns a Transcoder ready to process blocks in order. safety sizes
// the output buffer as a multiple of each input block's length.
func New(name string, safety float64) (*Transcoder, error) {
	enc, swap, swapRequested, passthrough, ok := resolve(name)
	if !ok {
		return nil, ferr.New(ferr.UnknownEncoding, nil, "unknown encoding %q", name)
	}
	if safety < 1 {
		safety = 1
	}
	t := &Transcoder{
		passthrough: passthrough,
		safety:      safety,
		swap:        swap,
		doSwap:      swapRequested && swap != (swapPair{}),
	}
	if !passthrough {
		t.dec = enc.NewDecoder()
	}
	return t, nil
}

// Transcode converts one block, returning UTF-8 bytes. eof must be
// true on the final block of the stream, including a final empty one
// if the source ended exactly on a block boundary.
func (t *Transcoder) Transcode(block []byte, eof bool) ([]byte, error) {
	if t.passthrough {
		return block, nil
	}

	src := block
	if len(t.carry) > 0 {
		src = make([]byte, 0, len(t.carry)+len(block))
		src = append(src, t.carry...)
		src = append(src, block...)
	}
	if t.doSwap {
		src = swapBytes(src, t.swap.nel, t.swap.lf)
	}

	dstLen := int(float64(len(src))*t.safety) + 16
	const maxGrowSteps = 6
	for step := 0; step < maxGrowSteps; step++ {
		dst := make([]byte, dstLen)
		nDst, nSrc, err := t.dec.Transform(dst, src, eof)
		switch err {
		case nil:
			t.carry = carryOf(t.carry, src, nSrc)
			return dst[:nDst], nil
		case transform.ErrShortDst:
			dstLen *= 2
			continue
		case transform.ErrShortSrc:
			if eof {
				return nil, ferr.New(ferr.ConversionError, err, "truncated multibyte sequence at end of input")
			}
			t.carry = carryOf(t.carry, src, nSrc)
			return dst[:nDst], nil
		default:
			return nil, ferr.New(ferr.ConversionError, err, "transcoding block")
		}
	}
	return nil, ferr.New(ferr.BufferTooSmall, nil, "transcoder output buffer still too small after %d growth steps; raise buffer_safety_factor", maxGrowSteps)
}

func carryOf(reuse, src []byte, nSrc int) []byte {
	if nSrc >= len(src) {
		return reuse[:0]
	}
	return append(reuse[:0], src[nSrc:]...)
}

// swapBytes returns a copy of b with every occurrence of a and b2
// exchanged, implementing the ",swaplfnl" modifier: the codepage's NEL
// byte and its LF byte trade places so downstream decoding yields LF
// where the source used its codepage-specific newline.
func swapBytes(b []byte, a, b2 byte) []byte {
	if !bytes.ContainsAny(b, string([]byte{a, b2})) {
		return b
	}
	out := make([]byte, len(b))
	for i, c := range b {
		switch c {
		case a:
			out[i] = b2
		case b2:
			out[i] = a
		default:
			out[i] = c
		}
	}
	return out
}
