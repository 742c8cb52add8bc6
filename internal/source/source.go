// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package source gives the rest of the pipeline one uniform view over
// an in-memory buffer or a readable byte stream: contiguous,
// block-sized reads with an end-of-stream signal.
package source

import (
	"bufio"
	"io"

	"github.com/kardianos/fwf/internal/ferr"
)

// Source supplies contiguous blocks of the input. It never splits a
// multibyte sequence across a block boundary on its own; the
// transcoder owns that responsibility via its own carry tail.
type Source interface {
	// ReadBlock returns up to maxBytes of input. eof is true once the
	// input is exhausted, whether or not len(b) is zero. A stream that
	// ends exactly on a block boundary returns its last bytes with eof
	// false and then an empty block with eof true.
	ReadBlock(maxBytes int) (b []byte, eof bool, err error)
}

// bufferSource serves blocks out of an in-memory buffer.
type bufferSource struct {
	buf []byte
	pos int
}

// NewBuffer wraps an in-memory byte slice as a Source. The slice is
// read, not copied; callers must not mutate it while reading.
func NewBuffer(buf []byte) Source {
	return &bufferSource{buf: buf}
}

func (s *bufferSource) ReadBlock(maxBytes int) ([]byte, bool, error) {
	if s.pos >= len(s.buf) {
		return nil, true, nil
	}
	end := s.pos + maxBytes
	if end >= len(s.buf) {
		end = len(s.buf)
	}
	b := s.buf[s.pos:end]
	s.pos = end
	return b, s.pos >= len(s.buf), nil
}

// streamSource serves blocks out of a buffered io.Reader.
type streamSource struct {
	r   *bufio.Reader
	buf []byte
}

// NewStream wraps an io.Reader as a Source, buffering reads the way
// the corpus's fixed-record readers wrap their file handles in a
// bufio.Reader before scanning.
func NewStream(r io.Reader) Source {
	return &streamSource{r: bufio.NewReaderSize(r, 64*1024)}
}

func (s *streamSource) ReadBlock(maxBytes int) ([]byte, bool, error) {
	if cap(s.buf) < maxBytes {
		s.buf = make([]byte, maxBytes)
	}
	buf := s.buf[:maxBytes]
	n, err := io.ReadFull(s.r, buf)
	switch err {
	case nil:
		return buf[:n], false, nil
	case io.EOF, io.ErrUnexpectedEOF:
		return buf[:n], true, nil
	default:
		return nil, false, ferr.New(ferr.IOError, err, "reading block")
	}
}
