// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package split locates row boundaries within a (possibly transcoded)
// UTF-8 byte block, handing complete rows onward and retaining an
// incomplete trailing row as a carry across blocks.
package split

// Splitter scans blocks for LF/CRLF/CR terminated rows. The zero value
// is ready to use.
type Splitter struct {
	carry            []byte
	ignoreEmptyLines bool
}

// New returns a Splitter. ignoreEmptyLines drops rows whose content
// (after terminator removal) is empty.
func New(ignoreEmptyLines bool) *Splitter {
	return &Splitter{ignoreEmptyLines: ignoreEmptyLines}
}

// Split prepends any carry from the previous call to block, scans for
// complete rows, and returns the rows found plus whatever incomplete
// tail remains (retained internally for the next call). On eof, a
// non-empty retained tail is flushed as a final row.
//
// Returned row slices alias block (and the Splitter's own carry
// buffer) and are valid only until the next call to Split.
func (s *Splitter) Split(block []byte, eof bool) [][]byte {
	buf := block
	if len(s.carry) > 0 {
		buf = make([]byte, 0, len(s.carry)+len(block))
		buf = append(buf, s.carry...)
		buf = append(buf, block...)
	}

	var rows [][]byte
	start := 0
scan:
	for i := 0; i < len(buf); i++ {
		switch buf[i] {
		case '\n':
			rows = append(rows, buf[start:i])
			start = i + 1
		case '\r':
			if i+1 >= len(buf) && !eof {
				// The block ends on a lone CR; it may be the first half
				// of a CRLF terminator split across blocks, so hold
				// everything from start onward as carry instead of
				// deciding now.
				break scan
			}
			rows = append(rows, buf[start:i])
			if i+1 < len(buf) && buf[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}

	if start < len(buf) {
		if eof {
			rows = append(rows, buf[start:])
			s.carry = s.carry[:0]
		} else {
			s.carry = append(s.carry[:0], buf[start:]...)
		}
	} else {
		s.carry = s.carry[:0]
	}

	if !s.ignoreEmptyLines {
		return rows
	}
	out := rows[:0]
	for _, r := range rows {
		if len(r) > 0 {
			out = append(out, r)
		}
	}
	return out
}
