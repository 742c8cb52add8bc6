// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package convert parses trimmed field bytes into typed values:
// booleans, integers (including the COBOL signed-overpunch
// convention), floats and strings, plus the shared null check every
// target type defers to first.
package convert

import (
	"bytes"
	"math"
	"strconv"

	"github.com/kardianos/fwf/internal/ferr"
)

// Trim removes leading and trailing ASCII spaces (0x20). It does not
// touch other whitespace, matching the "ASCII-space-trimmed" language
// of the field conversion rules.
func Trim(b []byte) []byte {
	return bytes.Trim(b, " ")
}

// IsNull reports whether trimmed matches one of nullValues.
func IsNull(trimmed []byte, nullValues [][]byte) bool {
	for _, v := range nullValues {
		if bytes.Equal(trimmed, v) {
			return true
		}
	}
	return false
}

// ParseBool matches trimmed against trueValues/falseValues.
func ParseBool(trimmed []byte, trueValues, falseValues [][]byte) (v bool, ok bool) {
	for _, t := range trueValues {
		if bytes.Equal(trimmed, t) {
			return true, true
		}
	}
	for _, f := range falseValues {
		if bytes.Equal(trimmed, f) {
			return false, true
		}
	}
	return false, false
}

// Overpunch inspects the final byte of trimmed against pos/neg tables.
// ok is false when the final byte matches neither table, meaning the
// field should fall back to ordinary signed-decimal parsing.
func Overpunch(trimmed []byte, pos, neg map[byte]byte) (digit byte, negative bool, ok bool) {
	if len(trimmed) == 0 {
		return 0, false, false
	}
	last := trimmed[len(trimmed)-1]
	if d, found := pos[last]; found {
		return d, false, true
	}
	if d, found := neg[last]; found {
		return d, true, true
	}
	return 0, false, false
}

// ParseInt64 parses trimmed as a signed decimal integer. When isCobol
// is true, the final byte is first tried against the overpunch tables;
// on a match it is replaced by its mapped digit and the sign comes
// from which table matched, per the COBOL signed-overpunch convention.
// Overflow and non-digit characters are reported as errors.
func ParseInt64(trimmed []byte, isCobol bool, pos, neg map[byte]byte) (int64, error) {
	if isCobol {
		if digit, negative, ok := Overpunch(trimmed, pos, neg); ok {
			digits := make([]byte, len(trimmed))
			copy(digits, trimmed)
			digits[len(digits)-1] = digit
			return parseMagnitude(digits, negative)
		}
	}
	return parseSignedDigits(trimmed)
}

func parseSignedDigits(b []byte) (int64, error) {
	if len(b) == 0 {
		return 0, ferr.New(ferr.ConversionError, nil, "empty field is not a valid int64")
	}
	negative := false
	switch b[0] {
	case '+':
		b = b[1:]
	case '-':
		negative = true
		b = b[1:]
	}
	return parseMagnitude(b, negative)
}

// parseMagnitude parses b as an unsigned run of decimal digits and
// applies negative afterward, so the overflow bound can account for
// math.MinInt64's magnitude (9223372036854775808) being one larger
// than math.MaxInt64's.
func parseMagnitude(b []byte, negative bool) (int64, error) {
	if len(b) == 0 {
		return 0, ferr.New(ferr.ConversionError, nil, "missing digits in int64 field")
	}
	var n uint64
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, ferr.New(ferr.ConversionError, nil, "invalid digit %q in int64 field", c)
		}
		d := uint64(c - '0')
		if n > (math.MaxUint64-d)/10 {
			return 0, ferr.New(ferr.ConversionError, nil, "int64 field overflows")
		}
		n = n*10 + d
	}
	limit := uint64(math.MaxInt64)
	if negative {
		limit++
	}
	if n > limit {
		return 0, ferr.New(ferr.ConversionError, nil, "int64 field overflows")
	}
	if negative {
		if n == limit {
			return math.MinInt64, nil
		}
		return -int64(n), nil
	}
	return int64(n), nil
}

// ParseFloat64 parses trimmed as a standard decimal float, with
// optional sign and exponent.
func ParseFloat64(trimmed []byte) (float64, error) {
	f, err := strconv.ParseFloat(string(trimmed), 64)
	if err != nil {
		return 0, ferr.New(ferr.ConversionError, err, "invalid float64 field %q", trimmed)
	}
	return f, nil
}
