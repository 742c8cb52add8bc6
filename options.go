// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fwf

// ParseOptions describes how rows are split into fields.
type ParseOptions struct {
	// FieldWidths is the ordered byte width of every declared column.
	// Must contain at least one positive value.
	FieldWidths []int

	// HeaderRows is the number of non-empty rows, after SkipRows, that
	// are consumed as header before data rows begin. Only row 0 among
	// them supplies column names; the rest are discarded. Defaults to 1.
	HeaderRows int

	// IgnoreEmptyLines drops rows that are empty after terminator
	// removal, both in the header and in data. Defaults to true.
	IgnoreEmptyLines bool

	// SkipColumns names zero-based field indices to drop from the
	// output. Column names are still taken from the unfiltered header
	// before this filter applies.
	SkipColumns map[int]struct{}
}

// NewParseOptions validates and returns a ParseOptions with its
// documented defaults for everything but FieldWidths. Construction
// fails with InvalidOption if fieldWidths is empty or contains a
// non-positive width.
func NewParseOptions(fieldWidths []int) (ParseOptions, error) {
	if len(fieldWidths) == 0 {
		return ParseOptions{}, newError(InvalidOption, nil, "field_widths must contain at least one width")
	}
	for i, w := range fieldWidths {
		if w <= 0 {
			return ParseOptions{}, newError(InvalidOption, nil, "field_widths[%d] = %d must be positive", i, w)
		}
	}
	widths := make([]int, len(fieldWidths))
	copy(widths, fieldWidths)
	return ParseOptions{
		FieldWidths:      widths,
		HeaderRows:       1,
		IgnoreEmptyLines: true,
	}, nil
}

func (o ParseOptions) sumWidths() int {
	sum := 0
	for _, w := range o.FieldWidths {
		sum += w
	}
	return sum
}

func (o ParseOptions) String() string {
	return "ParseOptions{" +
		"FieldWidths=" + intsString(o.FieldWidths) +
		", HeaderRows=" + itoa(o.HeaderRows) +
		", IgnoreEmptyLines=" + boolString(o.IgnoreEmptyLines) +
		", SkipColumns=" + intSetString(o.SkipColumns) +
		"}"
}

const (
	// DefaultBlockSize is the byte_source read granularity, and the
	// unit of parallelism when ReadOptions.UseThreads is true.
	DefaultBlockSize = 1 << 20 // 1 MiB
	// DefaultBufferSafetyFactor sizes a transcoder's output buffer
	// relative to its input block. 4x covers the worst case of a
	// single legacy byte expanding into a 4-byte UTF-8 rune.
	DefaultBufferSafetyFactor = 4.0
)

// ReadOptions describes how bytes are pulled from the source and
// split into rows, before field-level conversion.
type ReadOptions struct {
	// Encoding names a codepage the transcoder resolves, optionally
	// suffixed with ",swaplfnl". Empty or "utf8" means passthrough.
	Encoding string

	// UseThreads enables the worker-pool parallel path described in
	// the package's coordinator. Defaults to true.
	UseThreads bool

	// BlockSize is the read granularity in bytes. Must be positive.
	BlockSize int

	// BufferSafetyFactor multiplies BlockSize to size the transcoder's
	// output buffer. Must be >= 1.
	BufferSafetyFactor float64

	// SkipRows is the number of rows dropped before the header rows are
	// read.
	SkipRows int

	// ColumnNames, if non-empty, are used verbatim as column names and
	// no header rows are consumed from the input.
	ColumnNames []string
}

// DefaultReadOptions returns the documented zero-value defaults.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{
		UseThreads:         true,
		BlockSize:          DefaultBlockSize,
		BufferSafetyFactor: DefaultBufferSafetyFactor,
	}
}

// NewReadOptions validates opts, filling a zero BlockSize or
// BufferSafetyFactor with its DefaultReadOptions value. Every other
// field, including a false UseThreads, is kept as given.
func NewReadOptions(opts ReadOptions) (ReadOptions, error) {
	def := DefaultReadOptions()
	if opts.BlockSize == 0 {
		opts.BlockSize = def.BlockSize
	}
	if opts.BlockSize < 0 {
		return ReadOptions{}, newError(InvalidOption, nil, "block_size must be positive, got %d", opts.BlockSize)
	}
	if opts.BufferSafetyFactor == 0 {
		opts.BufferSafetyFactor = def.BufferSafetyFactor
	}
	if opts.BufferSafetyFactor < 1 {
		return ReadOptions{}, newError(InvalidOption, nil, "buffer_safety_factor must be >= 1, got %v", opts.BufferSafetyFactor)
	}
	if opts.SkipRows < 0 {
		return ReadOptions{}, newError(InvalidOption, nil, "skip_rows must be non-negative, got %d", opts.SkipRows)
	}
	return opts, nil
}

func (o ReadOptions) String() string {
	return "ReadOptions{Encoding=" + o.Encoding +
		", UseThreads=" + boolString(o.UseThreads) +
		", BlockSize=" + itoa(o.BlockSize) +
		", SkipRows=" + itoa(o.SkipRows) +
		", ColumnNames=" + stringsString(o.ColumnNames) +
		"}"
}

// DefaultNullValues, DefaultTrueValues and DefaultFalseValues mirror
// the defaults observed on the bindings' ConvertOptions: a non-empty
// null set containing the empty string, "N/A" and "null", and common
// textual spellings of true/false. The digits "1" and "0" are not in
// the boolean sets, so a column of plain digits infers as INT64.
var (
	DefaultNullValues  = [][]byte{[]byte(""), []byte("N/A"), []byte("null")}
	DefaultTrueValues  = [][]byte{[]byte("true"), []byte("True"), []byte("TRUE"), []byte("T")}
	DefaultFalseValues = [][]byte{[]byte("false"), []byte("False"), []byte("FALSE"), []byte("F")}
)

// DefaultPosValues and DefaultNegValues implement the standard EBCDIC
// signed-overpunch table: {A..I} -> {1..9} positive, {J..R} -> {1..9}
// negative, '{' -> 0 positive, '}' -> 0 negative.
var (
	DefaultPosValues = buildOverpunch('A', '1')
	DefaultNegValues = buildOverpunch('J', '1')
)

func buildOverpunch(startKey, startDigit byte) map[byte]byte {
	m := make(map[byte]byte, 10)
	for i := 0; i < 9; i++ {
		m[startKey+byte(i)] = startDigit + byte(i)
	}
	return m
}

func init() {
	DefaultPosValues['{'] = '0'
	DefaultNegValues['}'] = '0'
}

// ConvertOptions describes how field bytes become typed values.
type ConvertOptions struct {
	// ColumnTypes overrides inference for named columns.
	ColumnTypes map[string]Type

	// StringsCanBeNull makes a STRING column nullable when the trimmed
	// field matches NullValues; otherwise string fields are never null.
	StringsCanBeNull bool

	// NullValues, TrueValues, FalseValues are matched against
	// ASCII-space-trimmed field bytes.
	NullValues  [][]byte
	TrueValues  [][]byte
	FalseValues [][]byte

	// IsCobol enables the signed-overpunch convention on the final
	// byte of a trimmed INT64 field.
	IsCobol bool

	// PosValues and NegValues map a single overpunch character to the
	// decimal digit it encodes, under a positive or negative sign
	// respectively.
	PosValues map[byte]byte
	NegValues map[byte]byte
}

// DefaultConvertOptions returns the documented defaults.
func DefaultConvertOptions() ConvertOptions {
	return ConvertOptions{
		NullValues:  DefaultNullValues,
		TrueValues:  DefaultTrueValues,
		FalseValues: DefaultFalseValues,
		PosValues:   DefaultPosValues,
		NegValues:   DefaultNegValues,
	}
}

// NewConvertOptions validates opts and fills unset value sets with
// their documented defaults.
func NewConvertOptions(opts ConvertOptions) (ConvertOptions, error) {
	if opts.NullValues == nil {
		opts.NullValues = DefaultNullValues
	}
	if opts.TrueValues == nil {
		opts.TrueValues = DefaultTrueValues
	}
	if opts.FalseValues == nil {
		opts.FalseValues = DefaultFalseValues
	}
	if opts.IsCobol {
		if opts.PosValues == nil {
			opts.PosValues = DefaultPosValues
		}
		if opts.NegValues == nil {
			opts.NegValues = DefaultNegValues
		}
	}
	for name, t := range opts.ColumnTypes {
		if t < Null || t > Binary {
			return ConvertOptions{}, newError(InvalidOption, nil, "column_types[%q] has invalid type %v", name, t)
		}
	}
	return opts, nil
}

// --- small formatting helpers, avoiding fmt.Sprintf/reflection for String() ---

func itoa(n int) string {
	neg := n < 0
	if neg {
		n = -n
	}
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func intsString(ints []int) string {
	s := "["
	for i, v := range ints {
		if i > 0 {
			s += " "
		}
		s += itoa(v)
	}
	return s + "]"
}

func stringsString(ss []string) string {
	s := "["
	for i, v := range ss {
		if i > 0 {
			s += " "
		}
		s += v
	}
	return s + "]"
}

func intSetString(set map[int]struct{}) string {
	s := "{"
	first := true
	for k := range set {
		if !first {
			s += " "
		}
		first = false
		s += itoa(k)
	}
	return s + "}"
}
