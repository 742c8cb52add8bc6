// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transcode

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// swapPair is the (NEL, LF) raw byte pair a codepage uses, needed to
// implement the swaplfnl modifier. Only EBCDIC-family codepages carry
// a distinct NEL control code that can be conflated with LF.
type swapPair struct {
	nel, lf byte
}

var registry = map[string]encoding.Encoding{
	"cp037":   charmap.CodePage037,
	"ibm037":  charmap.CodePage037,
	"cp1047":  charmap.CodePage1047,
	"ibm1047": charmap.CodePage1047,
	"cp1140":  charmap.CodePage1140,
	"ibm1140": charmap.CodePage1140,
	"big5":    traditionalchinese.Big5,
	"shiftjis": japanese.ShiftJIS,
	"sjis":     japanese.ShiftJIS,
	"gbk":      simplifiedchinese.GBK,
	"gb18030":  simplifiedchinese.GB18030,
	"gb2312":   simplifiedchinese.GBK,
	"latin1":   charmap.ISO8859_1,
	"iso88591": charmap.ISO8859_1, // "ISO8859-1" normalizes to this, hyphen stripped
}

// ebcdicSwap holds the NEL/LF raw byte pair for the EBCDIC codepages
// the registry knows about; swaplfnl is only meaningful for these.
var ebcdicSwap = map[string]swapPair{
	"cp037":   {nel: 0x15, lf: 0x25},
	"ibm037":  {nel: 0x15, lf: 0x25},
	"cp1047":  {nel: 0x15, lf: 0x25},
	"ibm1047": {nel: 0x15, lf: 0x25},
	"cp1140":  {nel: 0x15, lf: 0x25},
	"ibm1140": {nel: 0x15, lf: 0x25},
}

// resolve maps a ReadOptions.Encoding string to an encoding.Encoding
// plus whether the swaplfnl modifier was requested. An empty name,
// "utf8"/"utf-8" or "ascii" resolves with a nil enc and passthrough and
// ok both true. name matching is case-insensitive and ignores "-"/"_",
// the way the corpus's own getEncoding helper normalizes names.
func resolve(name string) (enc encoding.Encoding, swap swapPair, swapRequested bool, passthrough bool, ok bool) {
	base := name
	if i := strings.LastIndex(name, ",swaplfnl"); i >= 0 {
		swapRequested = true
		base = name[:i]
	}
	key := normalize(base)
	if key == "" || key == "utf8" || key == "ascii" {
		return nil, swapPair{}, swapRequested, true, true
	}
	e, found := registry[key]
	if !found {
		return nil, swapPair{}, swapRequested, false, false
	}
	pair := ebcdicSwap[key]
	return e, pair, swapRequested, false, true
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}
