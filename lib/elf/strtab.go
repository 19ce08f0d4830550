package elf

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// StringTable is the raw content of a string table section.
type StringTable []byte

// Lookup returns the NUL-terminated string starting at off. A string running
// to the end of the table without a terminator is returned as is. Each
// maximal invalid UTF-8 subpart is replaced with one U+FFFD.
func (t StringTable) Lookup(off uint32) (string, error) {
	if uint64(off) >= uint64(len(t)) {
		return "", outOfBounds("string table offset %d, table size %d", off, len(t))
	}
	b := t[off:]
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return lossyString(b), nil
}

func lossyString(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	var sb strings.Builder
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			size = invalidPrefix(b)
		}
		sb.WriteRune(r)
		b = b[size:]
	}
	return sb.String()
}

// invalidPrefix returns the length of the maximal subpart of an ill-formed
// sequence at the start of b: a lead byte plus the continuation bytes that
// are still valid for it.
func invalidPrefix(b []byte) int {
	need, lo, hi := 0, byte(0x80), byte(0xbf)
	switch c := b[0]; {
	case c >= 0xc2 && c <= 0xdf:
		need = 1
	case c == 0xe0:
		need, lo = 2, 0xa0
	case c == 0xed:
		need, hi = 2, 0x9f
	case c >= 0xe1 && c <= 0xef:
		need = 2
	case c == 0xf0:
		need, lo = 3, 0x90
	case c >= 0xf1 && c <= 0xf3:
		need = 3
	case c == 0xf4:
		need, hi = 3, 0x8f
	default:
		return 1
	}
	n := 1
	for ; n <= need && n < len(b); n++ {
		if b[n] < lo || b[n] > hi {
			break
		}
		lo, hi = 0x80, 0xbf
	}
	return n
}
