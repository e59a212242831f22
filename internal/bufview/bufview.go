// Copyright 2026 The zelda-arabic-magic Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package bufview provides bounds-checked little-endian reads over an
// in-memory byte buffer.  Every accessor reports whether the read was in
// range instead of panicking, so parsers can decode damaged or truncated
// files to zero values and keep going.
package bufview

import (
	"bytes"
	"encoding/binary"
	"math"
)

// View is a read-only window over a byte buffer.  The zero value is an
// empty view.
type View struct {
	b []byte
}

// New wraps b.  The view borrows b; the caller must not mutate it while
// the view is in use.
func New(b []byte) View {
	return View{b: b}
}

// Len returns the number of bytes in the view.
func (v View) Len() int {
	return len(v.b)
}

// Sub returns a view over v[off:off+n], or an empty view if the range is
// out of bounds.
func (v View) Sub(off, n int) View {
	if off < 0 || n < 0 || off+n > len(v.b) {
		return View{}
	}
	return View{b: v.b[off : off+n]}
}

// Bytes returns n bytes starting at off.  The slice aliases the
// underlying buffer.
func (v View) Bytes(off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off+n > len(v.b) {
		return nil, false
	}
	return v.b[off : off+n], true
}

// U8 reads one byte at off.
func (v View) U8(off int) (byte, bool) {
	if off < 0 || off >= len(v.b) {
		return 0, false
	}
	return v.b[off], true
}

// U16 reads a little-endian uint16 at off.
func (v View) U16(off int) (uint16, bool) {
	if off < 0 || off+2 > len(v.b) {
		return 0, false
	}
	return binary.LittleEndian.Uint16(v.b[off:]), true
}

// U32 reads a little-endian uint32 at off.
func (v View) U32(off int) (uint32, bool) {
	if off < 0 || off+4 > len(v.b) {
		return 0, false
	}
	return binary.LittleEndian.Uint32(v.b[off:]), true
}

// F32 reads a little-endian IEEE 754 float32 at off.
func (v View) F32(off int) (float32, bool) {
	u, ok := v.U32(off)
	if !ok {
		return 0, false
	}
	return math.Float32frombits(u), true
}

// CString reads a NUL-terminated string starting at off.  A missing
// terminator yields the remainder of the buffer; an out-of-range offset
// yields ("", false).
func (v View) CString(off int) (string, bool) {
	if off < 0 || off >= len(v.b) {
		return "", false
	}
	rest := v.b[off:]
	if i := bytes.IndexByte(rest, 0); i >= 0 {
		rest = rest[:i]
	}
	return string(rest), true
}
