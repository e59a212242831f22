// Copyright 2026 The zelda-arabic-magic Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bdat

import (
	"encoding/binary"

	"github.com/alazi900-coder/zelda-arabic-magic-sub002/internal/bufview"
)

// TableLayout selects between the two sibling table-header geometries the
// format ships with.  It is decided once per table at parse time and
// carried on the table so re-serialization writes the same variant back.
type TableLayout uint8

const (
	// LayoutNarrow stores the four geometry fields as u16 at
	// 0x18/0x1A/0x1C/0x1E and the string-table fields at 0x20/0x24.
	LayoutNarrow TableLayout = iota
	// LayoutWide stores the four geometry fields as u32 at
	// 0x18/0x1C/0x20/0x24 and the string-table fields at 0x28/0x2C.
	LayoutWide
)

func (l TableLayout) String() string {
	if l == LayoutWide {
		return "wide"
	}
	return "narrow"
}

const (
	fileHeaderSize = 16 // magic + version + tableCount + fileSize

	tblOffColumnCount = 0x08
	tblOffRowCount    = 0x0C
	tblOffBaseID      = 0x10

	narrowHeaderSize = 0x28
	wideHeaderSize   = 0x30
)

var magicBytes = []byte{'B', 'D', 'A', 'T'}

// geometry holds the decoded table-header offsets needed to locate every
// region of a table and to patch the header after a rebuild.  All offsets
// are relative to the table start.
type geometry struct {
	layout         TableLayout
	columnDefsOff  int
	hashTableOff   int
	rowDataOff     int
	rowLen         int
	stringTableOff int
	stringTableLen int
}

// headerSize returns the minimum table size for the layout.
func (l TableLayout) headerSize() int {
	if l == LayoutWide {
		return wideHeaderSize
	}
	return narrowHeaderSize
}

// detectLayout decides narrow vs wide for the table under v.  A narrow
// header keeps its u16 row length at 0x1E; in a wide header those bytes
// are the upper half of the u32 hash-table offset, which in practice is
// a small value, so the field reads as zero.  A zero row length with a
// small positive u32 at 0x18 (the wide column-defs offset) therefore
// signals the wide variant.
func detectLayout(v bufview.View) TableLayout {
	rowLen16, ok1 := v.U16(0x1E)
	colDefs32, ok2 := v.U32(0x18)
	if ok1 && ok2 && rowLen16 == 0 && colDefs32 > 0 && colDefs32 < 0x10000 {
		return LayoutWide
	}
	return LayoutNarrow
}

// readGeometry decodes the layout-dependent header fields.  The caller
// has already verified the table is at least headerSize() long.
func readGeometry(v bufview.View, layout TableLayout) geometry {
	g := geometry{layout: layout}
	if layout == LayoutWide {
		g.columnDefsOff = u32At(v, 0x18)
		g.hashTableOff = u32At(v, 0x1C)
		g.rowDataOff = u32At(v, 0x20)
		g.rowLen = u32At(v, 0x24)
		g.stringTableOff = u32At(v, 0x28)
		g.stringTableLen = u32At(v, 0x2C)
		return g
	}
	g.columnDefsOff = u16At(v, 0x18)
	g.hashTableOff = u16At(v, 0x1A)
	g.rowDataOff = u16At(v, 0x1C)
	g.rowLen = u16At(v, 0x1E)
	g.stringTableOff = u32At(v, 0x20)
	g.stringTableLen = u32At(v, 0x24)
	return g
}

// stringTableLenOff returns the table-relative offset of the u32
// string-table-length field for the layout.
func (g geometry) stringTableLenOff() int {
	if g.layout == LayoutWide {
		return 0x2C
	}
	return 0x24
}

// putStringTableLen rewrites the string-table-length header field inside
// a rebuilt table image.
func (g geometry) putStringTableLen(img []byte, n uint32) {
	binary.LittleEndian.PutUint32(img[g.stringTableLenOff():], n)
}

func u16At(v bufview.View, off int) int {
	n, _ := v.U16(off)
	return int(n)
}

func u32At(v bufview.View, off int) int {
	n, _ := v.U32(off)
	return int(n)
}
